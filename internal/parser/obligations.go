package parser

import (
	"fmt"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/obligations"
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// parsePredicate parses one of
//
//	Iface<Self, Args...>::Item == T
//	T: Iface<Args...>
//	T: 'r
//	'a: 'b
//	A == B
//	A <: B
//	WF(T)
//	ObjectSafe(Iface)
//	ConstEvaluatable(#n)
//	ClosureKind(#n, Level)
func (p *Parser) parsePredicate() obligations.Predicate {
	switch p.curToken.Type {
	case token.LIFETIME:
		return p.parseRegionOutlives()
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			switch p.curToken.Literal.(string) {
			case "WF":
				return p.parseWellFormed()
			case "ObjectSafe":
				return p.parseObjectSafe()
			case "ConstEvaluatable":
				return p.parseConstEvaluatable()
			case "ClosureKind":
				return p.parseClosureKind()
			}
		}
		if _, ok := p.scope.Symbols.FindInterface(p.curToken.Literal.(string)); ok && p.peekTokenIs(token.LT) {
			return p.parseProjectionPredicate()
		}
	}

	lhs := p.parseType()
	if lhs == nil {
		return nil
	}

	switch {
	case p.peekTokenIs(token.EQ):
		p.nextToken()
		p.nextToken()
		rhs := p.parseType()
		if rhs == nil {
			return nil
		}
		return obligations.EquatePredicate{A: lhs, B: rhs}

	case p.peekTokenIs(token.SUBTYPE):
		p.nextToken()
		p.nextToken()
		rhs := p.parseType()
		if rhs == nil {
			return nil
		}
		return obligations.SubtypePredicate{A: lhs, B: rhs}

	case p.peekTokenIs(token.COLON):
		p.nextToken()
		p.nextToken()
		if p.curTokenIs(token.LIFETIME) {
			r, ok := p.resolveRegion(p.curToken)
			if !ok {
				return nil
			}
			return obligations.TypeOutlivesPredicate{Ty: lhs, Region: r}
		}
		if !p.curTokenIs(token.IDENT) {
			p.unexpected(p.curToken, "expected an interface or lifetime bound")
			return nil
		}
		boundTok := p.curToken
		ref, projs, ok := p.parseBound(lhs)
		if !ok {
			return nil
		}
		if len(projs) > 0 {
			p.addError(diagnostics.NewError(diagnostics.ErrT003, boundTok,
				"associated type bindings belong in a projection, e.g. "+projs[0].String()))
			return nil
		}
		return obligations.TraitPredicate{Interface: ref}

	default:
		p.addError(diagnostics.NewError(diagnostics.ErrT003, p.peekToken,
			fmt.Sprintf("expected ==, <: or : after %s", lhs)))
		return nil
	}
}

// parseProjectionPredicate parses Iface<Self, Args...>::Item == T. Unlike
// a bound, the self type is written as the first argument.
func (p *Parser) parseProjectionPredicate() obligations.Predicate {
	nameTok := p.curToken
	sym, ok := p.lookupInterface(nameTok)
	if !ok {
		return nil
	}
	if !p.expectPeek(token.LT) {
		return nil
	}
	p.nextToken()
	self := p.parseType()
	if self == nil {
		return nil
	}

	var args []typesystem.Type
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseType()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}
	if !p.expectPeek(token.GT) {
		return nil
	}
	if len(args) != sym.Arity {
		p.addError(diagnostics.NewError(diagnostics.ErrT003, nameTok,
			fmt.Sprintf("%s takes %d arguments after the self type, got %d", sym.Name, sym.Arity, len(args))))
		return nil
	}

	if !p.expectPeek(token.COLON2) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	item := p.curToken.Literal.(string)
	if !p.expectPeek(token.EQ) {
		return nil
	}
	p.nextToken()
	ty := p.parseType()
	if ty == nil {
		return nil
	}

	return obligations.ProjectionPredicate{Projection: typesystem.Projection{
		Interface: sym.Ref(self, args...),
		Item:      item,
		Ty:        ty,
	}}
}

func (p *Parser) parseRegionOutlives() obligations.Predicate {
	a, ok := p.resolveRegion(p.curToken)
	if !ok {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.LIFETIME) {
		return nil
	}
	b, ok := p.resolveRegion(p.curToken)
	if !ok {
		return nil
	}
	return obligations.RegionOutlivesPredicate{A: a, B: b}
}

func (p *Parser) parseWellFormed() obligations.Predicate {
	p.nextToken()
	p.nextToken()
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return obligations.WellFormedPredicate{Ty: ty}
}

func (p *Parser) parseObjectSafe() obligations.Predicate {
	p.nextToken()
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	sym, ok := p.lookupInterface(p.curToken)
	if !ok {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return obligations.ObjectSafePredicate{Interface: sym.DefID, Name: sym.Name}
}

func (p *Parser) parseConstEvaluatable() obligations.Predicate {
	p.nextToken()
	def, ok := p.parseDefID()
	if !ok {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return obligations.ConstEvaluatablePredicate{Def: def}
}

// parseClosureKind parses ClosureKind(#n, Level). Level names a callable
// interface, so renamed lang items are accepted alongside Fn, FnMut and FnOnce.
func (p *Parser) parseClosureKind() obligations.Predicate {
	p.nextToken()
	def, ok := p.parseDefID()
	if !ok {
		return nil
	}
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal.(string)
	level, ok := typesystem.ParseCapabilityLevel(name)
	if sym, found := p.scope.Symbols.FindInterface(name); found && sym.Callable {
		level, ok = sym.Capability, true
	}
	if !ok {
		p.addError(diagnostics.NewError(diagnostics.ErrT003, p.curToken,
			fmt.Sprintf("%s is not a capability level", name)))
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return obligations.ClosureKindPredicate{Closure: def, Level: level}
}

func (p *Parser) parseDefID() (typesystem.DefID, bool) {
	if !p.expectPeek(token.DEF_ID) {
		return typesystem.NoDefID, false
	}
	n := p.curToken.Literal.(int64)
	if n <= 0 || n > int64(^uint32(0)) {
		p.unexpected(p.curToken, "definition id out of range")
		return typesystem.NoDefID, false
	}
	return typesystem.DefID(n), true
}
