package parser

import (
	"fmt"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/symbols"
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

func (p *Parser) parseType() typesystem.Type {
	switch p.curToken.Type {
	case token.UNDERSCORE:
		return typesystem.TInfer{}
	case token.INFER_VAR:
		return typesystem.TVar{Name: p.curToken.Literal.(string)}
	case token.IDENT:
		return p.parseNamedType()
	case token.LPAREN:
		return p.parseTupleType()
	case token.AMPERSAND:
		return p.parseRefType()
	case token.FN, token.UNSAFE, token.EXTERN, token.FOR:
		return p.parseFnPtrType()
	case token.DYN:
		return p.parseDynType()
	default:
		p.unexpected(p.curToken, "expected a type")
		return nil
	}
}

// parseNamedType resolves a bare name: Self, then generic parameters
// innermost first, then nominal types. Interfaces are not types on their own.
func (p *Parser) parseNamedType() typesystem.Type {
	name := p.curToken.Literal.(string)
	if name == "Self" {
		return typesystem.TDummySelf{}
	}
	if param, ok := p.findParam(name, typesystem.ParamType); ok {
		return typesystem.TParam{Index: param.Index, Name: param.Name}
	}
	if _, ok := p.scope.Symbols.FindInterface(name); ok {
		p.unexpected(p.curToken, fmt.Sprintf("interface %s used as a type, write dyn %s", name, name))
		return nil
	}
	return typesystem.TCon{Name: name}
}

// parseTupleType handles (), (T), (T,) and (A, B, ...). A single element
// without a trailing comma is just a parenthesized type.
func (p *Parser) parseTupleType() typesystem.Type {
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return typesystem.TTuple{}
	}

	var elems []typesystem.Type
	trailingComma := false
	for {
		p.nextToken()
		el := p.parseType()
		if el == nil {
			return nil
		}
		elems = append(elems, el)
		trailingComma = false

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			trailingComma = true
			if p.peekTokenIs(token.RPAREN) {
				p.nextToken()
				break
			}
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		break
	}

	if len(elems) == 1 && !trailingComma {
		return elems[0]
	}
	return typesystem.TTuple{Elements: elems}
}

// parseTypeList parses a parenthesized, comma separated list of types.
// A trailing comma is allowed.
func (p *Parser) parseTypeList() ([]typesystem.Type, bool) {
	var list []typesystem.Type
	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		t := p.parseType()
		if t == nil {
			return nil, false
		}
		list = append(list, t)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return list, true
}

func (p *Parser) parseRefType() typesystem.Type {
	ref := typesystem.TRef{Region: typesystem.ErasedRegion}
	if p.peekTokenIs(token.LIFETIME) {
		p.nextToken()
		r, ok := p.resolveRegion(p.curToken)
		if !ok {
			return nil
		}
		ref.Region = r
	}
	if p.peekTokenIs(token.MUT) {
		p.nextToken()
		ref.Mutable = true
	}
	p.nextToken()
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	ref.Elem = elem
	return ref
}

// parseFnPtrType parses [for<'a, ...>] [unsafe] [extern ["abi"]] fn(params) [-> T].
func (p *Parser) parseFnPtrType() typesystem.Type {
	sig := typesystem.Signature{Unsafety: typesystem.Normal, ABI: typesystem.ABIRust}

	if p.curTokenIs(token.FOR) {
		bound, ok := p.parseBinder()
		if !ok {
			return nil
		}
		defer p.popBinder()
		sig.BoundRegions = bound
		p.nextToken()
	}
	if p.curTokenIs(token.UNSAFE) {
		sig.Unsafety = typesystem.Unsafe
		p.nextToken()
	}
	if p.curTokenIs(token.EXTERN) {
		sig.ABI = typesystem.ABIC
		if p.peekTokenIs(token.STRING) {
			p.nextToken()
			sig.ABI = typesystem.ABI(p.curToken.Literal.(string))
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.FN) {
		p.unexpected(p.curToken, "expected fn")
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		if p.curTokenIs(token.ELLIPSIS) {
			sig.Variadic = true
			break
		}
		in := p.parseType()
		if in == nil {
			return nil
		}
		sig.Inputs = append(sig.Inputs, in)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	out, ok := p.parseReturnType()
	if !ok {
		return nil
	}
	sig.Output = out
	return typesystem.TFnPtr{Sig: sig}
}

// parseReturnType parses an optional "-> T". A missing arrow means unit.
func (p *Parser) parseReturnType() (typesystem.Type, bool) {
	if !p.peekTokenIs(token.ARROW) {
		return typesystem.TTuple{}, true
	}
	p.nextToken()
	p.nextToken()
	out := p.parseType()
	return out, out != nil
}

// parseBinder parses for<'a, 'b> and opens a binder scope for those names.
// The caller must popBinder once the bound signature is complete.
func (p *Parser) parseBinder() ([]typesystem.Region, bool) {
	if !p.expectPeek(token.LT) {
		return nil, false
	}
	scope := map[string]typesystem.Region{}
	var bound []typesystem.Region
	for !p.peekTokenIs(token.GT) {
		if !p.expectPeek(token.LIFETIME) {
			return nil, false
		}
		name := p.curToken.Literal.(string)
		if _, dup := scope[name]; dup {
			p.unexpected(p.curToken, fmt.Sprintf("lifetime '%s declared twice", name))
			return nil, false
		}
		r := typesystem.Region{Kind: typesystem.RegionLateBound, Index: len(bound), Name: name}
		scope[name] = r
		bound = append(bound, r)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.GT) {
		return nil, false
	}
	p.binders = append(p.binders, scope)
	return bound, true
}

func (p *Parser) popBinder() {
	p.binders = p.binders[:len(p.binders)-1]
}

// parseDynType parses dyn Bound (+ Bound)* (+ 'r)?. The first bound is the
// principal; later bounds only contribute their associated type bindings.
func (p *Parser) parseDynType() typesystem.Type {
	dyn := typesystem.TDynamic{Region: typesystem.ErasedRegion}
	if !p.expectPeek(token.IDENT) {
		return nil
	}

	for {
		if p.curTokenIs(token.LIFETIME) {
			r, ok := p.resolveRegion(p.curToken)
			if !ok {
				return nil
			}
			dyn.Region = r
		} else {
			ref, projs, ok := p.parseBound(typesystem.TDummySelf{})
			if !ok {
				return nil
			}
			if dyn.Principal == nil {
				dyn.Principal = &ref
			}
			dyn.Projections = append(dyn.Projections, projs...)
		}

		if !p.peekTokenIs(token.PLUS) {
			break
		}
		p.nextToken()
		if !p.peekTokenIs(token.IDENT) && !p.peekTokenIs(token.LIFETIME) {
			p.unexpected(p.peekToken, "expected a bound")
			return nil
		}
		p.nextToken()
	}
	return dyn
}

// parseBound parses an interface bound applied to self:
//
//	Name
//	Name<A, Item = T>
//	Name(A, B) -> R     (callable interfaces only)
//
// It returns the interface reference and one projection per binding.
func (p *Parser) parseBound(self typesystem.Type) (typesystem.InterfaceRef, []typesystem.Projection, bool) {
	nameTok := p.curToken
	sym, ok := p.lookupInterface(nameTok)
	if !ok {
		return typesystem.InterfaceRef{}, nil, false
	}

	switch {
	case p.peekTokenIs(token.LPAREN):
		if !sym.Callable || len(sym.Items) == 0 {
			p.unexpected(p.peekToken, fmt.Sprintf("%s does not take parenthesized arguments", sym.Name))
			return typesystem.InterfaceRef{}, nil, false
		}
		p.nextToken()
		args, ok := p.parseTypeList()
		if !ok {
			return typesystem.InterfaceRef{}, nil, false
		}
		tuple := typesystem.TTuple{Elements: args}
		out, ok := p.parseReturnType()
		if !ok {
			return typesystem.InterfaceRef{}, nil, false
		}
		ref := sym.Ref(self, tuple)
		return ref, []typesystem.Projection{{Interface: ref, Item: sym.Items[0], Ty: out}}, true

	case p.peekTokenIs(token.LT):
		p.nextToken()
		var args []typesystem.Type
		type binding struct {
			item string
			ty   typesystem.Type
		}
		var bindings []binding
		for !p.peekTokenIs(token.GT) {
			p.nextToken()
			if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
				item := p.curToken.Literal.(string)
				p.nextToken()
				p.nextToken()
				ty := p.parseType()
				if ty == nil {
					return typesystem.InterfaceRef{}, nil, false
				}
				bindings = append(bindings, binding{item, ty})
			} else {
				if len(bindings) > 0 {
					p.unexpected(p.curToken, "positional arguments must come before bindings")
					return typesystem.InterfaceRef{}, nil, false
				}
				arg := p.parseType()
				if arg == nil {
					return typesystem.InterfaceRef{}, nil, false
				}
				args = append(args, arg)
			}
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.GT) {
			return typesystem.InterfaceRef{}, nil, false
		}
		if len(args) != 0 && len(args) != sym.Arity {
			p.addError(diagnostics.NewError(diagnostics.ErrT001, nameTok, describe(nameTok),
				fmt.Sprintf("%s takes %d arguments, got %d", sym.Name, sym.Arity, len(args))))
			return typesystem.InterfaceRef{}, nil, false
		}
		ref := sym.Ref(self, args...)
		var projs []typesystem.Projection
		for _, b := range bindings {
			projs = append(projs, typesystem.Projection{Interface: ref, Item: b.item, Ty: b.ty})
		}
		return ref, projs, true

	default:
		return sym.Ref(self), nil, true
	}
}

func (p *Parser) lookupInterface(tok token.Token) (symbols.Symbol, bool) {
	name, _ := tok.Literal.(string)
	sym, ok := p.scope.Symbols.FindInterface(name)
	if !ok {
		p.addError(diagnostics.NewError(diagnostics.ErrT002, tok, name))
		return symbols.Symbol{}, false
	}
	return sym, true
}

// resolveRegion maps a lifetime token to a region: 'static and '_ first,
// then open for<> binders innermost first, then region parameters in scope.
func (p *Parser) resolveRegion(tok token.Token) (typesystem.Region, bool) {
	name := tok.Literal.(string)
	switch name {
	case "static":
		return typesystem.StaticRegion, true
	case "_":
		return typesystem.ErasedRegion, true
	}
	for i := len(p.binders) - 1; i >= 0; i-- {
		if r, ok := p.binders[i][name]; ok {
			return r, true
		}
	}
	if param, ok := p.findParam(name, typesystem.ParamRegion); ok {
		return typesystem.Region{Kind: typesystem.RegionEarlyBound, Index: param.Index, Name: name}, true
	}
	p.unexpected(tok, fmt.Sprintf("undeclared lifetime '%s", name))
	return typesystem.Region{}, false
}

func (p *Parser) findParam(name string, kind typesystem.GenericParamKind) (typesystem.GenericParam, bool) {
	for g := p.scope.Generics; g != nil; g = g.Parent {
		for _, param := range g.Params {
			if param.Kind == kind && param.Name == name {
				return param, true
			}
		}
	}
	return typesystem.GenericParam{}, false
}
