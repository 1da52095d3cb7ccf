package ast

import (
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// Identifier is a bare name: a parameter or a captured variable.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) String() string { return i.Value }

// Parameter is one closure parameter. Type is the annotation, or TInfer
// when the parameter is written without one or as '_'.
type Parameter struct {
	Token token.Token
	Name  *Identifier
	Type  typesystem.Type
}

// IsAnnotated reports whether the parameter carries a concrete annotation.
func (p *Parameter) IsAnnotated() bool {
	if p.Type == nil {
		return false
	}
	_, infer := p.Type.(typesystem.TInfer)
	return !infer
}

// ClosureExpr represents a closure expression.
// |x: i32, y| -> bool { ... }
type ClosureExpr struct {
	Token      token.Token // The '|' token
	ID         typesystem.NodeID
	DefID      typesystem.DefID
	Parameters []*Parameter
	ReturnType typesystem.Type // nil when omitted, TInfer for '-> _'
	Captures   []*Identifier   // one slot per captured variable
	Body       *BlockStatement
}

func (ce *ClosureExpr) Accept(v Visitor)      { v.VisitClosureExpr(ce) }
func (ce *ClosureExpr) expressionNode()       {}
func (ce *ClosureExpr) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *ClosureExpr) GetToken() token.Token { return ce.Token }

// HasReturnAnnotation reports whether the declared return type is concrete.
func (ce *ClosureExpr) HasReturnAnnotation() bool {
	if ce.ReturnType == nil {
		return false
	}
	_, infer := ce.ReturnType.(typesystem.TInfer)
	return !infer
}
