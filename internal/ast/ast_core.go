package ast

import (
	"github.com/funvibe/closurecheck/internal/obligations"
	"github.com/funvibe/closurecheck/internal/symbols"
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Visitor walks closure bodies.
type Visitor interface {
	VisitClosureExpr(*ClosureExpr)
	VisitBlockStatement(*BlockStatement)
	VisitReturnStatement(*ReturnStatement)
	VisitYieldStatement(*YieldStatement)
}

// Scenario is the root node the loader produces: one closure expression
// together with the context it is checked in.
type Scenario struct {
	File string
	Name string

	// Expected is the type pushed down from the enclosing expression, or nil.
	Expected typesystem.Type
	// Obligations is the pending pool, in registration order.
	Obligations []obligations.Obligation
	// Where holds the predicates of the parameter environment.
	Where []obligations.Predicate

	// Scope resolves interface names and provides the callable family.
	Scope *symbols.SymbolTable

	Closure *ClosureExpr
	// Generics of the closure definition. Parent holds the enclosing item's.
	Generics *typesystem.Generics

	Expect *Expectation
}

// Expectation is what a scenario asserts about the outcome. Empty fields
// are not checked.
type Expectation struct {
	Signature  string // tupled signature as recorded in the table
	Resolved   string // the same signature after the final substitution
	Capability string // Fn, FnMut, FnOnce or "none"
	Type       string // the inferred closure or coroutine type
	Coroutine  *bool
	Error      string // diagnostic code
}

func (s *Scenario) Accept(v Visitor) {
	if s.Closure != nil {
		s.Closure.Accept(v)
	}
}

func (s *Scenario) TokenLiteral() string {
	if s.Closure != nil {
		return s.Closure.TokenLiteral()
	}
	return ""
}
