package analyzer

import (
	"github.com/funvibe/closurecheck/internal/ast"
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// StatementChecker is a BodyChecker for bodies made of return and yield
// statements. Returned types are unified with the signature's output; any
// yield makes the body a coroutine whose interior witness is the tuple of
// yielded types.
type StatementChecker struct {
	sig    typesystem.Signature
	subst  typesystem.Subst
	yields []typesystem.Type
	Errors []*diagnostics.DiagnosticError
}

func NewStatementChecker() *StatementChecker {
	return &StatementChecker{}
}

func (c *StatementChecker) CheckBody(expr *ast.ClosureExpr, sig typesystem.Signature) BodyResult {
	c.sig = sig
	c.subst = make(typesystem.Subst)
	c.yields = nil

	expr.Accept(c)

	result := BodyResult{Subst: c.subst}
	if c.yields != nil {
		result.Interior = &typesystem.Interior{Witness: typesystem.TTuple{Elements: c.yields}}
	}
	return result
}

func (c *StatementChecker) VisitClosureExpr(expr *ast.ClosureExpr) {
	if expr.Body != nil {
		expr.Body.Accept(c)
	}
}

func (c *StatementChecker) VisitBlockStatement(block *ast.BlockStatement) {
	for _, stmt := range block.Statements {
		stmt.Accept(c)
	}
}

func (c *StatementChecker) VisitReturnStatement(stmt *ast.ReturnStatement) {
	got := stmt.Value.Apply(c.subst)
	want := c.sig.Output.Apply(c.subst)
	s, err := typesystem.Unify(want, got)
	if err != nil {
		logging.Debugf("body", "return %s against %s: %v", got, want, err)
		c.Errors = append(c.Errors, diagnostics.NewError(diagnostics.ErrB001, stmt.Token, err.Error()))
		return
	}
	c.subst = c.subst.Compose(s)
}

func (c *StatementChecker) VisitYieldStatement(stmt *ast.YieldStatement) {
	c.yields = append(c.yields, stmt.Value)
}
