package analyzer

import (
	"errors"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/obligations"
	"github.com/funvibe/closurecheck/internal/pipeline"
	"github.com/funvibe/closurecheck/internal/typetable"
)

// CheckProcessor runs closure inference over a loaded scenario.
type CheckProcessor struct{}

func (cp *CheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	scn := ctx.Scenario
	if scn == nil || scn.Closure == nil || ctx.Failed() {
		return ctx
	}

	pool := obligations.NewOrderedPool()
	for _, o := range scn.Obligations {
		pool.Register(o)
	}

	var generics GenericsSource
	if scn.Generics != nil {
		generics = GenericsMap{scn.Closure.DefID: scn.Generics}
	}

	body := NewStatementChecker()
	ctx.Tables = typetable.NewCell(nil)
	ic := NewInferenceContext(pool, ctx.Tables, scn.Scope, generics, body)
	ic.ParamEnv = ParamEnv{Item: scn.Closure.DefID, Predicates: scn.Where}
	if scn.Generics != nil && scn.Generics.Parent != nil {
		ic.ParamEnv.Item = scn.Generics.Parent.DefID
	}

	ctx.Result, ctx.Err = ic.CheckClosure(scn.Closure, scn.Expected)
	ctx.GlobalSubst = ic.GlobalSubst

	for _, err := range body.Errors {
		ctx.AddError(err)
	}
	if ctx.Err != nil {
		var de *diagnostics.DiagnosticError
		if !errors.As(ctx.Err, &de) {
			de = diagnostics.NewInternalError(diagnostics.ErrI000, scn.Closure.Token, ctx.Err.Error())
		}
		ctx.AddError(de)
	}
	return ctx
}
