package scenario

import (
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/pipeline"
)

// LoaderProcessor reads ctx.FilePath (or ctx.SourceCode) into ctx.Scenario.
type LoaderProcessor struct{}

func (lp *LoaderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	items := ctx.LangItems()
	var errs []*diagnostics.DiagnosticError
	if ctx.SourceCode != nil {
		ctx.Scenario, errs = Parse(ctx.SourceCode, ctx.FilePath, items)
	} else {
		ctx.Scenario, errs = Load(ctx.FilePath, items)
	}
	for _, err := range errs {
		ctx.AddError(err)
	}
	return ctx
}

// VerifyProcessor checks the scenario's expectations after the check stage.
type VerifyProcessor struct{}

func (vp *VerifyProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Scenario == nil {
		return ctx
	}
	for _, err := range Verify(ctx) {
		ctx.AddError(err)
	}
	return ctx
}
