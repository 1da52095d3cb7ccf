package pipeline

import (
	"github.com/funvibe/closurecheck/internal/ast"
	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/typesystem"
	"github.com/funvibe/closurecheck/internal/typetable"
)

// PipelineContext carries one scenario file through the stages.
type PipelineContext struct {
	FilePath   string
	SourceCode []byte // when set, read instead of FilePath
	Config     *config.Config

	Scenario *ast.Scenario

	// Filled by the check stage.
	Tables      *typetable.Cell
	Result      typesystem.Type
	GlobalSubst typesystem.Subst
	Err         error // what CheckClosure returned

	// RunID tags exported rows; empty disables the export stage.
	RunID    string
	Database string

	Errors []*diagnostics.DiagnosticError
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// AddError records err, stamping the file path when it has none.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// LangItems returns the callable family names from the configuration, or the defaults.
func (ctx *PipelineContext) LangItems() config.LangItems {
	if ctx.Config == nil {
		return config.Default().LangItems
	}
	return ctx.Config.LangItems
}
