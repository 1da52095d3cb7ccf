package pipeline

import (
	"context"
	"sync"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/token"
)

// ExportProcessor writes the type table of a successfully checked scenario
// to ctx.Database. One processor may be shared by concurrent pipelines;
// writes to the database are serialized.
type ExportProcessor struct {
	mu sync.Mutex
}

func (ep *ExportProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Database == "" || ctx.RunID == "" || ctx.Tables == nil || ctx.Failed() {
		return ctx
	}

	ep.mu.Lock()
	defer ep.mu.Unlock()

	if err := ctx.Tables.ExportSQLite(context.Background(), ctx.Database, ctx.FilePath, ctx.RunID); err != nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrE001, token.Token{}, err.Error()))
		return ctx
	}
	logging.Debugf("export", "%s -> %s (run %s)", ctx.FilePath, ctx.Database, ctx.RunID)
	return ctx
}
