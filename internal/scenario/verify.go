package scenario

import (
	"errors"
	"fmt"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/pipeline"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// Verify compares the outcome of the check stage with the scenario's
// expectations. An expected error is removed from ctx.Errors; every unmet
// expectation is returned as an S002 diagnostic.
func Verify(ctx *pipeline.PipelineContext) []*diagnostics.DiagnosticError {
	scn := ctx.Scenario
	if scn == nil || scn.Expect == nil {
		return nil
	}
	exp := scn.Expect

	var failures []*diagnostics.DiagnosticError
	fail := func(format string, args ...interface{}) {
		err := diagnostics.NewError(diagnostics.ErrS002, scn.Closure.Token, fmt.Sprintf(format, args...))
		err.File = ctx.FilePath
		failures = append(failures, err)
	}

	if exp.Error != "" {
		if !absorbError(ctx, diagnostics.ErrorCode(exp.Error)) {
			fail("expected error %s, got %s", exp.Error, describeOutcome(ctx))
		}
		return failures
	}
	if ctx.Err != nil || ctx.Result == nil {
		// Already reported by the check stage.
		return nil
	}

	tables, release := ctx.Tables.Borrow()
	defer release()

	id := scn.Closure.ID
	sig, hasSig := tables.ClosureSig(id)
	if exp.Signature != "" {
		switch {
		case !hasSig:
			fail("signature: nothing recorded for %s", id)
		case sig.String() != exp.Signature:
			fail("signature: got %s, want %s", sig, exp.Signature)
		}
	}
	if exp.Resolved != "" {
		switch {
		case !hasSig:
			fail("resolved signature: nothing recorded for %s", id)
		case sig.Apply(ctx.GlobalSubst).String() != exp.Resolved:
			fail("resolved signature: got %s, want %s", sig.Apply(ctx.GlobalSubst), exp.Resolved)
		}
	}

	if exp.Capability != "" {
		got := "none"
		if rec, ok := tables.ClosureKind(id); ok {
			got = rec.Level.String()
		}
		if got != exp.Capability {
			fail("capability: got %s, want %s", got, exp.Capability)
		}
	}

	if exp.Type != "" && ctx.Result.String() != exp.Type {
		fail("type: got %s, want %s", ctx.Result, exp.Type)
	}

	if exp.Coroutine != nil {
		_, isCoroutine := ctx.Result.(typesystem.TCoroutine)
		if isCoroutine != *exp.Coroutine {
			fail("coroutine: got %t, want %t", isCoroutine, *exp.Coroutine)
		}
	}
	return failures
}

// absorbError drops diagnostics with the expected code from ctx.Errors and
// reports whether the check produced one.
func absorbError(ctx *pipeline.PipelineContext, code diagnostics.ErrorCode) bool {
	found := false
	var de *diagnostics.DiagnosticError
	if errors.As(ctx.Err, &de) && de.Code == code {
		found = true
	}
	kept := ctx.Errors[:0]
	for _, err := range ctx.Errors {
		if err.Code == code {
			found = true
			continue
		}
		kept = append(kept, err)
	}
	ctx.Errors = kept
	return found
}

func describeOutcome(ctx *pipeline.PipelineContext) string {
	switch {
	case ctx.Err != nil:
		return ctx.Err.Error()
	case len(ctx.Errors) > 0:
		return ctx.Errors[0].Error()
	case ctx.Result != nil:
		return ctx.Result.String()
	default:
		return "nothing"
	}
}
