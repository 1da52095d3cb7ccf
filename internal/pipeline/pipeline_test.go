package pipeline_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/funvibe/closurecheck/internal/analyzer"
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/pipeline"
	"github.com/funvibe/closurecheck/internal/scenario"
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typetable"
)

func TestRunOrderAndErrorCollection(t *testing.T) {
	var order []string
	stage := func(name string, fail bool) pipeline.Processor {
		return pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
			order = append(order, name)
			if fail {
				ctx.AddError(diagnostics.NewError(diagnostics.ErrS001, token.Token{}, name))
			}
			return ctx
		})
	}

	ctx := pipeline.New(stage("a", true), stage("b", false), stage("c", true)).
		Run(&pipeline.PipelineContext{FilePath: "x.yaml"})

	if len(order) != 3 || order[0] != "a" || order[2] != "c" {
		t.Errorf("stages ran as %v", order)
	}
	if len(ctx.Errors) != 2 {
		t.Fatalf("errors = %d, want 2", len(ctx.Errors))
	}
	if ctx.Errors[0].File != "x.yaml" {
		t.Errorf("AddError did not stamp the file: %q", ctx.Errors[0].File)
	}
}

const exportScenario = `
expected: "?v"
obligations:
  - "Fn<?v, (i32,)>::Output == bool"
  - "?v: FnMut<(i32,)>"
closure:
  id: 21
  params: [x]
  body: ["return bool"]
expect:
  capability: Fn
`

func TestExportStage(t *testing.T) {
	db := filepath.Join(t.TempDir(), "closures.db")
	runID := typetable.NewRunID()

	p := pipeline.New(
		&scenario.LoaderProcessor{},
		&analyzer.CheckProcessor{},
		&scenario.VerifyProcessor{},
		&pipeline.ExportProcessor{},
	)
	ctx := p.Run(&pipeline.PipelineContext{
		FilePath:   "export.yaml",
		SourceCode: []byte(exportScenario),
		RunID:      runID,
		Database:   db,
	})
	if ctx.Failed() {
		t.Fatalf("pipeline failed: %v", ctx.Errors)
	}

	rows, err := typetable.ReadExport(context.Background(), db, runID)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.NodeID != 21 || r.Inputs != "(i32,)" || r.Output != "bool" || r.ABI != "rust-call" {
		t.Errorf("row = %+v", r)
	}
	if !r.Level.Valid || r.Level.String != "Fn" {
		t.Errorf("level = %+v, want Fn", r.Level)
	}
}

func TestExportSkippedOnFailure(t *testing.T) {
	db := filepath.Join(t.TempDir(), "closures.db")
	runID := typetable.NewRunID()

	p := pipeline.New(
		&scenario.LoaderProcessor{},
		&analyzer.CheckProcessor{},
		&pipeline.ExportProcessor{},
	)
	ctx := p.Run(&pipeline.PipelineContext{
		FilePath:   "broken.yaml",
		SourceCode: []byte("closure:\n  id: 4\n  returns: i32\n  body: [\"return bool\"]\n"),
		RunID:      runID,
		Database:   db,
	})
	if !ctx.Failed() || ctx.Errors[0].Code != diagnostics.ErrB001 {
		t.Fatalf("expected B001, got %v", ctx.Errors)
	}
	rows, err := typetable.ReadExport(context.Background(), db, runID)
	if err == nil && len(rows) != 0 {
		t.Errorf("failed scenario was exported: %+v", rows)
	}
}
