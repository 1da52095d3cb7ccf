package scenario_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/closurecheck/internal/analyzer"
	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/pipeline"
	"github.com/funvibe/closurecheck/internal/scenario"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

func runScenario(t *testing.T, ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	t.Helper()
	p := pipeline.New(
		&scenario.LoaderProcessor{},
		&analyzer.CheckProcessor{},
		&scenario.VerifyProcessor{},
	)
	return p.Run(ctx)
}

func formatErrors(errs []*diagnostics.DiagnosticError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()
			ctx := runScenario(t, &pipeline.PipelineContext{FilePath: path})
			if ctx.Failed() {
				t.Fatalf("scenario failed:\n%s", formatErrors(ctx.Errors))
			}
			if ctx.Scenario == nil || ctx.Scenario.Expect == nil {
				t.Fatalf("fixture %s has no expectations", path)
			}
		})
	}
}

func TestUnmetExpectation(t *testing.T) {
	src := `
expected: "fn(i32) -> i32"
closure:
  id: 1
  params: [x]
expect:
  signature: "((i32,)) -> bool"
  capability: FnOnce
  coroutine: true
`
	ctx := runScenario(t, &pipeline.PipelineContext{FilePath: "unmet.yaml", SourceCode: []byte(src)})
	if len(ctx.Errors) != 3 {
		t.Fatalf("expected 3 failures, got:\n%s", formatErrors(ctx.Errors))
	}
	for _, e := range ctx.Errors {
		if e.Code != diagnostics.ErrS002 {
			t.Errorf("expected S002, got %s", e.Code)
		}
		if e.File != "unmet.yaml" {
			t.Errorf("error file = %q", e.File)
		}
	}
	if !strings.Contains(ctx.Errors[0].Message, "got ((i32,)) -> i32") {
		t.Errorf("first failure should show the recorded signature: %s", ctx.Errors[0].Message)
	}
}

func TestExpectedErrorMissing(t *testing.T) {
	src := `
closure:
  id: 1
expect:
  error: I001
`
	ctx := runScenario(t, &pipeline.PipelineContext{FilePath: "missing.yaml", SourceCode: []byte(src)})
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrS002 {
		t.Fatalf("expected one S002, got:\n%s", formatErrors(ctx.Errors))
	}
}

func TestUnexpectedInternalError(t *testing.T) {
	src := `
generics:
  own: ["'b"]
closure:
  id: 1
`
	ctx := runScenario(t, &pipeline.PipelineContext{FilePath: "ice.yaml", SourceCode: []byte(src)})
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected one error, got:\n%s", formatErrors(ctx.Errors))
	}
	if !ctx.Errors[0].IsInternal() || ctx.Errors[0].Code != diagnostics.ErrI001 {
		t.Errorf("expected I001, got %s", ctx.Errors[0].Error())
	}
	if ctx.Result != nil {
		t.Errorf("no type should be produced, got %s", ctx.Result)
	}
}

func TestRenamedLangItems(t *testing.T) {
	cfg, err := config.Parse([]byte("lang_items:\n  fn: Call\n  fn_mut: CallMut\n  fn_once: CallOnce\n"), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	src := `
expected: "?v"
obligations:
  - "CallMut<?v, (u8,)>::Output == u8"
  - "?v: CallOnce<(u8,)>"
closure:
  id: 3
  params: [b]
expect:
  signature: "((u8,)) -> u8"
  capability: FnMut
`
	ctx := runScenario(t, &pipeline.PipelineContext{FilePath: "renamed.yaml", SourceCode: []byte(src), Config: cfg})
	if ctx.Failed() {
		t.Fatalf("scenario failed:\n%s", formatErrors(ctx.Errors))
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.toml")
	src := `
expected = "?v"
obligations = ["FnOnce<?v, (String,)>::Output == ()"]

[closure]
id = 5
params = ["s"]
captures = ["buf"]
body = ["return ()"]
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := runScenario(t, &pipeline.PipelineContext{FilePath: path})
	if ctx.Failed() {
		t.Fatalf("scenario failed:\n%s", formatErrors(ctx.Errors))
	}
	if ctx.Scenario.Name != "disk" {
		t.Errorf("default name = %q, want disk", ctx.Scenario.Name)
	}
	closure, ok := ctx.Result.(typesystem.TClosure)
	if !ok {
		t.Fatalf("expected a closure type, got %T", ctx.Result)
	}
	if got := closure.Substs.String(); got != "<?$t1>" {
		t.Errorf("substs = %s, want one capture placeholder", got)
	}

	tables, release := ctx.Tables.Borrow()
	defer release()
	rec, ok := tables.ClosureKind(5)
	if !ok || rec.Level != typesystem.CallOnce {
		t.Errorf("kind = %v, %v, want FnOnce", rec, ok)
	}
}
