package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/pipeline"
	"github.com/funvibe/closurecheck/internal/typetable"
)

const passing = `
expected: "fn(i32) -> bool"
closure:
  id: 1
  params: [x]
expect:
  signature: "((i32,)) -> bool"
  capability: Fn
`

const failing = `
closure:
  id: 2
  returns: i32
  body: ["return bool"]
`

func writeFile(t *testing.T, path, src string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func captureLog(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	logging.Initialize(level)
	var buf bytes.Buffer
	prev := logging.SetOutput(&buf)
	t.Cleanup(func() {
		logging.SetOutput(prev)
		logging.ResetCounts()
	})
	return &buf
}

func TestCollectScenarios(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"), passing)
	writeFile(t, filepath.Join(dir, "a.toml"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "closurecheck.yaml"), "log_level: warn\n")
	writeFile(t, filepath.Join(dir, "sub", "c.yml"), passing)
	writeFile(t, filepath.Join(dir, ".hidden", "d.yaml"), passing)

	files, err := collectScenarios(dir)
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if got := strings.Join(rel, ","); got != "a.toml,b.yaml,sub/c.yml" {
		t.Errorf("collected %s", got)
	}

	single := filepath.Join(dir, "b.yaml")
	files, err = collectScenarios(single)
	if err != nil || len(files) != 1 || files[0] != single {
		t.Errorf("single file = %v, %v", files, err)
	}
}

func TestCheckFilesCountsFailures(t *testing.T) {
	buf := captureLog(t, "verbose")
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, good, passing)
	writeFile(t, bad, failing)

	err := checkFiles(context.Background(), []string{good, bad}, checkOptions{config: config.Default()})
	if err != nil {
		t.Fatalf("checkFiles: %v", err)
	}
	if errs, _ := logging.Counts(); errs != 1 {
		t.Errorf("errors = %d, want 1\n%s", errs, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "B001") {
		t.Errorf("missing B001 diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "good.yaml") {
		t.Errorf("missing result line for good.yaml:\n%s", out)
	}
}

func TestCheckFileExportsAndDumps(t *testing.T) {
	buf := captureLog(t, "warn")
	dir := t.TempDir()
	path := filepath.Join(dir, "good.yaml")
	writeFile(t, path, passing)
	db := filepath.Join(dir, "out.db")

	opts := checkOptions{config: config.Default(), database: db, dump: true}
	pctx := checkFile(path, opts, &pipeline.ExportProcessor{})
	if pctx.Failed() {
		t.Fatalf("check failed: %v", pctx.Errors)
	}
	if !strings.Contains(buf.String(), "capability: Fn") {
		t.Errorf("dump missing capability:\n%s", buf.String())
	}

	rows, err := typetable.ReadExport(context.Background(), db, pctx.RunID)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	if len(rows) != 1 || rows[0].Output != "bool" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	captureLog(t, "silent")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := checkFiles(ctx, []string{"missing.yaml"}, checkOptions{config: config.Default()}); err == nil {
		t.Error("expected a cancellation error")
	}
}
