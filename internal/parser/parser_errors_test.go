package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/lexer"
	"github.com/funvibe/closurecheck/internal/parser"
)

// parseWithErrors runs the lexer+parser over a type or obligation and returns all diagnostic errors.
func parseWithErrors(t *testing.T, input string, obligation bool) []*diagnostics.DiagnosticError {
	t.Helper()
	p := parser.New(lexer.New(input), testScope(t))
	p.SetFile("input.yaml")
	if obligation {
		p.ParsePredicate()
	} else {
		p.ParseType()
	}
	return p.Errors()
}

// expectError asserts an error with the given code is reported.
func expectError(t *testing.T, input string, obligation bool, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(t, input, obligation)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

// ---------------------------------------------------------------------------
// T001 — Unexpected token
// ---------------------------------------------------------------------------

func TestT001_TypeErrors(t *testing.T) {
	tests := []string{
		"",
		"i32 bool",
		"(i32, bool",
		"fn(i32",
		"unsafe i32",
		"&'nope i32",
		"for<'x, 'x> fn(&'x i32)",
		"dyn",
		"dyn Fn +",
		"dyn Clone(i32)",
		"dyn Fn<i32, i32>",
		"dyn Fn<Output = i32, (i32,)>",
		"Fn",
		"$",
	}
	for _, input := range tests {
		expectError(t, input, false, diagnostics.ErrT001)
	}
}

func TestT001_Position(t *testing.T) {
	err := expectError(t, "fn(i32,\n  bool", false, diagnostics.ErrT001)
	if err.Token.Line != 2 {
		t.Errorf("error line = %d, want 2", err.Token.Line)
	}
	if err.File != "input.yaml" {
		t.Errorf("error file = %q, want input.yaml", err.File)
	}
	if !strings.Contains(err.Error(), "end of input") {
		t.Errorf("message %q should mention end of input", err.Error())
	}
}

// ---------------------------------------------------------------------------
// T002 — Unknown interface
// ---------------------------------------------------------------------------

func TestT002_UnknownInterface(t *testing.T) {
	expectError(t, "dyn Frobnicate", false, diagnostics.ErrT002)
	expectError(t, "?v: Frobnicate<()>", true, diagnostics.ErrT002)
	expectError(t, "ObjectSafe(Frobnicate)", true, diagnostics.ErrT002)
}

// ---------------------------------------------------------------------------
// T003 — Malformed obligation
// ---------------------------------------------------------------------------

func TestT003_MalformedObligation(t *testing.T) {
	tests := []string{
		"?v",
		"Fn<?v>::Output == bool",
		"Fn<?v, (i32,), bool>::Output == bool",
		"?v: Fn(i32) -> bool",
		"ClosureKind(#3, Clone)",
	}
	for _, input := range tests {
		expectError(t, input, true, diagnostics.ErrT003)
	}
}

func TestParseObligationErrorIsDiagnostic(t *testing.T) {
	_, err := parser.ParseObligation("Fn<?v, (i32,)>::Output", testScope(t))
	if err == nil {
		t.Fatal("expected an error")
	}
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DiagnosticError, got %T", err)
	}
	if de.Code != diagnostics.ErrT001 {
		t.Errorf("code = %s, want T001", de.Code)
	}
}
