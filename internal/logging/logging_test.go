package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/token"
)

func withLogger(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	prev := logger
	t.Cleanup(func() { logger = prev })

	Initialize(level)
	var buf bytes.Buffer
	SetOutput(&buf)
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]int{
		"silent":  LogLevelSilent,
		"error":   LogLevelError,
		"warn":    LogLevelWarning,
		"verbose": LogLevelVerbose,
		"debug":   LogLevelDebug,
		"bogus":   LogLevelWarning,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestDebugfRespectsLevel(t *testing.T) {
	buf := withLogger(t, "warn")
	Debugf("scan", "found %d", 3)
	if buf.Len() != 0 {
		t.Errorf("debug output at warn level: %q", buf.String())
	}

	buf = withLogger(t, "debug")
	Debugf("scan", "found %d", 3)
	if !strings.Contains(buf.String(), "[scan] found 3") {
		t.Errorf("missing debug output: %q", buf.String())
	}
}

func TestLogDiagnosticCounts(t *testing.T) {
	buf := withLogger(t, "error")

	LogDiagnostic(diagnostics.NewError(diagnostics.ErrS001, token.Token{Line: 2, Column: 1}, "missing closure"))
	LogDiagnostic(diagnostics.NewInternalError(diagnostics.ErrI001, token.Token{}, "'a"))
	LogWarning("Config", "ignored key")

	if ShouldProceed() {
		t.Error("ShouldProceed after errors")
	}
	errs, warns := Counts()
	if errs != 2 || warns != 1 {
		t.Errorf("Counts = %d, %d", errs, warns)
	}

	out := buf.String()
	if !strings.Contains(out, "malformed scenario: missing closure") {
		t.Errorf("missing user diagnostic in %q", out)
	}
	if !strings.Contains(out, "Fatal Error") || !strings.Contains(out, "closure has region param 'a") {
		t.Errorf("missing internal error banner in %q", out)
	}
	if strings.Contains(out, "ignored key") {
		t.Errorf("warning printed at error level: %q", out)
	}
}

func TestSilentPrintsNothing(t *testing.T) {
	buf := withLogger(t, "silent")
	LogFatal("boom")
	LogResult("a.yaml", "ok")
	DisplaySummary(1)
	if buf.Len() != 0 {
		t.Errorf("silent logger wrote %q", buf.String())
	}
}

func TestResetCounts(t *testing.T) {
	withLogger(t, "silent")
	LogFatal("broken")
	LogWarning("Config", "unused")
	ResetCounts()
	if errs, warns := Counts(); errs != 0 || warns != 0 {
		t.Errorf("counts after reset = %d/%d", errs, warns)
	}
	if !ShouldProceed() {
		t.Error("ShouldProceed after reset = false")
	}
}
