package diagnostics

import (
	"strings"
	"testing"

	"github.com/funvibe/closurecheck/internal/token"
)

func TestNewErrorUsesTemplate(t *testing.T) {
	err := NewError(ErrT002, token.Token{Line: 2, Column: 5}, "Frob")
	if err.Message != "unknown interface Frob" {
		t.Errorf("Message = %q", err.Message)
	}
	if got := err.Error(); got != "2:5: error [T002]: unknown interface Frob" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNewErrorFallsBackToJoin(t *testing.T) {
	err := NewError(ErrT001, token.Token{}, "only one arg")
	if err.Message != "only one arg" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestInternalErrors(t *testing.T) {
	ice := NewInternalError(ErrI001, token.Token{}, "'a")
	if !ice.IsInternal() {
		t.Fatal("I001 should be internal")
	}
	if !strings.Contains(ice.Error(), "internal compiler error") {
		t.Errorf("Error() = %q", ice.Error())
	}

	user := NewError(ErrS001, token.Token{}, "missing closure")
	if user.IsInternal() {
		t.Error("S001 should not be internal")
	}
	user.File = "a.yaml"
	if got := user.Error(); got != "a.yaml: error [S001]: malformed scenario: missing closure" {
		t.Errorf("Error() = %q", got)
	}
}
