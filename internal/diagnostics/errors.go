package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/closurecheck/internal/token"
)

type ErrorCode string

const (
	// Configuration errors
	ErrC001 ErrorCode = "C001" // invalid configuration

	// Scenario errors
	ErrS001 ErrorCode = "S001" // malformed scenario file
	ErrS002 ErrorCode = "S002" // scenario expectation not met

	// Type syntax errors
	ErrT001 ErrorCode = "T001" // unexpected token
	ErrT002 ErrorCode = "T002" // unknown interface name
	ErrT003 ErrorCode = "T003" // malformed obligation

	// Export errors
	ErrE001 ErrorCode = "E001" // type table export failed

	// Closure body errors
	ErrB001 ErrorCode = "B001" // returned type does not match the signature

	// Internal compiler errors
	ErrI000 ErrorCode = "I000" // unclassified internal failure
	ErrI001 ErrorCode = "I001" // named region parameter on closure
	ErrI002 ErrorCode = "I002" // type table entry written twice
)

var errorTemplates = map[ErrorCode]string{
	ErrC001: "invalid configuration: %s",
	ErrS001: "malformed scenario: %s",
	ErrS002: "expectation failed: %s",
	ErrT001: "unexpected %s: %s",
	ErrT002: "unknown interface %s",
	ErrT003: "malformed obligation: %s",
	ErrE001: "export failed: %s",
	ErrB001: "mismatched return type: %s",
	ErrI000: "%s",
	ErrI001: "closure has region param %s",
	ErrI002: "%s",
}

// DiagnosticError is an error with a code and source position.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError builds a diagnostic from the code's template and args.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := errorTemplates[code]
	var msg string
	if ok && strings.Count(tmpl, "%") == len(args) {
		msg = fmt.Sprintf(tmpl, args...)
	} else {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, fmt.Sprint(a))
		}
		msg = strings.Join(parts, " ")
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

// NewInternalError builds an internal compiler error. These indicate a broken
// promise from a collaborator, not invalid user input.
func NewInternalError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	de := NewError(code, tok, args...)
	if !de.IsInternal() {
		de.Message = "internal: " + de.Message
	}
	return de
}

// IsInternal reports whether the diagnostic is an internal compiler error.
func (e *DiagnosticError) IsInternal() bool {
	return strings.HasPrefix(string(e.Code), "I")
}

func (e *DiagnosticError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(":")
	}
	if e.Token.Line > 0 {
		sb.WriteString(fmt.Sprintf("%d:%d: ", e.Token.Line, e.Token.Column))
	} else if e.File != "" {
		sb.WriteString(" ")
	}
	if e.IsInternal() {
		sb.WriteString("internal compiler error")
	} else {
		sb.WriteString("error")
	}
	sb.WriteString(fmt.Sprintf(" [%s]: %s", e.Code, e.Message))
	return sb.String()
}
