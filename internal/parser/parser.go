package parser

import (
	"fmt"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/lexer"
	"github.com/funvibe/closurecheck/internal/obligations"
	"github.com/funvibe/closurecheck/internal/symbols"
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// TokenStream is anything that hands out tokens one at a time.
type TokenStream interface {
	NextToken() token.Token
}

// Scope is what names in a type expression resolve against: interfaces
// come from Symbols and generic parameters from Generics (parents included).
type Scope struct {
	Symbols  *symbols.SymbolTable
	Generics *typesystem.Generics
}

// Parser is a recursive-descent parser for type expressions and
// obligations. Every parse method starts with curToken on the first token
// of its construct and leaves it on the last one.
type Parser struct {
	stream TokenStream
	scope  *Scope
	file   string

	curToken  token.Token
	peekToken token.Token

	// for<...> binders currently open, innermost last
	binders []map[string]typesystem.Region

	errors []*diagnostics.DiagnosticError
}

func New(stream TokenStream, scope *Scope) *Parser {
	if scope == nil {
		scope = &Scope{}
	}
	if scope.Symbols == nil {
		scope.Symbols = symbols.NewSymbolTable()
	}
	p := &Parser{stream: stream, scope: scope}
	p.nextToken()
	p.nextToken()
	return p
}

// SetFile sets the file name stamped on reported errors.
func (p *Parser) SetFile(file string) { p.file = file }

func (p *Parser) Errors() []*diagnostics.DiagnosticError { return p.errors }

// Err returns the first reported error, or nil.
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors[0]
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.NewError(diagnostics.ErrT001, p.peekToken,
		describe(p.peekToken), fmt.Sprintf("expected %s", t)))
}

func (p *Parser) unexpected(tok token.Token, want string) {
	p.addError(diagnostics.NewError(diagnostics.ErrT001, tok, describe(tok), want))
}

func (p *Parser) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = p.file
	}
	p.errors = append(p.errors, err)
}

// expectEnd reports trailing input after a complete construct.
func (p *Parser) expectEnd() bool {
	if p.peekTokenIs(token.EOF) {
		return true
	}
	p.unexpected(p.peekToken, "expected end of input")
	return false
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.ILLEGAL:
		return fmt.Sprintf("character %q", tok.Lexeme)
	default:
		return fmt.Sprintf("token %q", tok.Lexeme)
	}
}

// ParseType parses src as a single type expression.
func ParseType(src string, scope *Scope) (typesystem.Type, error) {
	p := New(lexer.New(src), scope)
	t := p.ParseType()
	if t == nil || len(p.errors) > 0 {
		return nil, p.Err()
	}
	return t, nil
}

// ParseObligation parses src as a single predicate.
func ParseObligation(src string, scope *Scope) (obligations.Predicate, error) {
	p := New(lexer.New(src), scope)
	pred := p.ParsePredicate()
	if pred == nil || len(p.errors) > 0 {
		return nil, p.Err()
	}
	return pred, nil
}

// ParseType parses one type and requires the input to end after it.
func (p *Parser) ParseType() typesystem.Type {
	t := p.parseType()
	if t == nil {
		return nil
	}
	if !p.expectEnd() {
		return nil
	}
	return t
}

// ParsePredicate parses one obligation predicate and requires the input to end after it.
func (p *Parser) ParsePredicate() obligations.Predicate {
	pred := p.parsePredicate()
	if pred == nil {
		return nil
	}
	if !p.expectEnd() {
		return nil
	}
	return pred
}
