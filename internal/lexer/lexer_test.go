package lexer

import (
	"testing"

	"github.com/funvibe/closurecheck/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `for<'a> unsafe extern "C" fn(&'a mut i32, ...) -> _
?v: FnMut<(), Output = bool> // trailing
Fn<?t3, (A,)>::Output == #12 <: /* block */ + :`

	tests := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.FOR, "for"},
		{token.LT, "<"},
		{token.LIFETIME, "'a"},
		{token.GT, ">"},
		{token.UNSAFE, "unsafe"},
		{token.EXTERN, "extern"},
		{token.STRING, `"C"`},
		{token.FN, "fn"},
		{token.LPAREN, "("},
		{token.AMPERSAND, "&"},
		{token.LIFETIME, "'a"},
		{token.MUT, "mut"},
		{token.IDENT, "i32"},
		{token.COMMA, ","},
		{token.ELLIPSIS, "..."},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.UNDERSCORE, "_"},
		{token.INFER_VAR, "?v"},
		{token.COLON, ":"},
		{token.IDENT, "FnMut"},
		{token.LT, "<"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.COMMA, ","},
		{token.IDENT, "Output"},
		{token.ASSIGN, "="},
		{token.IDENT, "bool"},
		{token.GT, ">"},
		{token.IDENT, "Fn"},
		{token.LT, "<"},
		{token.INFER_VAR, "?t3"},
		{token.COMMA, ","},
		{token.LPAREN, "("},
		{token.IDENT, "A"},
		{token.COMMA, ","},
		{token.RPAREN, ")"},
		{token.GT, ">"},
		{token.COLON2, "::"},
		{token.IDENT, "Output"},
		{token.EQ, "=="},
		{token.DEF_ID, "#12"},
		{token.SUBTYPE, "<:"},
		{token.PLUS, "+"},
		{token.COLON, ":"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - wrong type. expected=%q, got=%q (%q)", i, tt.typ, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.lexeme {
			t.Fatalf("tests[%d] - wrong lexeme. expected=%q, got=%q", i, tt.lexeme, tok.Lexeme)
		}
	}
}

func TestLiterals(t *testing.T) {
	toks := New(`?v 'static #7 "C"`).Tokens()
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(toks))
	}
	if toks[0].Literal != "v" {
		t.Errorf("infer var literal = %v, want v", toks[0].Literal)
	}
	if toks[1].Literal != "static" {
		t.Errorf("lifetime literal = %v, want static", toks[1].Literal)
	}
	if toks[2].Literal != int64(7) {
		t.Errorf("def id literal = %v, want 7", toks[2].Literal)
	}
	if toks[3].Literal != "C" {
		t.Errorf("string literal = %v, want C", toks[3].Literal)
	}
}

func TestPositions(t *testing.T) {
	toks := New("i32\n  -> bool").Tokens()
	want := [][2]int{{1, 1}, {2, 3}, {2, 6}}
	for i, w := range want {
		if toks[i].Line != w[0] || toks[i].Column != w[1] {
			t.Errorf("token %d (%s) at %d:%d, want %d:%d", i, toks[i].Lexeme, toks[i].Line, toks[i].Column, w[0], w[1])
		}
	}
}

func TestIllegal(t *testing.T) {
	tests := []string{"-", "?", "'", "#x", ".", `"open`, "$", "?$t1"}
	for _, input := range tests {
		tok := New(input).NextToken()
		if tok.Type != token.ILLEGAL {
			t.Errorf("%q: expected ILLEGAL, got %s", input, tok.Type)
		}
	}
}
