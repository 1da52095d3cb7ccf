package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/closurecheck/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			line, col := l.line, l.column
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: line, Column: col}
		} else {
			tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
		}
	case '-':
		if l.peekChar() == '>' {
			line, col := l.line, l.column
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: line, Column: col}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '<':
		if l.peekChar() == ':' {
			line, col := l.line, l.column
			l.readChar()
			tok = token.Token{Type: token.SUBTYPE, Lexeme: "<:", Literal: "<:", Line: line, Column: col}
		} else {
			tok = newToken(token.LT, l.ch, l.line, l.column)
		}
	case ':':
		if l.peekChar() == ':' {
			line, col := l.line, l.column
			l.readChar()
			tok = token.Token{Type: token.COLON2, Lexeme: "::", Literal: "::", Line: line, Column: col}
		} else {
			tok = newToken(token.COLON, l.ch, l.line, l.column)
		}
	case '.':
		if l.peekChar() == '.' && l.peekChar2() == '.' {
			line, col := l.line, l.column
			l.readChar()
			l.readChar()
			tok = token.Token{Type: token.ELLIPSIS, Lexeme: "...", Literal: "...", Line: line, Column: col}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '>':
		tok = newToken(token.GT, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case '&':
		tok = newToken(token.AMPERSAND, l.ch, l.line, l.column)
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '?':
		// ?v, ?t3
		startLine, startCol := l.line, l.column
		if !isLetter(l.peekChar()) && !isDigit(l.peekChar()) {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
			break
		}
		l.readChar()
		name := l.readIdentifier()
		return token.Token{Type: token.INFER_VAR, Lexeme: "?" + name, Literal: name, Line: startLine, Column: startCol}
	case '\'':
		// 'a, 'static, '_
		startLine, startCol := l.line, l.column
		if !isLetter(l.peekChar()) {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
			break
		}
		l.readChar()
		name := l.readIdentifier()
		return token.Token{Type: token.LIFETIME, Lexeme: "'" + name, Literal: name, Line: startLine, Column: startCol}
	case '#':
		// #3
		startLine, startCol := l.line, l.column
		if !isDigit(l.peekChar()) {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
			break
		}
		l.readChar()
		num := l.readNumber()
		num.Type = token.DEF_ID
		num.Lexeme = "#" + num.Lexeme
		num.Line, num.Column = startLine, startCol
		return num
	case '"':
		startLine, startCol := l.line, l.column
		content := l.readString()
		if l.ch != '"' {
			tok = token.Token{Type: token.ILLEGAL, Lexeme: "\"" + content, Literal: "unterminated string", Line: startLine, Column: startCol}
			return tok
		}
		tok = token.Token{Type: token.STRING, Lexeme: fmt.Sprintf("%q", content), Literal: content, Line: startLine, Column: startCol}
	case 0:
		tok.Lexeme = ""
		tok.Type = token.EOF
		tok.Line = l.line
		tok.Column = l.column
		return tok
	default:
		if isLetter(l.ch) {
			startLine, startCol := l.line, l.column
			lexeme := l.readIdentifier()
			tok.Lexeme = lexeme
			tok.Literal = lexeme
			tok.Type = token.LookupIdent(lexeme)
			if lexeme == "_" {
				tok.Type = token.UNDERSCORE
			}
			tok.Line = startLine
			tok.Column = startCol
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// Tokens lexes the whole input, EOF included.
func (l *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func (l *Lexer) readString() string {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
	}
	return l.input[position:l.position]
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[position:l.position]
	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	pos2 := l.readPosition + w
	if pos2 >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos2:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar() // consume first /
				l.readChar() // consume second /
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.readChar() // consume /
				l.readChar() // consume *
				for l.ch != 0 {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						break
					}
					l.readChar()
				}
				continue
			}
		}
		break
	}
}
