package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	IDENT     = "IDENT"     // i32, Fn, Vec
	INFER_VAR = "INFER_VAR" // ?v, ?t3
	LIFETIME  = "LIFETIME"  // 'a, 'static
	INT       = "INT"       // 0, 12
	STRING    = "STRING"    // "C"
	DEF_ID    = "DEF_ID"    // #3

	UNDERSCORE = "_"
	LPAREN     = "("
	RPAREN     = ")"
	LT         = "<"
	GT         = ">"
	COMMA      = ","
	COLON      = ":"
	COLON2     = "::"
	ARROW      = "->"
	EQ         = "=="
	ASSIGN     = "="
	SUBTYPE    = "<:"
	AMPERSAND  = "&"
	PLUS       = "+"
	ELLIPSIS   = "..."

	// Keywords
	FN     = "FN"
	DYN    = "DYN"
	MUT    = "MUT"
	UNSAFE = "UNSAFE"
	EXTERN = "EXTERN"
	FOR    = "FOR"
)

var keywords = map[string]TokenType{
	"fn":     FN,
	"dyn":    DYN,
	"mut":    MUT,
	"unsafe": UNSAFE,
	"extern": EXTERN,
	"for":    FOR,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
