package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT     // x, y, myVariable
	CHARACTER // 'a'
	STRING    // "hello"
	INTEGER   // 123, 0x1f, 017
	REAL      // 1.5, 2e10

	// Keywords
	CHAR
	INT
	DOUBLE
	VOID
	IF
	ELSE
	WHILE
	FOR
	BREAK
	RETURN
	SIZEOF

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	AMP      // &
	BANG     // !
	ASSIGN   // =
	EQ       // ==
	NEQ      // !=
	LT       // <
	GT       // >
	LEQ      // <=
	GEQ      // >=
	AND      // &&
	OR       // ||
	INC      // ++
	DEC      // --
	ELLIPSIS // ...

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenNames = map[TokenType]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	CHARACTER: "CHARACTER",
	STRING:    "STRING",
	INTEGER:   "INTEGER",
	REAL:      "REAL",
	CHAR:      "CHAR",
	INT:       "INT",
	DOUBLE:    "DOUBLE",
	VOID:      "VOID",
	IF:        "IF",
	ELSE:      "ELSE",
	WHILE:     "WHILE",
	FOR:       "FOR",
	BREAK:     "BREAK",
	RETURN:    "RETURN",
	SIZEOF:    "SIZEOF",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	PERCENT:   "PERCENT",
	AMP:       "AMP",
	BANG:      "BANG",
	ASSIGN:    "ASSIGN",
	EQ:        "EQ",
	NEQ:       "NEQ",
	LT:        "LT",
	GT:        "GT",
	LEQ:       "LEQ",
	GEQ:       "GEQ",
	AND:       "AND",
	OR:        "OR",
	INC:       "INC",
	DEC:       "DEC",
	ELLIPSIS:  "ELLIPSIS",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// IsSpecifier reports whether the token type starts a type specifier
func (t TokenType) IsSpecifier() bool {
	return t == CHAR || t == INT || t == DOUBLE
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"char":   CHAR,
	"int":    INT,
	"double": DOUBLE,
	"void":   VOID,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"break":  BREAK,
	"return": RETURN,
	"sizeof": SIZEOF,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
