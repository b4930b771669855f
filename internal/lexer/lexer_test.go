package lexer

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestNextToken_Operators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "arithmetic operators",
			input:    "+ - * / %",
			expected: []TokenType{PLUS, MINUS, STAR, SLASH, PERCENT, EOF},
		},
		{
			name:     "comparison operators",
			input:    "== != < > <= >=",
			expected: []TokenType{EQ, NEQ, LT, GT, LEQ, GEQ, EOF},
		},
		{
			name:     "logical operators",
			input:    "&& || !",
			expected: []TokenType{AND, OR, BANG, EOF},
		},
		{
			name:     "increment and address",
			input:    "++ -- & =",
			expected: []TokenType{INC, DEC, AMP, ASSIGN, EOF},
		},
		{
			name:     "no space between operators",
			input:    "a+++b",
			expected: []TokenType{IDENT, INC, PLUS, IDENT, EOF},
		},
		{
			name:     "ellipsis",
			input:    "int, ...)",
			expected: []TokenType{INT, COMMA, ELLIPSIS, RPAREN, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, expectedType := range tt.expected {
				tok := l.NextToken()
				if tok.Type != expectedType {
					t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
						i, expectedType, tok.Type)
				}
			}
		})
	}
}

func TestNextToken_Delimiters(t *testing.T) {
	input := "( ) { } [ ] , ;"
	expected := []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		COMMA, SEMICOLON, EOF,
	}

	l := New(input)
	for i, expectedType := range expected {
		tok := l.NextToken()
		if tok.Type != expectedType {
			t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
				i, expectedType, tok.Type)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected TokenType
	}{
		{"char", CHAR},
		{"int", INT},
		{"double", DOUBLE},
		{"void", VOID},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"for", FOR},
		{"break", BREAK},
		{"return", RETURN},
		{"sizeof", SIZEOF},
		{"integer", IDENT},
		{"_tmp1", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			tok := New(tt.keyword).NextToken()
			be.Equal(t, tok.Type, tt.expected)
			be.Equal(t, tok.Literal, tt.keyword)
		})
	}
}

func TestNextToken_Literals(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
		literal  string
	}{
		{"42", INTEGER, "42"},
		{"0x1F", INTEGER, "0x1F"},
		{"017", INTEGER, "017"},
		{"3.14", REAL, "3.14"},
		{"1e10", REAL, "1e10"},
		{"2.5E-3", REAL, "2.5E-3"},
		{".5", REAL, ".5"},
		{"'a'", CHARACTER, "'a'"},
		{`'\n'`, CHARACTER, `'\n'`},
		{`"hello"`, STRING, `"hello"`},
		{`"say \"hi\""`, STRING, `"say \"hi\""`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			be.Equal(t, tok.Type, tt.expected)
			be.Equal(t, tok.Literal, tt.literal)
		})
	}
}

func TestNextToken_Illegal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single pipe", "|"},
		{"at sign", "@"},
		{"lone dot", "."},
		{"unterminated string", `"abc`},
		{"unterminated char", "'a"},
		{"empty char", "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			be.Equal(t, tok.Type, ILLEGAL)
		})
	}
}

func TestNextToken_Comments(t *testing.T) {
	input := `int /* block
comment */ x; // trailing
y`
	l := New(input)

	tok := l.NextToken()
	be.Equal(t, tok.Type, INT)

	tok = l.NextToken()
	be.Equal(t, tok.Type, IDENT)
	be.Equal(t, tok.Literal, "x")
	be.Equal(t, tok.Line, 2)

	be.Equal(t, l.NextToken().Type, SEMICOLON)

	tok = l.NextToken()
	be.Equal(t, tok.Literal, "y")
	be.Equal(t, tok.Line, 3)
	be.Equal(t, tok.Column, 1)

	be.Equal(t, l.NextToken().Type, EOF)
}

func TestNextToken_LineAndColumn(t *testing.T) {
	input := "int main(void)\n{\n    return 0;\n}"
	l := New(input)
	tokens := l.Tokenize()

	// return
	ret := tokens[6]
	be.Equal(t, ret.Type, RETURN)
	be.Equal(t, ret.Line, 3)
	be.Equal(t, ret.Column, 5)

	last := tokens[len(tokens)-1]
	be.Equal(t, last.Type, EOF)
}

func TestPeek(t *testing.T) {
	l := New("( int )")

	be.Equal(t, l.NextToken().Type, LPAREN)
	be.Equal(t, l.Peek().Type, INT)
	be.Equal(t, l.Peek().Type, INT)
	be.Equal(t, l.NextToken().Type, INT)
	be.Equal(t, l.NextToken().Type, RPAREN)
	be.Equal(t, l.Peek().Type, EOF)
	be.Equal(t, l.NextToken().Type, EOF)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		lit      string
		expected string
	}{
		{`"abc"`, "abc"},
		{`""`, ""},
		{`"a\nb"`, "a\nb"},
		{`'\0'`, "\x00"},
		{`'\''`, "'"},
		{`"tab\there"`, "tab\there"},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			be.Equal(t, Unquote(tt.lit), tt.expected)
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	be.Equal(t, INTEGER.String(), "INTEGER")
	be.Equal(t, ELLIPSIS.String(), "ELLIPSIS")
	be.Equal(t, TokenType(999).String(), "TokenType(999)")
}
