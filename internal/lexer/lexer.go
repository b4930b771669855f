package lexer

import "strings"

// Lexer scans Simple C source code and produces tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number

	peeked *Token // one token of lookahead, filled by Peek
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) peekCharAt(offset int) byte {
	if l.position+offset >= len(l.input) {
		return 0
	}
	return l.input[l.position+offset]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

// skipSingleLineComment skips a single-line comment (//)
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && !l.atEnd() {
		l.readChar()
	}
}

// skipMultiLineComment skips a multi-line comment (/* */)
func (l *Lexer) skipMultiLineComment() {
	// Already read '/*', now skip until '*/'
	for {
		if l.atEnd() {
			break
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume '*'
			l.readChar() // consume '/'
			break
		}
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a numeric literal (integer or real)
func (l *Lexer) readNumber() (string, TokenType) {
	position := l.position
	tokenType := INTEGER

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // consume '0'
		l.readChar() // consume 'x'
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return l.input[position:l.position], INTEGER
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && l.peekChar() != '.' {
		tokenType = REAL
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		sign := next == '+' || next == '-'
		if isDigit(next) || (sign && isDigit(l.peekCharAt(2))) {
			tokenType = REAL
			l.readChar() // consume 'e'
			if sign {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[position:l.position], tokenType
}

// readQuoted reads a character or string literal delimited by quote.
// The returned literal includes both quotes.
func (l *Lexer) readQuoted(quote byte) (string, bool) {
	// Already positioned on opening quote
	position := l.position

	for {
		l.readChar()
		if l.atEnd() || l.ch == '\n' {
			return "", false
		}
		if l.ch == quote {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEnd() || l.ch == '\n' {
				return "", false
			}
		}
	}

	return l.input[position : l.position+1], true
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok
	}
	return l.scan()
}

// Peek returns the next token without consuming it
func (l *Lexer) Peek() Token {
	if l.peeked == nil {
		tok := l.scan()
		l.peeked = &tok
	}
	return *l.peeked
}

func (l *Lexer) scan() Token {
	var tok Token

	l.skipWhitespace()

	// Save position before processing token
	tok.Line = l.line
	tok.Column = l.column

	single := func(tt TokenType) Token {
		return Token{Type: tt, Literal: string(l.ch), Line: tok.Line, Column: tok.Column}
	}
	double := func(tt TokenType) Token {
		ch := l.ch
		l.readChar()
		return Token{Type: tt, Literal: string(ch) + string(l.ch), Line: tok.Line, Column: tok.Column}
	}

	if l.atEnd() {
		return Token{Type: EOF, Literal: "", Line: tok.Line, Column: tok.Column}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = double(EQ)
		} else {
			tok = single(ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = double(NEQ)
		} else {
			tok = single(BANG)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = double(LEQ)
		} else {
			tok = single(LT)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = double(GEQ)
		} else {
			tok = single(GT)
		}
	case '&':
		if l.peekChar() == '&' {
			tok = double(AND)
		} else {
			tok = single(AMP)
		}
	case '|':
		if l.peekChar() == '|' {
			tok = double(OR)
		} else {
			tok = single(ILLEGAL)
		}
	case '+':
		if l.peekChar() == '+' {
			tok = double(INC)
		} else {
			tok = single(PLUS)
		}
	case '-':
		if l.peekChar() == '-' {
			tok = double(DEC)
		} else {
			tok = single(MINUS)
		}
	case '*':
		tok = single(STAR)
	case '/':
		if l.peekChar() == '/' {
			l.skipSingleLineComment()
			return l.scan()
		} else if l.peekChar() == '*' {
			l.readChar() // consume '/'
			l.readChar() // consume '*'
			l.skipMultiLineComment()
			return l.scan()
		} else {
			tok = single(SLASH)
		}
	case '%':
		tok = single(PERCENT)
	case '(':
		tok = single(LPAREN)
	case ')':
		tok = single(RPAREN)
	case '{':
		tok = single(LBRACE)
	case '}':
		tok = single(RBRACE)
	case '[':
		tok = single(LBRACKET)
	case ']':
		tok = single(RBRACKET)
	case ',':
		tok = single(COMMA)
	case ';':
		tok = single(SEMICOLON)
	case '.':
		if l.peekChar() == '.' && l.peekCharAt(2) == '.' {
			l.readChar()
			l.readChar()
			tok = Token{Type: ELLIPSIS, Literal: "...", Line: tok.Line, Column: tok.Column}
		} else if isDigit(l.peekChar()) {
			position := l.position
			l.readChar() // consume '.'
			for isDigit(l.ch) {
				l.readChar()
			}
			return Token{Type: REAL, Literal: l.input[position:l.position], Line: tok.Line, Column: tok.Column}
		} else {
			tok = single(ILLEGAL)
		}
	case '\'':
		lit, ok := l.readQuoted('\'')
		if !ok {
			// the newline (if any) is left for skipWhitespace to count
			return Token{Type: ILLEGAL, Literal: "unterminated character constant", Line: tok.Line, Column: tok.Column}
		}
		if len(Unquote(lit)) != 1 {
			tok = Token{Type: ILLEGAL, Literal: lit, Line: tok.Line, Column: tok.Column}
		} else {
			tok = Token{Type: CHARACTER, Literal: lit, Line: tok.Line, Column: tok.Column}
		}
	case '"':
		lit, ok := l.readQuoted('"')
		if !ok {
			return Token{Type: ILLEGAL, Literal: "unterminated string", Line: tok.Line, Column: tok.Column}
		}
		tok = Token{Type: STRING, Literal: lit, Line: tok.Line, Column: tok.Column}
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			tokenType := LookupIdent(ident)
			return Token{Type: tokenType, Literal: ident, Line: tok.Line, Column: tok.Column}
		} else if isDigit(l.ch) {
			literal, tokenType := l.readNumber()
			return Token{Type: tokenType, Literal: literal, Line: tok.Line, Column: tok.Column}
		}
		tok = single(ILLEGAL)
	}

	l.readChar()
	return tok
}

// Tokenize returns all tokens from the input
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Unquote decodes the contents of a character or string literal, including
// its surrounding quotes. Unknown escapes keep the escaped character.
func Unquote(lit string) string {
	if len(lit) >= 2 {
		lit = lit[1 : len(lit)-1]
	}

	var b strings.Builder
	for i := 0; i < len(lit); i++ {
		ch := lit[i]
		if ch != '\\' || i+1 >= len(lit) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch lit[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(lit[i])
		}
	}
	return b.String()
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
