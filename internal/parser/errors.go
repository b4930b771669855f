package parser

import (
	"fmt"

	"github.com/lhaig/simplec/internal/checker"
	"github.com/lhaig/simplec/internal/lexer"
)

// SyntaxError is returned by Parse when the input does not match the
// grammar. Parsing stops at the first syntax error.
type SyntaxError struct {
	Line   int
	Column int
	Lexeme string
	AtEOF  bool
}

func newSyntaxError(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Line:   tok.Line,
		Column: tok.Column,
		Lexeme: tok.Literal,
		AtEOF:  tok.Type == lexer.EOF,
	}
}

// Error returns the diagnostic message without position
func (e *SyntaxError) Error() string {
	if e.AtEOF {
		return "syntax error at end of file"
	}
	return fmt.Sprintf("syntax error at '%s'", e.Lexeme)
}

// Parser holds the parser state
type Parser struct {
	lex      *lexer.Lexer
	tok      lexer.Token
	checker  *checker.Checker
	loops    int             // nesting depth of while and for bodies
	function *checker.Symbol // function whose body is being parsed
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	return p.tok
}

// peek returns the next token without consuming
func (p *Parser) peek() lexer.Token {
	return p.lex.Peek()
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.tok
	if tok.Type != lexer.EOF {
		p.tok = p.lex.NextToken()
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise stops with a syntax error
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.tok.Type != tt {
		p.fail()
	}
	return p.advance()
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.tok.Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// fail unwinds to Parse with a syntax error at the current token
func (p *Parser) fail() {
	panic(newSyntaxError(p.tok))
}
