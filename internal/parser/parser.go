package parser

import (
	"strconv"

	"github.com/lhaig/simplec/internal/checker"
	"github.com/lhaig/simplec/internal/lexer"
)

// New creates a parser that reports declarations and semantic errors to c
func New(source string, c *checker.Checker) *Parser {
	l := lexer.New(source)
	return &Parser{
		lex:     l,
		tok:     l.NextToken(),
		checker: c,
	}
}

// Checker returns the checker the parser drives
func (p *Parser) Checker() *checker.Checker {
	return p.checker
}

// Parse parses and checks a translation unit. Semantic errors are left in
// the checker's diagnostics; a syntax error stops parsing and is returned.
func (p *Parser) Parse() (err error) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()

	p.checker.OpenScope()
	for !p.check(lexer.EOF) {
		p.parseTopLevel()
	}
	p.checker.CloseScope()
	return nil
}

// Declarations

// parseSpecifier parses: char | int | double
func (p *Parser) parseSpecifier() checker.Specifier {
	switch p.advanceSpecifier() {
	case lexer.CHAR:
		return checker.Char
	case lexer.INT:
		return checker.Int
	default:
		return checker.Double
	}
}

func (p *Parser) advanceSpecifier() lexer.TokenType {
	if !p.current().Type.IsSpecifier() {
		p.fail()
	}
	return p.advance().Type
}

// parsePointers parses a run of '*' and returns its length
func (p *Parser) parsePointers() int {
	n := 0
	for p.match(lexer.STAR) {
		n++
	}
	return n
}

// parseArraySize parses: '[' INTEGER ']'. A zero or unrepresentable
// length is reported and yields ok == false.
func (p *Parser) parseArraySize(name lexer.Token) (length int, ok bool) {
	p.expect(lexer.LBRACKET)
	size := p.expect(lexer.INTEGER)
	p.expect(lexer.RBRACKET)

	n, err := strconv.ParseInt(size.Literal, 0, 32)
	if err != nil || n <= 0 {
		p.checker.Diagnostics().Errorf(size.Line, size.Column, "invalid array size for '%s'", name.Literal)
		return 0, false
	}
	return int(n), true
}

// declareArray declares name as an array of (spec, indirection)
func (p *Parser) declareArray(name lexer.Token, spec checker.Specifier, indirection int) {
	length, ok := p.parseArraySize(name)
	if !ok {
		p.checker.DeclareVariable(name, checker.ErrorType())
		return
	}
	p.checker.DeclareVariable(name, checker.Array(spec, indirection, length))
}

// parseTopLevel parses a function definition or a global declaration:
// specifier pointers id ( '[' INTEGER ']' rest | '(' parameters ')' ( body | rest ) | rest )
func (p *Parser) parseTopLevel() {
	spec := p.parseSpecifier()
	indirection := p.parsePointers()
	name := p.expect(lexer.IDENT)

	switch p.current().Type {
	case lexer.LBRACKET:
		p.declareArray(name, spec, indirection)
	case lexer.LPAREN:
		p.advance()
		p.checker.OpenScope()
		params := p.parseParameters()
		p.expect(lexer.RPAREN)

		typ := checker.Function(spec, indirection, params)
		if p.check(lexer.LBRACE) {
			p.parseFunctionBody(name, typ)
			return
		}
		p.checker.CloseScope().MarkPrototype()
		p.checker.DeclareFunction(name, typ)
	default:
		p.checker.DeclareVariable(name, checker.Scalar(spec, indirection))
	}

	for p.match(lexer.COMMA) {
		p.parseGlobalDeclarator(spec)
	}
	p.expect(lexer.SEMICOLON)
}

// parseGlobalDeclarator parses: pointers id [ '[' INTEGER ']' | '(' parameters ')' ]
func (p *Parser) parseGlobalDeclarator(spec checker.Specifier) {
	indirection := p.parsePointers()
	name := p.expect(lexer.IDENT)

	switch p.current().Type {
	case lexer.LBRACKET:
		p.declareArray(name, spec, indirection)
	case lexer.LPAREN:
		p.advance()
		p.checker.OpenScope()
		params := p.parseParameters()
		p.expect(lexer.RPAREN)
		p.checker.CloseScope().MarkPrototype()
		p.checker.DeclareFunction(name, checker.Function(spec, indirection, params))
	default:
		p.checker.DeclareVariable(name, checker.Scalar(spec, indirection))
	}
}

// parseParameters parses: 'void' | parameter { ',' parameter } [ ',' '...' ]
// Each parameter is declared in the current (parameter) scope.
func (p *Parser) parseParameters() *checker.Parameters {
	params := &checker.Parameters{Types: []checker.Type{}}
	if p.match(lexer.VOID) {
		return params
	}

	params.Types = append(params.Types, p.parseParameter())
	for p.match(lexer.COMMA) {
		if p.match(lexer.ELLIPSIS) {
			params.Variadic = true
			break
		}
		params.Types = append(params.Types, p.parseParameter())
	}
	return params
}

// parseParameter parses: specifier pointers id
func (p *Parser) parseParameter() checker.Type {
	spec := p.parseSpecifier()
	indirection := p.parsePointers()
	name := p.expect(lexer.IDENT)

	typ := checker.Scalar(spec, indirection)
	p.checker.DeclareVariable(name, typ)
	return typ
}

// parseFunctionBody parses '{' declarations statements '}' of a function
// definition. The function is defined before its body so that it can call
// itself, and the body shares the parameter scope.
func (p *Parser) parseFunctionBody(name lexer.Token, typ checker.Type) {
	p.function = p.checker.DefineFunction(name, typ)
	defer func() { p.function = nil }()

	p.expect(lexer.LBRACE)
	p.parseDeclarations()
	p.parseStatements()
	p.expect(lexer.RBRACE)
	p.checker.CloseScope()
}

// parseDeclarations parses local declarations while a specifier follows
func (p *Parser) parseDeclarations() {
	for p.current().Type.IsSpecifier() {
		p.parseDeclaration()
	}
}

// parseDeclaration parses: specifier declarator { ',' declarator } ';'
func (p *Parser) parseDeclaration() {
	spec := p.parseSpecifier()
	p.parseDeclarator(spec)
	for p.match(lexer.COMMA) {
		p.parseDeclarator(spec)
	}
	p.expect(lexer.SEMICOLON)
}

// parseDeclarator parses: pointers id [ '[' INTEGER ']' ]
func (p *Parser) parseDeclarator(spec checker.Specifier) {
	indirection := p.parsePointers()
	name := p.expect(lexer.IDENT)

	if p.check(lexer.LBRACKET) {
		p.declareArray(name, spec, indirection)
		return
	}
	p.checker.DeclareVariable(name, checker.Scalar(spec, indirection))
}

// Statements

// parseStatements parses statements up to the closing brace
func (p *Parser) parseStatements() {
	for !p.check(lexer.RBRACE) {
		p.parseStatement()
	}
}

func (p *Parser) parseStatement() {
	switch p.current().Type {
	case lexer.LBRACE:
		p.parseBlock()
	case lexer.BREAK:
		tok := p.advance()
		p.expect(lexer.SEMICOLON)
		p.checker.CheckBreak(tok, p.loops)
	case lexer.RETURN:
		tok := p.advance()
		x := p.parseExpression()
		p.expect(lexer.SEMICOLON)
		p.checker.CheckReturn(tok, x.Type, p.function)
	case lexer.WHILE:
		p.parseWhileStmt()
	case lexer.FOR:
		p.parseForStmt()
	case lexer.IF:
		p.parseIfStmt()
	default:
		p.parseAssignment()
		p.expect(lexer.SEMICOLON)
	}
}

// parseBlock parses: '{' declarations statements '}' in a new scope
func (p *Parser) parseBlock() {
	p.expect(lexer.LBRACE)
	p.checker.OpenScope()
	p.parseDeclarations()
	p.parseStatements()
	p.expect(lexer.RBRACE)
	p.checker.CloseScope()
}

// parseTest parses a test expression and checks it
func (p *Parser) parseTest() {
	tok := p.current()
	x := p.parseExpression()
	p.checker.CheckTest(tok, x.Type)
}

// parseLoopBody parses the body of a while or for loop
func (p *Parser) parseLoopBody() {
	p.loops++
	defer func() { p.loops-- }()
	p.parseStatement()
}

// parseWhileStmt parses: while ( expression ) statement
func (p *Parser) parseWhileStmt() {
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	p.parseTest()
	p.expect(lexer.RPAREN)
	p.parseLoopBody()
}

// parseForStmt parses: for ( assignment ; expression ; assignment ) statement
func (p *Parser) parseForStmt() {
	p.expect(lexer.FOR)
	p.expect(lexer.LPAREN)
	p.parseAssignment()
	p.expect(lexer.SEMICOLON)
	p.parseTest()
	p.expect(lexer.SEMICOLON)
	p.parseAssignment()
	p.expect(lexer.RPAREN)
	p.parseLoopBody()
}

// parseIfStmt parses: if ( expression ) statement [ else statement ]
func (p *Parser) parseIfStmt() {
	p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	p.parseTest()
	p.expect(lexer.RPAREN)
	p.parseStatement()
	if p.match(lexer.ELSE) {
		p.parseStatement()
	}
}

// parseAssignment parses: expression [ '=' expression ]
func (p *Parser) parseAssignment() {
	left := p.parseExpression()
	if p.check(lexer.ASSIGN) {
		tok := p.advance()
		right := p.parseExpression()
		p.checker.CheckAssignment(tok, left, right.Type)
	}
}

// Expressions

// tokenPrecedence returns the binding power of a binary operator, or 0
func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.OR:
		return 1
	case lexer.AND:
		return 2
	case lexer.EQ, lexer.NEQ:
		return 3
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return 4
	case lexer.PLUS, lexer.MINUS:
		return 5
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return 6
	default:
		return 0
	}
}

// parseExpression parses an expression using precedence climbing
func (p *Parser) parseExpression() checker.Operand {
	return p.parsePrecedence(1)
}

// parsePrecedence parses binary expressions whose operators bind at least
// as tightly as minPrec. All binary operators are left-associative.
func (p *Parser) parsePrecedence(minPrec int) checker.Operand {
	left := p.parsePrefix()

	for {
		prec := tokenPrecedence(p.current().Type)
		if prec == 0 || prec < minPrec {
			break
		}
		op := p.advance()
		right := p.parsePrecedence(prec + 1)
		left = checker.RValue(p.checkBinary(op, left.Type, right.Type))
	}

	return left
}

func (p *Parser) checkBinary(op lexer.Token, left, right checker.Type) checker.Type {
	c := p.checker
	switch op.Type {
	case lexer.OR, lexer.AND:
		return c.CheckLogical(op, left, right)
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return c.CheckComparison(op, left, right)
	case lexer.PLUS:
		return c.CheckAdd(op, left, right)
	case lexer.MINUS:
		return c.CheckSubtract(op, left, right)
	case lexer.STAR, lexer.SLASH:
		return c.CheckMultiplicative(op, left, right)
	default:
		return c.CheckRemainder(op, left, right)
	}
}

// parsePrefix parses unary operators, sizeof and casts
func (p *Parser) parsePrefix() checker.Operand {
	c := p.checker

	switch p.current().Type {
	case lexer.MINUS:
		op := p.advance()
		return checker.RValue(c.CheckNegate(op, p.parsePrefix().Type))
	case lexer.BANG:
		op := p.advance()
		return checker.RValue(c.CheckNot(op, p.parsePrefix().Type))
	case lexer.AMP:
		op := p.advance()
		return c.CheckAddress(op, p.parsePrefix())
	case lexer.STAR:
		op := p.advance()
		return c.CheckDereference(op, p.parsePrefix().Type)
	case lexer.INC, lexer.DEC:
		op := p.advance()
		return c.CheckIncDec(op, p.parsePrefix())
	case lexer.SIZEOF:
		op := p.advance()
		if p.check(lexer.LPAREN) && p.peek().Type.IsSpecifier() {
			p.advance()
			p.parseSpecifier()
			p.parsePointers()
			p.expect(lexer.RPAREN)
			return checker.RValue(c.SizeofType())
		}
		return checker.RValue(c.CheckSizeof(op, p.parsePrefix().Type))
	case lexer.LPAREN:
		if p.peek().Type.IsSpecifier() {
			op := p.advance()
			spec := p.parseSpecifier()
			indirection := p.parsePointers()
			p.expect(lexer.RPAREN)
			x := p.parsePrefix()
			return checker.RValue(c.CheckCast(op, x.Type, spec, indirection))
		}
	}

	return p.parsePostfix()
}

// parsePostfix parses: primary { '[' expression ']' | '++' | '--' }
func (p *Parser) parsePostfix() checker.Operand {
	x := p.parsePrimary()

	for {
		switch p.current().Type {
		case lexer.LBRACKET:
			op := p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBRACKET)
			x = p.checker.CheckIndex(op, x.Type, index.Type)
		case lexer.INC, lexer.DEC:
			op := p.advance()
			x = p.checker.CheckIncDec(op, x)
		default:
			return x
		}
	}
}

// parsePrimary parses literals, identifiers, calls and parenthesized
// expressions
func (p *Parser) parsePrimary() checker.Operand {
	tok := p.current()

	switch tok.Type {
	case lexer.LPAREN:
		p.advance()
		x := p.parseExpression()
		p.expect(lexer.RPAREN)
		return x
	case lexer.CHARACTER, lexer.INTEGER:
		p.advance()
		return checker.RValue(checker.TypeInt)
	case lexer.REAL:
		p.advance()
		return checker.RValue(checker.TypeDouble)
	case lexer.STRING:
		p.advance()
		length := len(lexer.Unquote(tok.Literal)) + 1
		return checker.RValue(checker.Array(checker.Char, 0, length))
	case lexer.IDENT:
		p.advance()
		sym := p.checker.CheckIdentifier(tok)
		if p.check(lexer.LPAREN) {
			args := p.parseArgList()
			return p.checker.CheckCall(tok, sym.Type, args)
		}
		return p.checker.CheckIdentifierRef(sym)
	}

	p.fail()
	return checker.Operand{}
}

// parseArgList parses: '(' [ expression { ',' expression } ] ')'
func (p *Parser) parseArgList() []checker.Type {
	p.expect(lexer.LPAREN)

	var args []checker.Type
	if !p.check(lexer.RPAREN) {
		args = append(args, p.parseExpression().Type)
		for p.match(lexer.COMMA) {
			args = append(args, p.parseExpression().Type)
		}
	}

	p.expect(lexer.RPAREN)
	return args
}
