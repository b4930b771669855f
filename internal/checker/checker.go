package checker

import (
	"github.com/lhaig/simplec/internal/diagnostic"
	"github.com/lhaig/simplec/internal/lexer"
)

// Diagnostic messages reported by the checking rules
const (
	msgBreak      = "break statement not within loop"
	msgReturn     = "invalid return type"
	msgTest       = "invalid type for test expression"
	msgLvalue     = "lvalue required in expression"
	msgBinary     = "invalid operands to binary %s"
	msgUnary      = "invalid operand to unary %s"
	msgSizeof     = "invalid operand in sizeof expression"
	msgCast       = "invalid operand in cast expression"
	msgNotFunc    = "called object is not a function"
	msgArguments  = "invalid arguments to called function"
	msgRedefined  = "redefinition of '%s'"
	msgRedeclared = "redeclaration of '%s'"
	msgConflict   = "conflicting types for '%s'"
	msgUndeclared = "'%s' undeclared"
)

// Operand is the result of checking an expression: its type and whether it
// designates an assignable storage location.
type Operand struct {
	Type   Type
	Lvalue bool
}

// RValue wraps a type as a non-assignable operand
func RValue(t Type) Operand {
	return Operand{Type: t}
}

// Declaration records one declare or define request, in source order
type Declaration struct {
	Name   string
	Type   Type
	Line   int
	Column int
	Depth  int // 0 for the outermost scope
}

type position struct {
	line, column int
}

// Checker is the checking context for one translation unit. It owns the
// scope stack, the set of defined functions and the diagnostics sink.
type Checker struct {
	diag         *diagnostic.Diagnostics
	outermost    *Scope
	toplevel     *Scope
	scopes       []*Scope // every scope opened, in order
	defined      map[string]position
	declarations []Declaration
}

// New creates a checker that reports into diag
func New(diag *diagnostic.Diagnostics) *Checker {
	if diag == nil {
		diag = diagnostic.New()
	}
	return &Checker{
		diag:    diag,
		defined: make(map[string]position),
	}
}

// Diagnostics returns the checker's diagnostics
func (c *Checker) Diagnostics() *diagnostic.Diagnostics {
	return c.diag
}

// Declarations returns every declaration seen so far, in order
func (c *Checker) Declarations() []Declaration {
	return c.declarations
}

// Outermost returns the global scope, or nil before the first OpenScope
func (c *Checker) Outermost() *Scope {
	return c.outermost
}

// TopLevel returns the innermost open scope
func (c *Checker) TopLevel() *Scope {
	return c.toplevel
}

// Scope table

// OpenScope creates a scope and makes it the new top-level scope. The first
// scope ever opened becomes the outermost scope.
func (c *Checker) OpenScope() *Scope {
	c.toplevel = NewScope(c.toplevel)
	c.scopes = append(c.scopes, c.toplevel)
	if c.outermost == nil {
		c.outermost = c.toplevel
	}
	return c.toplevel
}

// CloseScope removes the top-level scope and returns it. Its enclosing
// scope becomes the new top-level scope.
func (c *Checker) CloseScope() *Scope {
	old := c.toplevel
	if old != nil {
		c.toplevel = old.enclosing
	}
	return old
}

// Scopes returns every scope opened so far, outermost first
func (c *Checker) Scopes() []*Scope {
	return c.scopes
}

// IsDefined reports whether a function with the given name has a body
func (c *Checker) IsDefined(name string) bool {
	_, ok := c.defined[name]
	return ok
}

// Lookup finds the nearest visible symbol with the given name
func (c *Checker) Lookup(name string) *Symbol {
	if c.toplevel == nil {
		return nil
	}
	return c.toplevel.Lookup(name)
}

func (c *Checker) depth() int {
	depth := -1
	for s := c.toplevel; s != nil; s = s.enclosing {
		depth++
	}
	return depth
}

func (c *Checker) record(name lexer.Token, t Type, depth int) {
	c.declarations = append(c.declarations, Declaration{
		Name:   name.Literal,
		Type:   t,
		Line:   name.Line,
		Column: name.Column,
		Depth:  depth,
	})
}

func (c *Checker) previous(sym *Symbol, what string) {
	c.diag.Notef(sym.Line, sym.Column, "previous %s of '%s' was here", what, sym.Name)
}

func newSymbol(name lexer.Token, t Type) *Symbol {
	return &Symbol{Name: name.Literal, Type: t, Line: name.Line, Column: name.Column}
}

// DefineFunction defines a function with the given name and type. A
// function can be defined only once per translation unit.
func (c *Checker) DefineFunction(name lexer.Token, t Type) *Symbol {
	if prev, ok := c.defined[name.Literal]; ok {
		c.diag.Errorf(name.Line, name.Column, msgRedefined, name.Literal)
		c.diag.Notef(prev.line, prev.column, "previous definition of '%s' was here", name.Literal)
		return c.outermost.Find(name.Literal)
	}

	c.defined[name.Literal] = position{name.Line, name.Column}
	return c.DeclareFunction(name, t)
}

// DeclareFunction declares a function in the outermost scope regardless of
// the current nesting. A repeated declaration keeps the first type.
func (c *Checker) DeclareFunction(name lexer.Token, t Type) *Symbol {
	c.record(name, t, 0)

	sym := c.outermost.Find(name.Literal)
	if sym == nil {
		sym = newSymbol(name, t)
		c.outermost.Insert(sym)
	} else if !t.Equal(sym.Type) {
		c.diag.Errorf(name.Line, name.Column, msgConflict, name.Literal)
		c.previous(sym, "declaration")
	}

	return sym
}

// DeclareVariable declares a variable in the top-level scope. A repeated
// declaration is discarded; at global scope it is only an error when the
// types differ.
func (c *Checker) DeclareVariable(name lexer.Token, t Type) *Symbol {
	c.record(name, t, c.depth())

	sym := c.toplevel.Find(name.Literal)
	if sym == nil {
		sym = newSymbol(name, t)
		c.toplevel.Insert(sym)
	} else if c.toplevel != c.outermost {
		c.diag.Errorf(name.Line, name.Column, msgRedeclared, name.Literal)
		c.previous(sym, "declaration")
	} else if !t.Equal(sym.Type) {
		c.diag.Errorf(name.Line, name.Column, msgConflict, name.Literal)
		c.previous(sym, "declaration")
	}

	return sym
}

// CheckIdentifier resolves a use of name. An undeclared name is reported
// once and then declared with the error type in the top-level scope.
func (c *Checker) CheckIdentifier(name lexer.Token) *Symbol {
	sym := c.Lookup(name.Literal)
	if sym == nil {
		c.diag.Errorf(name.Line, name.Column, msgUndeclared, name.Literal)
		sym = newSymbol(name, ErrorType())
		c.toplevel.Insert(sym)
		return sym
	}
	sym.Uses++
	return sym
}

// Expressions

func anyError(types ...Type) bool {
	for _, t := range types {
		if t.IsError() {
			return true
		}
	}
	return false
}

// wider returns double if either operand is double and int otherwise
func wider(left, right Type) Type {
	if left.IsDouble() || right.IsDouble() {
		return TypeDouble
	}
	return TypeInt
}

// CheckIdentifierRef returns the operand for a reference to sym. Only
// scalars are assignable; arrays and functions are not.
func (c *Checker) CheckIdentifierRef(sym *Symbol) Operand {
	return Operand{Type: sym.Type, Lvalue: sym.Type.IsScalar()}
}

// CheckCall checks a call of a value of type callee with the given
// argument types.
func (c *Checker) CheckCall(tok lexer.Token, callee Type, args []Type) Operand {
	if anyError(callee) || anyError(args...) {
		return RValue(ErrorType())
	}

	if !callee.IsFunction() {
		c.diag.Errorf(tok.Line, tok.Column, msgNotFunc)
		return RValue(ErrorType())
	}

	if params := callee.Parameters(); params != nil {
		if len(args) < len(params.Types) || (len(args) > len(params.Types) && !params.Variadic) {
			c.diag.Errorf(tok.Line, tok.Column, msgArguments)
			return RValue(ErrorType())
		}
		for i, param := range params.Types {
			if !args[i].Promote().IsCompatibleWith(param.Promote()) {
				c.diag.Errorf(tok.Line, tok.Column, msgArguments)
				return RValue(ErrorType())
			}
		}
	}

	return RValue(Scalar(callee.Specifier(), callee.Indirection()))
}

// CheckAddress checks &x
func (c *Checker) CheckAddress(tok lexer.Token, x Operand) Operand {
	if x.Type.IsError() {
		return RValue(ErrorType())
	}
	if !x.Lvalue {
		c.diag.Errorf(tok.Line, tok.Column, msgLvalue)
		return RValue(ErrorType())
	}
	return RValue(Scalar(x.Type.Specifier(), x.Type.Indirection()+1))
}

// CheckDereference checks *p
func (c *Checker) CheckDereference(tok lexer.Token, p Type) Operand {
	if p.IsError() {
		return Operand{Type: ErrorType(), Lvalue: true}
	}
	if !p.IsPointer() {
		c.diag.Errorf(tok.Line, tok.Column, msgUnary, "*")
		return Operand{Type: ErrorType(), Lvalue: true}
	}
	pp := p.Promote()
	return Operand{Type: Scalar(pp.Specifier(), pp.Indirection()-1), Lvalue: true}
}

// CheckIndex checks a[i]
func (c *Checker) CheckIndex(tok lexer.Token, a, i Type) Operand {
	if anyError(a, i) {
		return Operand{Type: ErrorType(), Lvalue: true}
	}
	ap := a.Promote()
	if !ap.IsPointer() || !i.IsInteger() {
		c.diag.Errorf(tok.Line, tok.Column, msgBinary, "[]")
		return Operand{Type: ErrorType(), Lvalue: true}
	}
	return Operand{Type: Scalar(ap.Specifier(), ap.Indirection()-1), Lvalue: true}
}

// CheckIncDec checks ++ and --, in prefix or postfix position
func (c *Checker) CheckIncDec(tok lexer.Token, x Operand) Operand {
	if x.Type.IsError() {
		return RValue(ErrorType())
	}
	if !x.Lvalue {
		c.diag.Errorf(tok.Line, tok.Column, msgLvalue)
		return RValue(ErrorType())
	}
	return RValue(x.Type)
}

// CheckNegate checks unary minus
func (c *Checker) CheckNegate(tok lexer.Token, t Type) Type {
	if t.IsError() {
		return t
	}
	if !t.IsNumeric() {
		c.diag.Errorf(tok.Line, tok.Column, msgUnary, "-")
		return ErrorType()
	}
	return t
}

// CheckNot checks logical negation
func (c *Checker) CheckNot(tok lexer.Token, t Type) Type {
	if t.IsError() {
		return t
	}
	if !t.IsPredicate() {
		c.diag.Errorf(tok.Line, tok.Column, msgUnary, "!")
		return ErrorType()
	}
	return TypeInt
}

// CheckSizeof checks sizeof applied to an expression. The result is int
// for every operand except a function.
func (c *Checker) CheckSizeof(tok lexer.Token, t Type) Type {
	if t.IsError() {
		return t
	}
	if t.IsFunction() {
		c.diag.Errorf(tok.Line, tok.Column, msgSizeof)
		return ErrorType()
	}
	return TypeInt
}

// SizeofType is the type of sizeof applied to a type name
func (c *Checker) SizeofType() Type {
	return TypeInt
}

// CheckCast checks (specifier *...) t
func (c *Checker) CheckCast(tok lexer.Token, t Type, spec Specifier, indirection int) Type {
	if t.IsError() {
		return t
	}

	result := Scalar(spec, indirection)
	switch {
	case result.IsNumeric() && t.IsNumeric():
		return result
	case result.IsPointer() && t.IsPointer():
		return result
	case result.IsPointer() && t.Equal(TypeInt):
		return result
	case result.Equal(TypeInt) && t.IsPointer():
		return result
	}

	c.diag.Errorf(tok.Line, tok.Column, msgCast)
	return ErrorType()
}

// CheckMultiplicative checks * and /
func (c *Checker) CheckMultiplicative(tok lexer.Token, left, right Type) Type {
	if anyError(left, right) {
		return ErrorType()
	}
	if left.IsNumeric() && right.IsNumeric() {
		return wider(left, right)
	}
	c.diag.Errorf(tok.Line, tok.Column, msgBinary, tok.Literal)
	return ErrorType()
}

// CheckRemainder checks %
func (c *Checker) CheckRemainder(tok lexer.Token, left, right Type) Type {
	if anyError(left, right) {
		return ErrorType()
	}
	if left.IsInteger() && right.IsInteger() {
		return TypeInt
	}
	c.diag.Errorf(tok.Line, tok.Column, msgBinary, tok.Literal)
	return ErrorType()
}

// CheckAdd checks binary +
func (c *Checker) CheckAdd(tok lexer.Token, left, right Type) Type {
	if anyError(left, right) {
		return ErrorType()
	}

	switch {
	case left.IsNumeric() && right.IsNumeric():
		return wider(left, right)
	case left.IsPointer() && right.IsInteger():
		return left.Promote()
	case left.IsInteger() && right.IsPointer():
		return right.Promote()
	}

	c.diag.Errorf(tok.Line, tok.Column, msgBinary, tok.Literal)
	return ErrorType()
}

// CheckSubtract checks binary -. The difference of two pointers with the
// same specifier is an int element count.
func (c *Checker) CheckSubtract(tok lexer.Token, left, right Type) Type {
	if anyError(left, right) {
		return ErrorType()
	}

	switch {
	case left.IsNumeric() && right.IsNumeric():
		return wider(left, right)
	case left.IsPointer() && right.IsInteger():
		return left.Promote()
	case left.IsPointer() && right.IsPointer() && left.Specifier() == right.Specifier():
		return TypeInt
	}

	c.diag.Errorf(tok.Line, tok.Column, msgBinary, tok.Literal)
	return ErrorType()
}

// CheckComparison checks the relational and equality operators
func (c *Checker) CheckComparison(tok lexer.Token, left, right Type) Type {
	if anyError(left, right) {
		return ErrorType()
	}
	if left.Promote().IsCompatibleWith(right.Promote()) {
		return TypeInt
	}
	c.diag.Errorf(tok.Line, tok.Column, msgBinary, tok.Literal)
	return ErrorType()
}

// CheckLogical checks && and ||
func (c *Checker) CheckLogical(tok lexer.Token, left, right Type) Type {
	if anyError(left, right) {
		return ErrorType()
	}
	if left.IsPredicate() && right.IsPredicate() {
		return TypeInt
	}
	c.diag.Errorf(tok.Line, tok.Column, msgBinary, tok.Literal)
	return ErrorType()
}

// CheckAssignment checks left = right
func (c *Checker) CheckAssignment(tok lexer.Token, left Operand, right Type) Type {
	if anyError(left.Type, right) {
		return ErrorType()
	}
	if !left.Lvalue {
		c.diag.Errorf(tok.Line, tok.Column, msgLvalue)
		return ErrorType()
	}
	if !left.Type.Promote().IsCompatibleWith(right.Promote()) {
		c.diag.Errorf(tok.Line, tok.Column, msgBinary, "=")
		return ErrorType()
	}
	return left.Type
}

// Statements

// CheckBreak checks a break statement at the given loop nesting depth
func (c *Checker) CheckBreak(tok lexer.Token, depth int) Type {
	if depth <= 0 {
		c.diag.Errorf(tok.Line, tok.Column, msgBreak)
		return ErrorType()
	}
	return TypeInt
}

// CheckReturn checks that t can be returned from function fn
func (c *Checker) CheckReturn(tok lexer.Token, t Type, fn *Symbol) Type {
	if t.IsError() || fn == nil || fn.Type.IsError() {
		return t
	}

	want := Scalar(fn.Type.Specifier(), fn.Type.Indirection())
	if t.Promote().IsCompatibleWith(want.Promote()) {
		return t
	}
	c.diag.Errorf(tok.Line, tok.Column, msgReturn)
	return ErrorType()
}

// CheckTest checks the test expression of if, while and for
func (c *Checker) CheckTest(tok lexer.Token, t Type) Type {
	if t.IsError() {
		return t
	}
	if !t.IsPredicate() {
		c.diag.Errorf(tok.Line, tok.Column, msgTest)
		return ErrorType()
	}
	return t
}
