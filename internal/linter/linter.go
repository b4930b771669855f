package linter

import (
	"github.com/lhaig/simplec/internal/checker"
	"github.com/lhaig/simplec/internal/diagnostic"
)

// Linter performs best-practice checks over the scopes a checker built.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	c    *checker.Checker
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules over a checked translation unit and returns
// the warnings.
func Lint(c *checker.Checker) *diagnostic.Diagnostics {
	l := &Linter{
		c:    c,
		diag: diagnostic.New(),
	}

	for _, scope := range c.Scopes() {
		switch {
		case scope == c.Outermost():
			l.lintGlobals(scope)
		case scope.IsPrototype():
			// prototype parameters are never referenced
		default:
			l.lintLocals(scope)
		}
	}

	return l.diag
}

// lintGlobals checks functions declared at file scope
func (l *Linter) lintGlobals(scope *checker.Scope) {
	for _, sym := range scope.Symbols() {
		if sym.Type.IsFunction() {
			l.checkUnusedPrototype(sym)
		}
	}
}

// lintLocals checks parameters and block-scope variables
func (l *Linter) lintLocals(scope *checker.Scope) {
	for _, sym := range scope.Symbols() {
		if sym.Type.IsError() {
			continue
		}
		l.checkUnused(sym)
		l.checkShadowing(scope, sym)
	}
}

func (l *Linter) checkUnusedPrototype(sym *checker.Symbol) {
	if sym.Uses == 0 && !l.c.IsDefined(sym.Name) {
		l.diag.Warningf(sym.Line, sym.Column,
			"function '%s' is declared but never used", sym.Name)
	}
}

func (l *Linter) checkUnused(sym *checker.Symbol) {
	if sym.Uses == 0 {
		l.diag.Warningf(sym.Line, sym.Column,
			"'%s' is declared but never used", sym.Name)
	}
}

// checkShadowing warns when sym hides a declaration that was visible at
// the point sym was declared
func (l *Linter) checkShadowing(scope *checker.Scope, sym *checker.Symbol) {
	outer := scope.Enclosing()
	if outer == nil {
		return
	}
	prev := outer.Lookup(sym.Name)
	if prev == nil || prev.Type.IsError() || !before(prev, sym) {
		return
	}
	l.diag.Warningf(sym.Line, sym.Column,
		"declaration of '%s' shadows a previous declaration", sym.Name)
	l.diag.Notef(prev.Line, prev.Column, "previous declaration of '%s' was here", prev.Name)
}

func before(a, b *checker.Symbol) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}
