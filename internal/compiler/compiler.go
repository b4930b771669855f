package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lhaig/simplec/internal/checker"
	"github.com/lhaig/simplec/internal/diagnostic"
	"github.com/lhaig/simplec/internal/linter"
	"github.com/lhaig/simplec/internal/parser"
)

// Result holds the output of checking one translation unit
type Result struct {
	Filename     string
	Source       string
	Diagnostics  *diagnostic.Diagnostics
	Warnings     *diagnostic.Diagnostics // lint findings, empty after a syntax error
	Declarations []checker.Declaration
	Globals      []*checker.Symbol
	SyntaxError  *parser.SyntaxError // nil when the whole unit was parsed
}

// Check runs parse + check over source. A syntax error is returned and
// also recorded as the last diagnostic; everything checked before it is
// kept in the result.
func Check(filename, source string) (*Result, error) {
	diag := diagnostic.New()
	c := checker.New(diag)
	err := parser.New(source, c).Parse()

	res := &Result{
		Filename:     filename,
		Source:       source,
		Diagnostics:  diag,
		Declarations: c.Declarations(),
	}
	if global := c.Outermost(); global != nil {
		res.Globals = global.Symbols()
	}

	if err != nil {
		var se *parser.SyntaxError
		if !errors.As(err, &se) {
			return res, fmt.Errorf("%s: %w", filename, err)
		}
		res.SyntaxError = se
		diag.Errorf(se.Line, se.Column, "%s", se.Error())
	}

	if res.SyntaxError == nil {
		res.Warnings = linter.Lint(c)
	} else {
		res.Warnings = diagnostic.New()
	}
	diag.SetFile(filename)
	res.Warnings.SetFile(filename)
	if res.SyntaxError != nil {
		return res, res.SyntaxError
	}
	return res, nil
}

// SemanticErrors returns the error diagnostics reported by the checker,
// without the syntax error that stopped parsing.
func (r *Result) SemanticErrors() []diagnostic.Diagnostic {
	errs := r.Diagnostics.Errors()
	if r.SyntaxError != nil && len(errs) > 0 {
		errs = errs[:len(errs)-1]
	}
	return errs
}

// Failed reports whether the result should fail the exit status. Semantic
// errors only count in strict mode.
func (r *Result) Failed(strict bool) bool {
	if r.SyntaxError != nil {
		return true
	}
	return strict && r.Diagnostics.HasErrors()
}

// Format renders all diagnostics, optionally with source carets
func (r *Result) Format(caret bool) string {
	if caret {
		return r.Diagnostics.FormatWithSource(r.Filename, r.Source)
	}
	return r.Diagnostics.Format(r.Filename)
}

// FormatWarnings renders the lint warnings and their notes
func (r *Result) FormatWarnings(caret bool) string {
	if caret {
		return r.Warnings.FormatWithSource(r.Filename, r.Source)
	}
	return r.Warnings.Format(r.Filename)
}

// SymbolTable renders the global scope as "name: type" lines sorted by name
func (r *Result) SymbolTable() string {
	var b strings.Builder
	for _, sym := range r.Globals {
		fmt.Fprintf(&b, "%s: %s\n", sym.Name, sym.Type)
	}
	return b.String()
}

// DeclarationTrace renders every declaration in source order, indented by
// scope depth
func (r *Result) DeclarationTrace() string {
	var b strings.Builder
	for _, d := range r.Declarations {
		fmt.Fprintf(&b, "%s%d:%d: %s: %s\n", strings.Repeat("  ", d.Depth), d.Line, d.Column, d.Name, d.Type)
	}
	return b.String()
}
