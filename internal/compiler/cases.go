package compiler

import (
	"fmt"
	"os"
	"strings"

	"github.com/lhaig/simplec/internal/casefile"
	"github.com/lhaig/simplec/internal/diagnostic"
)

// RunCase checks a case's source and compares the outcome with each of its
// assertions. The returned error describes the first mismatch.
func RunCase(tc casefile.Case) error {
	res, _ := Check(tc.Name, tc.Source)

	expectsSyntaxError := false
	for _, a := range tc.Assertions {
		var err error
		switch a.Kind {
		case casefile.AssertDiagnostics:
			err = compareLines("diagnostics", a.Content, res.diagnosticLines())
		case casefile.AssertSyntaxError:
			expectsSyntaxError = true
			err = compareSyntaxError(a.Content, res)
		case casefile.AssertSymbols:
			err = compareLines("symbols", a.Content, res.SymbolTable())
		case casefile.AssertWarnings:
			err = compareLines("warnings", a.Content, warningLines(res))
		default:
			err = fmt.Errorf("unknown assertion %q", a.Kind)
		}
		if err != nil {
			return fmt.Errorf("test '%s' (line %d): %w", tc.Name, a.Line, err)
		}
	}

	if res.SyntaxError != nil && !expectsSyntaxError {
		return fmt.Errorf("test '%s' (line %d): unexpected %s at %d:%d",
			tc.Name, tc.Line, res.SyntaxError, res.SyntaxError.Line, res.SyntaxError.Column)
	}
	return nil
}

// RunFile runs every case of a Markdown case document and returns the
// number of cases and the failures
func RunFile(path string) (int, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cases, err := casefile.ExtractCases(string(data))
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", path, err)
	}

	var failures []error
	for _, tc := range cases {
		if err := RunCase(tc); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", path, err))
		}
	}
	return len(cases), failures, nil
}

// diagnosticLines renders the semantic errors as "line:col: message" lines
func (r *Result) diagnosticLines() string {
	var b strings.Builder
	for _, d := range r.SemanticErrors() {
		fmt.Fprintf(&b, "%d:%d: %s\n", d.Line, d.Column, d.Message)
	}
	return b.String()
}

// warningLines renders the lint warnings, without notes, as
// "line:col: message" lines
func warningLines(r *Result) string {
	var b strings.Builder
	for _, d := range r.Warnings.All() {
		if d.Severity == diagnostic.Warning {
			fmt.Fprintf(&b, "%d:%d: %s\n", d.Line, d.Column, d.Message)
		}
	}
	return b.String()
}

func compareSyntaxError(want string, res *Result) error {
	want = strings.TrimSpace(want)
	if res.SyntaxError == nil {
		return fmt.Errorf("expected %q, parse succeeded", want)
	}
	if got := res.SyntaxError.Error(); got != want {
		return fmt.Errorf("syntax error mismatch:\nwant: %s\ngot:  %s", want, got)
	}
	return nil
}

func compareLines(what, want, got string) error {
	want = strings.TrimSpace(want)
	got = strings.TrimSpace(got)
	if want == got {
		return nil
	}
	return fmt.Errorf("%s mismatch:\n--- want\n%s\n--- got\n%s", what, want, got)
}
