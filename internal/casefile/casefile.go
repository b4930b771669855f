// Package casefile extracts compiler test cases from Markdown documents.
//
// A case starts at a heading of the form "Test: <name>" and is followed by
// one c fence holding the translation unit and at least one assertion
// fence (diagnostics, syntax-error or symbols).
package casefile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputLanguage is the fence language of a case's source
const InputLanguage = "c"

// AssertionKind is the fence language of an assertion
type AssertionKind string

const (
	// AssertDiagnostics lists the expected error diagnostics, one
	// "line:col: message" per line. An empty fence expects none.
	AssertDiagnostics AssertionKind = "diagnostics"
	// AssertSyntaxError holds the expected fatal syntax error message
	AssertSyntaxError AssertionKind = "syntax-error"
	// AssertSymbols lists the expected global symbols as "name: type"
	AssertSymbols AssertionKind = "symbols"
	// AssertWarnings lists the expected lint warnings as "line:col: message"
	AssertWarnings AssertionKind = "warnings"
)

// Assertion is one assertion fence of a case
type Assertion struct {
	Kind    AssertionKind
	Content string
	Line    int
}

// Case is a single test case extracted from a document
type Case struct {
	Name       string
	Source     string
	Line       int // line of the heading
	Assertions []Assertion
}

// ExtractCases parses a Markdown document and returns its cases in order
func ExtractCases(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case
	hasInput := false

	finish := func() error {
		if current == nil {
			return nil
		}
		if !hasInput {
			return fmt.Errorf("line %d: test '%s' has no %s fence", current.Line, current.Name, InputLanguage)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("line %d: test '%s' has no assertion fences", current.Line, current.Name)
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(heading, "Test: ")),
				Line: lineNumber(n, source),
			}
			hasInput = false

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := fenceLine(n, source)

			if current == nil {
				if language == "" {
					return ast.WalkContinue, nil
				}
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			content := strings.TrimRight(fenceContent(n, source), "\n")
			switch {
			case language == InputLanguage:
				if hasInput {
					return ast.WalkStop, fmt.Errorf("line %d: multiple %s fences in test '%s'", line, InputLanguage, current.Name)
				}
				current.Source = content
				hasInput = true
			case isAssertion(language):
				current.Assertions = append(current.Assertions, Assertion{
					Kind:    AssertionKind(language),
					Content: content,
					Line:    line,
				})
			case language != "":
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("casefile: %w", err)
	}

	if err := finish(); err != nil {
		return nil, fmt.Errorf("casefile: %w", err)
	}
	return cases, nil
}

func isAssertion(language string) bool {
	switch AssertionKind(language) {
	case AssertDiagnostics, AssertSyntaxError, AssertSymbols, AssertWarnings:
		return true
	}
	return false
}

// nodeText returns the plain text of a node's inline children
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// fenceLine returns the line of the opening fence
func fenceLine(block *ast.FencedCodeBlock, source []byte) int {
	if block.Info == nil {
		return lineNumber(block, source) - 1
	}
	return offsetLine(source, block.Info.Segment.Start)
}

// lineNumber returns the 1-based line a block node starts on
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	return offsetLine(source, node.Lines().At(0).Start)
}

func offsetLine(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
