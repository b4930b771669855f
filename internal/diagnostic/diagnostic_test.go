package diagnostic

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestErrorCounting(t *testing.T) {
	d := New()
	be.Equal(t, d.HasErrors(), false)
	be.Equal(t, d.Format("a.c"), "")

	d.Errorf(3, 5, "redeclaration of '%s'", "x")
	d.Notef(2, 9, "previous declaration of '%s' was here", "x")
	d.Errorf(7, 1, "'%s' undeclared", "y")

	be.True(t, d.HasErrors())
	be.Equal(t, d.Count(), 3)
	be.Equal(t, d.ErrorCount(), 2)
	be.Equal(t, len(d.Errors()), 2)
	be.Equal(t, d.Errors()[1].Message, "'y' undeclared")
}

func TestFormat(t *testing.T) {
	d := New()
	d.Errorf(1, 9, "invalid operands to binary %s", "+")
	d.Notef(1, 5, "declared here")

	want := "error[t.c:1:9]: invalid operands to binary +\n" +
		"note[t.c:1:5]: declared here"
	be.Equal(t, d.Format("t.c"), want)
}

func TestFormatUsesItemFile(t *testing.T) {
	d := New()
	d.Errorf(2, 1, "break statement not within loop")
	d.SetFile("other.c")
	d.Errorf(4, 1, "invalid return type")

	want := "error[other.c:2:1]: break statement not within loop\n" +
		"error[main.c:4:1]: invalid return type"
	be.Equal(t, d.Format("main.c"), want)
}

func TestFormatWithSource(t *testing.T) {
	source := "int x;\n\tx = p + 1;\n"
	d := New()
	d.Errorf(2, 6, "'p' undeclared")

	want := "error[t.c:2:6]: 'p' undeclared\n" +
		"        x = p + 1;\n" +
		"            ^"
	be.Equal(t, d.FormatWithSource("t.c", source), want)
}

func TestFormatWithSourceOutOfRange(t *testing.T) {
	d := New()
	d.Errorf(10, 1, "syntax error at end of file")

	be.Equal(t, d.FormatWithSource("t.c", "int x;"), "error[t.c:10:1]: syntax error at end of file")
}

func TestSeverityString(t *testing.T) {
	be.Equal(t, Error.String(), "error")
	be.Equal(t, Warning.String(), "warning")
	be.Equal(t, Note.String(), "note")
	be.Equal(t, Severity(9).String(), "unknown")
}

func TestWarningsAreNotErrors(t *testing.T) {
	d := New()
	d.Warningf(2, 9, "'x' is declared but never used")

	be.Equal(t, d.HasErrors(), false)
	be.Equal(t, d.Count(), 1)
	be.Equal(t, d.WarningCount(), 1)
	be.Equal(t, d.ErrorCount(), 0)
	be.Equal(t, d.Format("t.c"), "warning[t.c:2:9]: 'x' is declared but never used")
}
