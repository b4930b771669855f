package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single compiler error, warning or attached note
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Column   int
	File     string // optional file path
}

// Diagnostics manages a collection of diagnostic messages
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(line, col int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Notef adds a note that elaborates on the preceding error
func (d *Diagnostics) Notef(line, col int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Severity: Note,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	errors := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == Error {
			errors = append(errors, item)
		}
	}
	return errors
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Error {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Warning {
			count++
		}
	}
	return count
}

// SetFile stamps every diagnostic that has no file with the given path
func (d *Diagnostics) SetFile(file string) {
	for i := range d.items {
		if d.items[i].File == "" {
			d.items[i].File = file
		}
	}
}

// Format returns human-readable error messages
// Output format:
//
//	error[filename:3:10]: 'x' undeclared
//	error[filename:5:1]: redeclaration of 'y'
//	note[filename:4:9]: previous declaration of 'y' was here
func (d *Diagnostics) Format(filename string) string {
	return d.format(filename, nil)
}

// FormatWithSource is like Format but follows each diagnostic with the
// source line it points at and a caret under the column.
func (d *Diagnostics) FormatWithSource(filename, source string) string {
	return d.format(filename, strings.Split(source, "\n"))
}

func (d *Diagnostics) format(filename string, lines []string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		fileToUse := filename
		if item.File != "" {
			fileToUse = item.File
		}

		builder.WriteString(fmt.Sprintf("%s[%s:%d:%d]: %s",
			item.Severity.String(),
			fileToUse,
			item.Line,
			item.Column,
			item.Message,
		))

		if item.Line >= 1 && item.Line <= len(lines) {
			builder.WriteString("\n")
			builder.WriteString(caretLine(lines[item.Line-1], item.Column))
		}

		// Add newline unless it's the last item
		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// caretLine renders a source line followed by a caret under col.
// Tabs are widened to four columns on both lines so the caret stays aligned.
func caretLine(line string, col int) string {
	line = strings.TrimRight(line, "\r")

	var src, mark strings.Builder
	for i, ch := range line {
		width := 1
		if ch == '\t' {
			width = 4
			src.WriteString("    ")
		} else {
			src.WriteRune(ch)
		}
		if i+1 < col {
			mark.WriteString(strings.Repeat(" ", width))
		}
	}
	mark.WriteString("^")

	return "    " + src.String() + "\n    " + mark.String()
}
