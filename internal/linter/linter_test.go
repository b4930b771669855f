package linter

import (
	"strings"
	"testing"

	"github.com/lhaig/simplec/internal/checker"
	"github.com/lhaig/simplec/internal/diagnostic"
	"github.com/lhaig/simplec/internal/parser"
	"github.com/nalgeon/be"
)

func parseAndLint(t *testing.T, source string) []string {
	t.Helper()
	c := checker.New(nil)
	if err := parser.New(source, c).Parse(); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Diagnostics().HasErrors() {
		t.Fatalf("Checker errors: %s", c.Diagnostics().Format("test"))
	}

	diag := Lint(c)
	var warnings []string
	for _, d := range diag.All() {
		warnings = append(warnings, d.Message)
	}
	return warnings
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// --- Unused declarations ---

func TestUnusedLocal(t *testing.T) {
	source := `int main(void) {
    int x;
    int y;
    y = 1;
    return y;
}`
	warnings := parseAndLint(t, source)
	if !containsWarning(warnings, "'x' is declared but never used") {
		t.Errorf("Expected unused warning for x, got: %v", warnings)
	}
	if containsWarning(warnings, "'y'") {
		t.Errorf("Did not expect warning for y, got: %v", warnings)
	}
}

func TestUnusedParameter(t *testing.T) {
	source := `int f(int a, int b) { return a; }`
	warnings := parseAndLint(t, source)
	be.Equal(t, warnings, []string{"'b' is declared but never used"})
}

func TestPrototypeParametersIgnored(t *testing.T) {
	source := `int f(int unused);
int f(int n) { return n; }
int main(void) { return f(1); }`
	warnings := parseAndLint(t, source)
	be.Equal(t, len(warnings), 0)
}

func TestUnusedGlobalVariableIgnored(t *testing.T) {
	warnings := parseAndLint(t, `int g; int main(void) { return 0; }`)
	be.Equal(t, len(warnings), 0)
}

// --- Unused prototypes ---

func TestUnusedPrototype(t *testing.T) {
	source := `int helper(int n);
double used(void);
int main(void) { double d; d = used(); return 0; }`
	warnings := parseAndLint(t, source)
	be.Equal(t, warnings, []string{"function 'helper' is declared but never used"})
}

func TestDefinedFunctionNotReported(t *testing.T) {
	warnings := parseAndLint(t, `int helper(void) { return 1; }`)
	if containsWarning(warnings, "helper") {
		t.Errorf("Did not expect warning for a defined function, got: %v", warnings)
	}
}

// --- Shadowing ---

func TestParameterShadowsGlobal(t *testing.T) {
	source := `int x;
int f(int x) { return x; }`
	warnings := parseAndLint(t, source)
	be.Equal(t, warnings, []string{
		"declaration of 'x' shadows a previous declaration",
		"previous declaration of 'x' was here",
	})
}

func TestBlockShadowsLocal(t *testing.T) {
	source := `int main(void) {
    int i;
    i = 0;
    while (i < 3) {
        int i;
        i = 1;
    }
    return i;
}`
	c := checker.New(nil)
	be.Err(t, parser.New(source, c).Parse(), nil)

	diag := Lint(c)
	all := diag.All()
	be.Equal(t, len(all), 2)
	be.Equal(t, all[0].Severity, diagnostic.Warning)
	be.Equal(t, all[0].Line, 5)
	be.Equal(t, all[0].Column, 13)
	be.Equal(t, all[1].Severity, diagnostic.Note)
	be.Equal(t, all[1].Line, 2)
	be.Equal(t, diag.HasErrors(), false)
}

func TestLaterGlobalNotShadowed(t *testing.T) {
	source := `int f(int n) { return n; }
int n;`
	warnings := parseAndLint(t, source)
	if containsWarning(warnings, "shadows") {
		t.Errorf("Did not expect shadowing warning, got: %v", warnings)
	}
}

func TestErrorSymbolsSkipped(t *testing.T) {
	c := checker.New(nil)
	be.Err(t, parser.New(`int main(void) { return missing; }`, c).Parse(), nil)
	be.Equal(t, c.Diagnostics().ErrorCount(), 1)

	diag := Lint(c)
	be.Equal(t, diag.Count(), 0)
}
