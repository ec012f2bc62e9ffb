package resolver

import (
	"testing"

	derrors "github.com/Akarai77/Dharma/internal/errors"
	"github.com/Akarai77/Dharma/internal/lexer"
	"github.com/Akarai77/Dharma/internal/parser"
)

func resolve(t *testing.T, source string) *derrors.Reporter {
	t.Helper()
	reporter := derrors.NewReporter(derrors.NewSourceMap(source), false)
	l := lexer.New(source, reporter)
	tokens := l.ScanTokens()
	p := parser.New(tokens, reporter)
	statements := p.Parse()
	if reporter.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", source, reporter.Diagnostics())
	}
	New(reporter).Resolve(statements)
	return reporter
}

// TestBreakContinueInsideLoop verifies ordinary loop-bounded break and
// continue resolve without error.
func TestBreakContinueInsideLoop(t *testing.T) {
	sources := []string{
		`while (true) { break; }`,
		`while (true) { continue; }`,
		`for (int i = 0; i < 10; i = i + 1) { break; }`,
		`for (int i = 0; i < 10; i = i + 1) { continue; }`,
	}
	for _, src := range sources {
		reporter := resolve(t, src)
		if reporter.HasErrors() {
			t.Errorf("%q: expected no errors, got %v", src, reporter.Diagnostics())
		}
	}
}

// TestBreakOutsideLoopIsParseError verifies a stray break/continue at
// top level, or in a function body with no enclosing loop, is rejected
// at resolve time rather than silently accepted.
func TestBreakOutsideLoopIsParseError(t *testing.T) {
	sources := []string{
		`break;`,
		`continue;`,
		`fun f() -> var { break; }`,
		`fun f() -> var { continue; }`,
	}
	for _, src := range sources {
		reporter := resolve(t, src)
		if !reporter.HasErrors() {
			t.Errorf("%q: expected a resolve-time error, got none", src)
		}
	}
}

// TestBreakCannotCrossFunctionBoundary verifies break/continue inside a
// nested function defined within a loop body does not see the
// enclosing loop.
func TestBreakCannotCrossFunctionBoundary(t *testing.T) {
	src := `while (true) { fun inner() -> var { break; } }`
	reporter := resolve(t, src)
	if !reporter.HasErrors() {
		t.Errorf("expected break inside a nested function to be rejected, got no errors")
	}
}
