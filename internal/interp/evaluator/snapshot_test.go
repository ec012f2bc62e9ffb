package evaluator

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestSnapshots snapshot-tests stdout+diagnostics for the same
// end-to-end scenarios exercised individually in interpreter_test.go, the teacher's own
// go-snaps fixture pattern (internal/interp/fixture_test.go) applied to
// Dharma's own scenario set rather than DWScript's test corpus.
func TestSnapshots(t *testing.T) {
	scenarios := map[string]string{
		"arithmetic":  "print 1 + 2;",
		"fibonacci":   `fun fib(integer n) -> integer { if (n < 2) return n; return fib(n-1) + fib(n-2); } print fib(10);`,
		"closure":     `fun counter() -> var { var i = 0; fun step() -> integer { i = i + 1; return i; } return step; } var c = counter(); print c(); print c(); print c();`,
		"class_chain": `class Animal { fun speak() -> string { return "..."; } } class Dog extends Animal { fun speak() -> string { return "woof"; } } print Dog().speak();`,
		"divide_zero": "print 1 / 0;",
	}

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	for _, name := range names {
		src := scenarios[name]
		t.Run(name, func(t *testing.T) {
			out, diags := run(t, src)
			messages := make([]string, len(diags))
			for i, d := range diags {
				messages[i] = d.Error()
			}
			snaps.MatchSnapshot(t, "stdout", out, "diagnostics", messages)
		})
	}
}
