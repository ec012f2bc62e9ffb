package evaluator

import (
	"strings"
	"testing"

	derrors "github.com/Akarai77/Dharma/internal/errors"
)

func TestScenario_Arithmetic(t *testing.T) {
	out, diags := run(t, "print 1 + 2;")
	assertNoErrors(t, diags)
	if out != "3\n" {
		t.Errorf("expected %q, got %q", "3\n", out)
	}
}

func TestScenario_CompoundAssign(t *testing.T) {
	out, diags := run(t, "int x = 3; x += 4; print x;")
	assertNoErrors(t, diags)
	if out != "7\n" {
		t.Errorf("expected %q, got %q", "7\n", out)
	}
}

func TestScenario_Fibonacci(t *testing.T) {
	src := `fun fib(integer n) -> integer { if (n < 2) return n; return fib(n-1) + fib(n-2); } print fib(10);`
	out, diags := run(t, src)
	assertNoErrors(t, diags)
	if out != "55\n" {
		t.Errorf("expected %q, got %q", "55\n", out)
	}
}

func TestScenario_ClosureCounter(t *testing.T) {
	src := `fun counter() -> var { var i = 0; fun step() -> integer { i = i + 1; return i; } return step; } var c = counter(); print c(); print c(); print c();`
	out, diags := run(t, src)
	assertNoErrors(t, diags)
	if out != "1\n2\n3\n" {
		t.Errorf("expected %q, got %q", "1\n2\n3\n", out)
	}
}

func TestScenario_ClassGreeter(t *testing.T) {
	src := `class Greeter { fun init(string n){ this.name = n; } fun hi() -> string { return "hi " + this.name; } } print Greeter("world").hi();`
	out, diags := run(t, src)
	assertNoErrors(t, diags)
	if out != "'hi world'\n" {
		t.Errorf("expected %q, got %q", "'hi world'\n", out)
	}
}

func TestScenario_DivideByZero(t *testing.T) {
	out, diags := run(t, "print 1 / 0;")
	if out != "" {
		t.Errorf("expected no stdout, got %q", out)
	}
	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "divide by zero") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a divide-by-zero diagnostic, got %v", diags)
	}
}

func TestScenario_BigIntStaysInteger(t *testing.T) {
	src := `var big = 2; for (int i = 0; i < 40; i = i + 1) { big = big * 2; } print typeOf(big);`
	out, diags := run(t, src)
	assertNoErrors(t, diags)
	if !strings.HasSuffix(strings.TrimSpace(out), "integer") {
		t.Errorf("expected a string ending in 'integer', got %q", out)
	}
}

func TestBreakContinue(t *testing.T) {
	src := `var sum = 0; for (int i = 0; i < 10; i = i + 1) { if (i == 5) break; if (i % 2 == 0) continue; sum = sum + i; } print sum;`
	out, diags := run(t, src)
	assertNoErrors(t, diags)
	if out != "4\n" {
		t.Errorf("expected %q, got %q", "4\n", out)
	}
}

func TestLogicalShortCircuitReturnsOperand(t *testing.T) {
	out, diags := run(t, `print 0 or "fallback";`)
	assertNoErrors(t, diags)
	if out != "0\n" {
		t.Errorf("expected %q, got %q", "0\n", out)
	}
}

func TestLogicalAndOrCoercesToBoolean(t *testing.T) {
	out, diags := run(t, `print 1 && 1;`)
	assertNoErrors(t, diags)
	if out != "true\n" {
		t.Errorf("expected %q, got %q", "true\n", out)
	}
}

// TestNilBooleanArithmeticDoesNotPanic guards against a regression where
// the boolean-operand arithmetic fast path asserted both operands were
// BooleanValue even though nil also promotes to "boolean" against a
// BooleanValue peer (nil's lattice priority is below boolean's). Such a
// mismatched pair must raise a RuntimeError, not crash the interpreter.
func TestNilBooleanArithmeticDoesNotPanic(t *testing.T) {
	sources := []string{
		`var x; print x + true;`,
		`var x; print true - x;`,
		`var x; print x * true;`,
	}
	for _, src := range sources {
		out, diags := run(t, src)
		if out != "" {
			t.Errorf("%q: expected no stdout, got %q", src, out)
		}
		foundError := false
		for _, d := range diags {
			if !d.Kind.IsWarning() {
				foundError = true
			}
		}
		if !foundError {
			t.Errorf("%q: expected a runtime error diagnostic, got %v", src, diags)
		}
	}
}

func TestJSONBuiltins(t *testing.T) {
	src := `var doc = '{"a":1}'; var updated = jsonSet(doc, "b", 2); print jsonGet(updated, "b");`
	out, diags := run(t, src)
	assertNoErrors(t, diags)
	if strings.TrimSpace(out) != "2" {
		t.Errorf("expected %q, got %q", "2", out)
	}
}

func TestInheritanceMethodChain(t *testing.T) {
	src := `class Animal { fun speak() -> string { return "..."; } }
class Dog extends Animal { fun speak() -> string { return "woof"; } }
print Dog().speak();`
	out, diags := run(t, src)
	assertNoErrors(t, diags)
	if out != "'woof'\n" {
		t.Errorf("expected %q, got %q", "'woof'\n", out)
	}
}

func assertNoErrors(t *testing.T, diags []*derrors.Diagnostic) {
	t.Helper()
	for _, d := range diags {
		if !d.Kind.IsWarning() {
			t.Fatalf("unexpected diagnostic: %s", d.Error())
		}
	}
}
