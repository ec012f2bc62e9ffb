package evaluator

import (
	"bytes"
	"testing"

	derrors "github.com/Akarai77/Dharma/internal/errors"
	"github.com/Akarai77/Dharma/internal/lexer"
	"github.com/Akarai77/Dharma/internal/parser"
	"github.com/Akarai77/Dharma/internal/resolver"
)

// run lexes, parses, resolves, and interprets source, returning stdout
// and the diagnostics reported along the way. It mirrors the teacher's
// own lex->parse->semantic->eval pipeline shape, substituted with
// Dharma's own resolve pass in place of go-dws's semantic analyzer.
func run(t *testing.T, source string) (string, []*derrors.Diagnostic) {
	t.Helper()
	sm := derrors.NewSourceMap(source)
	reporter := derrors.NewReporter(sm, false)

	lx := lexer.New(source, reporter)
	tokens := lx.ScanTokens()
	p := parser.New(tokens, reporter)
	statements := p.Parse()
	if reporter.HasErrors() {
		return "", reporter.Diagnostics()
	}

	depths := resolver.New(reporter).Resolve(statements)
	if reporter.HasErrors() {
		return "", reporter.Diagnostics()
	}

	var out bytes.Buffer
	in := New(reporter, depths, &out)
	in.Interpret(statements)
	return out.String(), reporter.Diagnostics()
}
