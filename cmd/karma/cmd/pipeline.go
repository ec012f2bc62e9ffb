package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/Akarai77/Dharma/internal/ast"
	derrors "github.com/Akarai77/Dharma/internal/errors"
	"github.com/Akarai77/Dharma/internal/interp/evaluator"
	"github.com/Akarai77/Dharma/internal/lexer"
	"github.com/Akarai77/Dharma/internal/parser"
	"github.com/Akarai77/Dharma/internal/resolver"
)

// parseSource runs the lex+parse stages only, for the dump subcommand
// and for run's own front half. Diagnostics are collected on reporter;
// callers decide whether to halt on reporter.HasErrors().
func parseSource(source string, reporter *derrors.Reporter) []ast.Stmt {
	lx := lexer.New(source, reporter)
	tokens := lx.ScanTokens()
	p := parser.New(tokens, reporter)
	return p.Parse()
}

// runSource lexes, parses, resolves, and evaluates source against
// stdout, reporting every diagnostic hit along the way. verbose, when
// set, writes per-stage timings to stderr.
func runSource(source string, reporter *derrors.Reporter, stdout io.Writer, stderr io.Writer, verbose bool) {
	start := time.Now()
	statements := parseSource(source, reporter)
	lexParseElapsed := time.Since(start)
	if verbose {
		fprintStage(stderr, "lex+parse", lexParseElapsed)
	}
	if reporter.HasErrors() {
		return
	}

	resolveStart := time.Now()
	depths := resolver.New(reporter).Resolve(statements)
	if verbose {
		fprintStage(stderr, "resolve", time.Since(resolveStart))
	}
	if reporter.HasErrors() {
		return
	}

	evalStart := time.Now()
	in := evaluator.New(reporter, depths, stdout)
	in.Interpret(statements)
	if verbose {
		fprintStage(stderr, "eval", time.Since(evalStart))
	}
}

func fprintStage(w io.Writer, stage string, d time.Duration) {
	fmt.Fprintf(w, "[%s] %s\n", stage, d)
}
