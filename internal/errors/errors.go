// Package errors renders Dharma's diagnostics: lexical, grammar, and
// runtime errors, plus non-halting warnings. Diagnostics carry source
// position and are rendered with a caret pointing at the offending
// column, using an explicitly-threaded source map rather than a
// process-wide singleton.
package errors

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Kind identifies the semantic category of a diagnostic.
type Kind int

const (
	SyntaxError Kind = iota
	ParseError
	RuntimeError
	SemiColonWarning
	ImplicitConversionWarning
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case ParseError:
		return "ParseError"
	case RuntimeError:
		return "RuntimeError"
	case SemiColonWarning:
		return "SemiColonWarning"
	case ImplicitConversionWarning:
		return "ImplicitConversionWarning"
	default:
		return "UnknownDiagnostic"
	}
}

// IsWarning reports whether this kind never halts the run that produced it.
func (k Kind) IsWarning() bool {
	return k == SemiColonWarning || k == ImplicitConversionWarning
}

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

// Diagnostic is a single lexical, grammar, or runtime finding.
//
// Lexeme, when non-empty, is used to widen the caret into a run spanning
// the offending token for RuntimeError; other kinds point with a single
// caret at Pos.Col.
type Diagnostic struct {
	Kind    Kind
	Pos     Pos
	Message string
	Lexeme  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[line %d, column %d] %s: %s", d.Pos.Line, d.Pos.Col, d.Kind, d.Message)
}

const (
	colorRed    = "\033[1;31m"
	colorYellow = "\033[1;33m"
	colorReset  = "\033[0m"
)

func (d *Diagnostic) color() string {
	if d.Kind.IsWarning() {
		return colorYellow
	}
	return colorRed
}

// Format renders the diagnostic against sm, optionally with ANSI color.
// sm may be nil, in which case no source line or caret is printed.
func (d *Diagnostic) Format(sm *SourceMap, color bool) string {
	var b strings.Builder

	header := fmt.Sprintf("[line %d, column %d] %s: %s", d.Pos.Line, d.Pos.Col, d.Kind, d.Message)
	if color {
		b.WriteString(d.color())
		b.WriteString(header)
		b.WriteString(colorReset)
	} else {
		b.WriteString(header)
	}
	b.WriteByte('\n')

	if sm == nil {
		return b.String()
	}
	line, ok := sm.Line(d.Pos.Line)
	if !ok {
		return b.String()
	}
	b.WriteString(line)
	b.WriteByte('\n')

	caretWidth := 1
	if d.Kind == RuntimeError && d.Lexeme != "" {
		caretWidth = runeWidth(d.Lexeme)
	}
	b.WriteString(caretPadding(line, d.Pos.Col))
	caret := strings.Repeat("^", caretWidth)
	if color {
		b.WriteString(d.color())
		b.WriteString(caret)
		b.WriteString(colorReset)
	} else {
		b.WriteString(caret)
	}
	return b.String()
}

// caretPadding builds the whitespace run preceding the caret, accounting
// for the display width of runes already printed on line (tabs count as
// one column; wide runes count per their terminal cell width) so the
// caret lines up under column d.Col even when the source line contains
// East-Asian-wide characters before it.
func caretPadding(line string, col int) string {
	var b strings.Builder
	runes := []rune(line)
	upto := col - 1
	if upto > len(runes) {
		upto = len(runes)
	}
	for _, r := range runes[:upto] {
		b.WriteString(strings.Repeat(" ", runeCellWidth(r)))
	}
	return b.String()
}

func runeWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeCellWidth(r)
	}
	if n == 0 {
		return 1
	}
	return n
}

func runeCellWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// SourceMap is an explicit, per-run holder of the source text split into
// lines, consulted by diagnostics to render source context. It replaces
// the original implementation's process-wide SourceManager singleton:
// every component that needs line rendering receives a *SourceMap value
// from its constructor instead of reaching into global state.
type SourceMap struct {
	lines []string
}

// NewSourceMap splits source into its constituent lines, ready for
// 1-based lookup by Line.
func NewSourceMap(source string) *SourceMap {
	return &SourceMap{lines: strings.Split(source, "\n")}
}

// Line returns the 1-based line n, or ok=false if out of range.
func (s *SourceMap) Line(n int) (string, bool) {
	if s == nil || n < 1 || n > len(s.lines) {
		return "", false
	}
	return s.lines[n-1], true
}

// Reporter collects diagnostics produced during a pipeline stage and
// renders them against a shared SourceMap.
type Reporter struct {
	SM          *SourceMap
	Color       bool
	diagnostics []*Diagnostic
}

func NewReporter(sm *SourceMap, color bool) *Reporter {
	return &Reporter{SM: sm, Color: color}
}

func (r *Reporter) Report(d *Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *Reporter) Diagnostics() []*Diagnostic {
	return r.diagnostics
}

// HasErrors reports whether any reported diagnostic is not a warning.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if !d.Kind.IsWarning() {
			return true
		}
	}
	return false
}

// Render renders all collected diagnostics, source-context included.
func (r *Reporter) Render() string {
	var b strings.Builder
	for _, d := range r.diagnostics {
		b.WriteString(d.Format(r.SM, r.Color))
		b.WriteByte('\n')
	}
	return b.String()
}
