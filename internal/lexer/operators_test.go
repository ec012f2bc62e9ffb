package lexer

import (
	"testing"

	derrors "github.com/Akarai77/Dharma/internal/errors"
)

func scan(t *testing.T, source string) []Token {
	t.Helper()
	reporter := derrors.NewReporter(derrors.NewSourceMap(source), false)
	l := New(source, reporter)
	tokens := l.ScanTokens()
	if reporter.HasErrors() {
		t.Fatalf("unexpected lexer errors for %q: %v", source, reporter.Diagnostics())
	}
	return tokens
}

// TestCompoundAssignmentOperators verifies every compound-assignment
// operator produces its own token, including "/=" which previously fell
// through "/" followed by a bare "=".
func TestCompoundAssignmentOperators(t *testing.T) {
	cases := []struct {
		source string
		want   TokenType
	}{
		{"+=", PLUS_EQUAL},
		{"-=", MINUS_EQUAL},
		{"*=", STAR_EQUAL},
		{"/=", SLASH_EQUAL},
		{"%=", PERCENT_EQUAL},
	}

	for _, c := range cases {
		t.Run(c.source, func(t *testing.T) {
			tokens := scan(t, c.source)
			if len(tokens) < 1 || tokens[0].Type != c.want {
				t.Fatalf("scanning %q: expected a single %v token, got %v", c.source, c.want, tokens)
			}
			if tokens[0].Lexeme != c.source {
				t.Errorf("expected lexeme %q, got %q", c.source, tokens[0].Lexeme)
			}
		})
	}
}

// TestSlashDivisionAndComment verifies "/" still lexes as SLASH and "//"
// still starts a line comment, both unaffected by the "/=" fix.
func TestSlashDivisionAndComment(t *testing.T) {
	tokens := scan(t, "1 / 2")
	if tokens[1].Type != SLASH {
		t.Fatalf("expected SLASH, got %v", tokens[1].Type)
	}

	tokens = scan(t, "1 // comment\n2")
	if tokens[0].Type != INTEGER || tokens[1].Type != INTEGER {
		t.Fatalf("expected the comment to be skipped entirely, got %v", tokens)
	}
}
