package lexer

import "fmt"

// Token is an immutable lexical unit. Type-annotation folding in
// internal/parser leaves the token as scanned and rewrites the value of
// the ast.Literal node that holds it.
//
// Literal carries the raw textual payload for literal tokens (numeric
// literals keep their exact source digits so the runtime numeric tower
// can apply its own narrowest-fit parsing rather than losing precision
// through an intermediate machine type); STRING carries the text between
// the delimiters, with no escape sequences processed; TRUE/FALSE/NIL
// carry no payload, their Type is enough.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Col     int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}
