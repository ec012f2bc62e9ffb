// Package parser implements Dharma's recursive-descent parser: tokens
// to AST, with type-annotation folding of literal initializers,
// compound-assignment desugaring, pre/post increment retagging, and
// implicit-semicolon synthesis.
//
// Grounded on the EBNF-equivalent grammar distilled from
// original_source/src/parser.hpp, laid out across files the way
// go-dws's internal/parser splits grammar areas (expressions.go,
// statements.go, declarations.go, error_recovery.go) even though the
// teacher's own rules are Pascal-specific and not reused.
package parser

import (
	"github.com/Akarai77/Dharma/internal/ast"
	derrors "github.com/Akarai77/Dharma/internal/errors"
	"github.com/Akarai77/Dharma/internal/lexer"
)

// maxArgs is the arity cap for both call arguments and function
// parameters.
const maxArgs = 255

// Parser consumes a token slice produced by the lexer and builds an
// AST, reporting ParseError/SemiColonWarning diagnostics
// through reporter as it goes rather than returning a single error.
type Parser struct {
	tokens   []lexer.Token
	current  int
	reporter *derrors.Reporter

	// SuppressSemicolonWarning disables the SemiColonWarning emitted by
	// implicit-semicolon synthesis, mirroring the original's global flag.
	SuppressSemicolonWarning bool

	// returnTypeStack tracks the declared return type of each function
	// currently being parsed, innermost last, so a nested return
	// statement can record the return type of its own enclosing
	// function rather than an outer one.
	returnTypeStack []string
}

func (p *Parser) currentReturnType() string {
	if len(p.returnTypeStack) == 0 {
		return "variable"
	}
	return p.returnTypeStack[len(p.returnTypeStack)-1]
}

func New(tokens []lexer.Token, reporter *derrors.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse consumes the whole token stream and returns the top-level
// statement list. A declaration that raises ParseError contributes
// nothing to the result; parsing resumes at the next statement
// boundary (see error_recovery.go).
func (p *Parser) Parse() []ast.Stmt {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// parseError is an internal control-flow signal used to unwind back to
// the nearest declaration() call after a diagnostic has already been
// reported; it never escapes the package.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

func (p *Parser) errorAt(tok lexer.Token, message string) parseError {
	p.reporter.Report(&derrors.Diagnostic{
		Kind:    derrors.ParseError,
		Pos:     derrors.Pos{Line: tok.Line, Col: tok.Col},
		Message: message,
		Lexeme:  tok.Lexeme,
	})
	return parseError{}
}

func (p *Parser) peek() lexer.Token  { return p.tokens[p.current] }
func (p *Parser) previous() lexer.Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool      { return p.peek().Type == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return tt == lexer.EOF
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// consumeSemicolon implements implicit-semicolon synthesis: when a ";"
// is expected but the next token isn't one, a semicolon is synthesized
// at the previous token's position and a SemiColonWarning is emitted,
// unless suppressed.
func (p *Parser) consumeSemicolon() {
	if p.check(lexer.SEMICOLON) {
		p.advance()
		return
	}
	if p.SuppressSemicolonWarning {
		return
	}
	prev := p.previous()
	p.reporter.Report(&derrors.Diagnostic{
		Kind:    derrors.SemiColonWarning,
		Pos:     derrors.Pos{Line: prev.Line, Col: prev.Col},
		Message: "missing ';' (inserted automatically)",
		Lexeme:  prev.Lexeme,
	})
}
