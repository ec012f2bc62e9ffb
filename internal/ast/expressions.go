package ast

import (
	"github.com/Akarai77/Dharma/internal/interp/runtime"
	"github.com/Akarai77/Dharma/internal/lexer"
)

// Literal is a constant value materialized once at parse time, already
// coerced against any enclosing type annotation by the parser's
// type-annotation folding. Value's own Type() is the dynamic type tag;
// a separate tag field would only restate it (see spec's Design Notes
// on dropping a redundant type-tag alongside a variant payload).
type Literal struct {
	Token lexer.Token   // the literal token, for position and original lexeme
	Value runtime.Value // the materialized payload, post-folding
}

func (*Literal) exprNode()              {}
func (l *Literal) Pos() (line, col int) { return l.Token.Line, l.Token.Col }

// Variable is a bare identifier reference.
type Variable struct {
	Name lexer.Token
}

func (*Variable) exprNode()             {}
func (v *Variable) Pos() (line, col int) { return v.Name.Line, v.Name.Col }

// Grouping is a parenthesized sub-expression.
type Grouping struct {
	Paren      lexer.Token
	Expression Expr
}

func (*Grouping) exprNode()             {}
func (g *Grouping) Pos() (line, col int) { return g.Paren.Line, g.Paren.Col }

// Unary covers !, unary -, and the four increment/decrement forms; Op
// distinguishes PRE_INCR/PRE_DECR (prefix) from POST_INCR/POST_DECR
// (postfix) after the parser's retagging pass.
type Unary struct {
	Op      lexer.Token
	Operand Expr
}

func (*Unary) exprNode()              {}
func (u *Unary) Pos() (line, col int) { return u.Op.Line, u.Op.Col }

// Binary is an arithmetic or comparison operator applied to two
// operands, promoted to a common type at evaluation time.
type Binary struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

func (*Binary) exprNode()              {}
func (b *Binary) Pos() (line, col int) { return b.Op.Line, b.Op.Col }

// Logical is "or"/"and"/"||"/"&&", evaluated with short-circuiting.
type Logical struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

func (*Logical) exprNode()              {}
func (l *Logical) Pos() (line, col int) { return l.Op.Line, l.Op.Col }

// Assign covers plain "=" and the desugared compound forms: the parser
// rewrites "x += e" to Assign{Name: x, Op: "=", Value: Binary{x, +, e}},
// so the evaluator only ever sees a single assignment shape.
type Assign struct {
	Name  lexer.Token
	Op    lexer.Token
	Value Expr
}

func (*Assign) exprNode()              {}
func (a *Assign) Pos() (line, col int) { return a.Name.Line, a.Name.Col }

// Call is a function/class/method invocation. Paren is the closing
// parenthesis token, used to position arity-mismatch diagnostics.
type Call struct {
	Callee Expr
	Paren  lexer.Token
	Args   []Expr
}

func (*Call) exprNode()              {}
func (c *Call) Pos() (line, col int) { return c.Paren.Line, c.Paren.Col }

// Get is a property/method read on an instance: object.name.
type Get struct {
	Object Expr
	Name   lexer.Token
}

func (*Get) exprNode()              {}
func (g *Get) Pos() (line, col int) { return g.Name.Line, g.Name.Col }

// Set is a property write on an instance: object.name = value.
type Set struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

func (*Set) exprNode()              {}
func (s *Set) Pos() (line, col int) { return s.Name.Line, s.Name.Col }

// This is the "this" keyword inside a method body.
type This struct {
	Keyword lexer.Token
}

func (*This) exprNode()              {}
func (t *This) Pos() (line, col int) { return t.Keyword.Line, t.Keyword.Col }
