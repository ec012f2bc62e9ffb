// Package ast defines Dharma's expression and statement node types.
//
// Nodes are plain structs with unexported marker methods (exprNode /
// stmtNode), matching go-dws's internal/ast shape; dispatch over them
// is a type switch in the resolver and evaluator rather than a
// visitor/Accept method, again following go-dws's own evaluator, which
// type-switches over ast.Expression/ast.Statement rather than exposing
// an Accept method anywhere in the package.
package ast

// Expr is any node that produces a runtime value.
type Expr interface {
	exprNode()
	Pos() (line, col int)
}

// Stmt is any node that performs an action.
type Stmt interface {
	stmtNode()
	Pos() (line, col int)
}

// Program is the root of a parsed source file or REPL line.
type Program struct {
	Statements []Stmt
}
