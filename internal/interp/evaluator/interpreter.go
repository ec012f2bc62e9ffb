// Package evaluator walks the resolved AST and executes it, holding the
// numeric-tower dispatch rules, control-flow signals, and the
// callable/class/instance machinery that internal/interp/runtime leaves
// to this package to avoid an import cycle.
package evaluator

import (
	"fmt"
	"io"

	"github.com/Akarai77/Dharma/internal/ast"
	derrors "github.com/Akarai77/Dharma/internal/errors"
	"github.com/Akarai77/Dharma/internal/interp/runtime"
	"github.com/Akarai77/Dharma/internal/lexer"
)

// signalKind distinguishes the three ways a statement can unwind control
// up to an enclosing loop or function boundary. Unlike the parser's
// internal parseError/panic recovery (an unrelated, package-private
// mechanism), these propagate as ordinary return values.
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

type signal struct {
	kind  signalKind
	value runtime.Value  // only meaningful when kind == sigReturn
	tok   lexer.Token     // the return/break/continue keyword, for diagnostics
}

// Interpreter walks a resolved program, executing statements against a
// chain of Environments and reporting runtime errors through reporter.
type Interpreter struct {
	globals  *runtime.Environment
	env      *runtime.Environment
	depths   map[ast.Expr]int
	reporter *derrors.Reporter
	Stdout   io.Writer
}

func New(reporter *derrors.Reporter, depths map[ast.Expr]int, stdout io.Writer) *Interpreter {
	globals := runtime.NewEnvironment()
	in := &Interpreter{globals: globals, env: globals, depths: depths, reporter: reporter, Stdout: stdout}
	registerBuiltins(globals)
	return in
}

// Interpret executes statements in order, halting and reporting the
// first runtime error it hits.
func (in *Interpreter) Interpret(statements []ast.Stmt) {
	for _, stmt := range statements {
		if _, err := in.execStmt(stmt); err != nil {
			if diag, ok := err.(*derrors.Diagnostic); ok {
				in.reporter.Report(diag)
			}
			return
		}
	}
}

func (in *Interpreter) runtimeErr(tok lexer.Token, message string) *derrors.Diagnostic {
	return &derrors.Diagnostic{
		Kind:    derrors.RuntimeError,
		Pos:     derrors.Pos{Line: tok.Line, Col: tok.Col},
		Message: message,
		Lexeme:  tok.Lexeme,
	}
}

func (in *Interpreter) runtimeErrAt(tok lexer.Token, message string) *derrors.Diagnostic {
	return in.runtimeErr(tok, message)
}

func (in *Interpreter) warn(tok lexer.Token, message string) {
	in.reporter.Report(&derrors.Diagnostic{
		Kind:    derrors.ImplicitConversionWarning,
		Pos:     derrors.Pos{Line: tok.Line, Col: tok.Col},
		Message: message,
		Lexeme:  tok.Lexeme,
	})
}

func (in *Interpreter) execStmt(stmt ast.Stmt) (signal, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := in.evalExpr(s.Expression)
		return signal{}, err

	case *ast.Print:
		v, err := in.evalExpr(s.Expression)
		if err != nil {
			return signal{}, err
		}
		fmt.Fprintln(in.Stdout, runtime.Stringify(v))
		return signal{}, nil

	case *ast.Var:
		var val runtime.Value = runtime.Nil
		if s.Initializer != nil {
			v, err := in.evalExpr(s.Initializer)
			if err != nil {
				return signal{}, err
			}
			val = v
		}
		if s.TypeName != "variable" {
			converted, _, ok := runtime.ConvertTo(val, s.TypeName)
			if !ok {
				return signal{}, in.runtimeErr(s.Name, "cannot convert '"+val.Type()+"' to '"+s.TypeName+"'")
			}
			val = converted
		}
		in.env.Define(s.Name.Lexeme, val, s.TypeName)
		return signal{}, nil

	case *ast.Block:
		return in.execBlockEnv(s.Statements, runtime.NewEnclosed(in.env))

	case *ast.If:
		return in.execIf(s)

	case *ast.While:
		return in.execWhile(s)

	case *ast.For:
		return in.execFor(s)

	case *ast.Function:
		fn := NewFunction(s, in.env)
		in.env.Define(s.Name.Lexeme, fn, "function")
		return signal{}, nil

	case *ast.Class:
		return in.execClass(s)

	case *ast.Return:
		var val runtime.Value = runtime.Nil
		if s.Value != nil {
			v, err := in.evalExpr(s.Value)
			if err != nil {
				return signal{}, err
			}
			val = v
		}
		return signal{kind: sigReturn, value: val, tok: s.Keyword}, nil

	case *ast.Break:
		return signal{kind: sigBreak, tok: s.Keyword}, nil

	case *ast.Continue:
		return signal{kind: sigContinue, tok: s.Keyword}, nil

	default:
		panic("evaluator: unhandled statement type")
	}
}

// execBlockEnv runs statements against env, restoring the interpreter's
// previous environment before returning.
func (in *Interpreter) execBlockEnv(statements []ast.Stmt, env *runtime.Environment) (signal, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, st := range statements {
		sig, err := in.execStmt(st)
		if err != nil {
			return signal{}, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return signal{}, nil
}

func (in *Interpreter) execIf(s *ast.If) (signal, error) {
	cv, err := in.evalExpr(s.Cond)
	if err != nil {
		return signal{}, err
	}
	if runtime.Truthy(cv) {
		return in.execStmt(s.Then)
	}
	for i, cond := range s.ElifConds {
		cv, err := in.evalExpr(cond)
		if err != nil {
			return signal{}, err
		}
		if runtime.Truthy(cv) {
			return in.execStmt(s.ElifThens[i])
		}
	}
	if s.Else != nil {
		return in.execStmt(s.Else)
	}
	return signal{}, nil
}

func (in *Interpreter) execWhile(s *ast.While) (signal, error) {
	for {
		cv, err := in.evalExpr(s.Cond)
		if err != nil {
			return signal{}, err
		}
		if !runtime.Truthy(cv) {
			return signal{}, nil
		}
		sig, err := in.execStmt(s.Body)
		if err != nil {
			return signal{}, err
		}
		switch sig.kind {
		case sigBreak:
			return signal{}, nil
		case sigReturn:
			return sig, nil
		}
	}
}

func (in *Interpreter) execFor(s *ast.For) (signal, error) {
	loopEnv := runtime.NewEnclosed(in.env)
	previous := in.env
	in.env = loopEnv
	defer func() { in.env = previous }()

	if s.Init != nil {
		if _, err := in.execStmt(s.Init); err != nil {
			return signal{}, err
		}
	}

	for {
		if s.Cond != nil {
			cv, err := in.evalExpr(s.Cond)
			if err != nil {
				return signal{}, err
			}
			if !runtime.Truthy(cv) {
				return signal{}, nil
			}
		}

		sig, err := in.execStmt(s.Body)
		if err != nil {
			return signal{}, err
		}
		if sig.kind == sigBreak {
			return signal{}, nil
		}
		if sig.kind == sigReturn {
			return sig, nil
		}

		if s.Step != nil {
			if _, err := in.evalExpr(s.Step); err != nil {
				return signal{}, err
			}
		}
	}
}

func (in *Interpreter) execClass(s *ast.Class) (signal, error) {
	var super *Class
	if s.Superclass != nil {
		v, err := in.evalExpr(s.Superclass)
		if err != nil {
			return signal{}, err
		}
		sc, ok := v.(*Class)
		if !ok {
			return signal{}, in.runtimeErr(s.Superclass.Name, "superclass must be a class")
		}
		super = sc
	}

	in.env.Define(s.Name.Lexeme, runtime.Nil, "class")

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, in.env)
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: super, Methods: methods}
	if err := in.env.Assign(s.Name.Lexeme, class); err != nil {
		return signal{}, in.runtimeErr(s.Name, err.Error())
	}
	return signal{}, nil
}
