package evaluator

import (
	"github.com/Akarai77/Dharma/internal/ast"
	"github.com/Akarai77/Dharma/internal/interp/runtime"
	"github.com/Akarai77/Dharma/internal/lexer"
)

// Callable is any runtime.Value that can appear as a Call expression's
// callee: user functions, classes (calling one constructs an
// instance), and built-ins. Call receives the argument expressions
// unevaluated, the same shape original_source/src/callable.hpp's
// Callable::call(interpreter, name, exprs) uses — native callables like
// typeOf need the raw expression, not just its value, to tell a bare
// identifier from a computed expression.
type Callable interface {
	runtime.Value
	Arity() int
	Call(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error)
}

// Function is a user-defined function or method, closing over the
// environment active where it was declared.
type Function struct {
	decl          *ast.Function
	closure       *runtime.Environment
	isInitializer bool
}

func NewFunction(decl *ast.Function, closure *runtime.Environment) *Function {
	return &Function{decl: decl, closure: closure, isInitializer: decl.Kind == ast.FuncInitializer}
}

func (*Function) Type() string      { return runtime.TagFunction }
func (f *Function) String() string  { return "<fn " + f.decl.Name.Lexeme + ">" }
func (f *Function) Arity() int      { return len(f.decl.Params) }

// Bind returns a copy of f whose closure additionally defines "this" as
// instance, implementing method binding (Get on an instance).
func (f *Function) Bind(instance *Instance) *Function {
	env := runtime.NewEnclosed(f.closure)
	env.Define("this", instance, "instance")
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

func (f *Function) Call(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error) {
	values := make([]runtime.Value, len(args))
	for i, a := range args {
		v, err := in.evalExpr(a)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	env := runtime.NewEnclosed(f.closure)
	for i, param := range f.decl.Params {
		v := values[i]
		if param.TypeName != "variable" {
			converted, _, ok := runtime.ConvertTo(v, param.TypeName)
			if !ok {
				return nil, in.runtimeErr(paren, "cannot convert '"+v.Type()+"' to '"+param.TypeName+"'")
			}
			v = converted
		}
		env.Define(param.Name.Lexeme, v, param.TypeName)
	}

	sig, err := in.execBlockEnv(f.decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		this, _ := f.closure.GetAt(0, "this")
		return this, nil
	}

	if sig.kind != sigReturn {
		return runtime.Nil, nil
	}

	retType := f.decl.ReturnType
	if retType == "variable" {
		return sig.value, nil
	}
	converted, _, ok := runtime.ConvertTo(sig.value, retType)
	if !ok {
		return nil, in.runtimeErrAt(sig.tok, "cannot convert '"+sig.value.Type()+"' to '"+retType+"'")
	}
	return converted, nil
}

// Class is a callable whose invocation constructs an Instance,
// delegating to its "init" method (if any).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (*Class) Type() string     { return runtime.TagClass }
func (c *Class) String() string { return "<class " + c.Name + ">" }

// FindMethod performs linear chain lookup through the superclass.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]runtime.Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args, paren); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a class instance: a field map plus a reference to its
// class for method lookup.
type Instance struct {
	Class  *Class
	Fields map[string]runtime.Value
}

func (*Instance) Type() string     { return runtime.TagInstance }
func (i *Instance) String() string { return "<" + i.Class.Name + " instance>" }

func (i *Instance) Get(name lexer.Token) (runtime.Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.Class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, &propertyError{name: name.Lexeme}
}

func (i *Instance) Set(name lexer.Token, value runtime.Value) {
	i.Fields[name.Lexeme] = value
}

type propertyError struct{ name string }

func (e *propertyError) Error() string { return "undefined property '" + e.name + "'" }

// NativeFunction wraps a built-in implemented in Go.
type NativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error)
}

func (*NativeFunction) Type() string     { return runtime.TagFunction }
func (*NativeFunction) String() string   { return "<native fn>" }
func (n *NativeFunction) Arity() int     { return n.arity }
func (n *NativeFunction) Call(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error) {
	return n.fn(in, args, paren)
}
