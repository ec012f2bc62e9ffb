package evaluator

import (
	"fmt"
	"math"

	"github.com/Akarai77/Dharma/internal/ast"
	"github.com/Akarai77/Dharma/internal/interp/runtime"
	"github.com/Akarai77/Dharma/internal/lexer"
)

func (in *Interpreter) evalExpr(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Variable:
		return in.lookupVariable(e.Name, e)

	case *ast.This:
		return in.lookupVariable(e.Keyword, e)

	case *ast.Grouping:
		return in.evalExpr(e.Expression)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Assign:
		return in.evalAssign(e)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		return in.evalGet(e)

	case *ast.Set:
		return in.evalSet(e)

	default:
		panic("evaluator: unhandled expression type")
	}
}

// lookupVariable reads name using the resolver's scope-depth side table
// for expr, falling back to globals for anything the resolver left
// unresolved (top-level declarations).
func (in *Interpreter) lookupVariable(name lexer.Token, expr ast.Expr) (runtime.Value, error) {
	if depth, ok := in.depths[expr]; ok {
		if v, ok := in.env.GetAt(depth, name.Lexeme); ok {
			return v, nil
		}
		return nil, in.runtimeErr(name, "undefined variable '"+name.Lexeme+"'")
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, in.runtimeErr(name, "undefined variable '"+name.Lexeme+"'")
}

func (in *Interpreter) lookupDeclaredType(name lexer.Token, expr ast.Expr) (string, bool) {
	if depth, ok := in.depths[expr]; ok {
		return in.env.GetTypeAt(depth, name.Lexeme)
	}
	return in.globals.GetType(name.Lexeme)
}

// writeVariable assigns value at the location the resolver recorded for
// expr (an *ast.Assign node for "=", or the *ast.Variable operand of an
// increment/decrement), falling back to globals.
func (in *Interpreter) writeVariable(expr ast.Expr, name lexer.Token, value runtime.Value) error {
	if depth, ok := in.depths[expr]; ok {
		if err := in.env.AssignAt(depth, name.Lexeme, value); err != nil {
			return in.runtimeErr(name, err.Error())
		}
		return nil
	}
	if err := in.globals.Assign(name.Lexeme, value); err != nil {
		return in.runtimeErr(name, err.Error())
	}
	return nil
}

func (in *Interpreter) evalAssign(e *ast.Assign) (runtime.Value, error) {
	v, err := in.evalExpr(e.Value)
	if err != nil {
		return nil, err
	}
	if err := in.writeVariable(e, e.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (in *Interpreter) evalGet(e *ast.Get) (runtime.Value, error) {
	obj, err := in.evalExpr(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, in.runtimeErr(e.Name, "only instances have properties")
	}
	v, err := inst.Get(e.Name)
	if err != nil {
		return nil, in.runtimeErr(e.Name, err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalSet(e *ast.Set) (runtime.Value, error) {
	obj, err := in.evalExpr(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, in.runtimeErr(e.Name, "only instances have fields")
	}
	v, err := in.evalExpr(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, v)
	return v, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (runtime.Value, error) {
	calleeVal, err := in.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}
	callable, ok := calleeVal.(Callable)
	if !ok {
		return nil, in.runtimeErr(e.Paren, "can only call functions and classes")
	}
	if len(e.Args) != callable.Arity() {
		return nil, in.runtimeErr(e.Paren, fmt.Sprintf("expected %d arguments but got %d", callable.Arity(), len(e.Args)))
	}
	return callable.Call(in, e.Args, e.Paren)
}

func (in *Interpreter) evalLogical(e *ast.Logical) (runtime.Value, error) {
	leftV, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case lexer.OR:
		if runtime.Truthy(leftV) {
			return leftV, nil
		}
		return in.evalExpr(e.Right)

	case lexer.AND:
		if !runtime.Truthy(leftV) {
			return leftV, nil
		}
		return in.evalExpr(e.Right)

	case lexer.OR_OR:
		if runtime.Truthy(leftV) {
			return runtime.BooleanValue{Value: true}, nil
		}
		rightV, err := in.evalExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return runtime.BooleanValue{Value: runtime.Truthy(rightV)}, nil

	case lexer.AND_AND:
		if !runtime.Truthy(leftV) {
			return runtime.BooleanValue{Value: false}, nil
		}
		rightV, err := in.evalExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return runtime.BooleanValue{Value: runtime.Truthy(rightV)}, nil

	default:
		panic("evaluator: unhandled logical operator")
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary) (runtime.Value, error) {
	switch e.Op.Type {
	case lexer.MINUS:
		v, err := in.evalExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return in.negate(v, e.Op)

	case lexer.BANG:
		v, err := in.evalExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return runtime.BooleanValue{Value: !runtime.Truthy(v)}, nil

	case lexer.PRE_INCR, lexer.POST_INCR, lexer.PRE_DECR, lexer.POST_DECR:
		return in.incrDecr(e)

	default:
		panic("evaluator: unhandled unary operator")
	}
}

func (in *Interpreter) negate(v runtime.Value, op lexer.Token) (runtime.Value, error) {
	switch t := v.(type) {
	case runtime.IntegerValue:
		return runtime.NewInteger(t.Value.Neg()), nil
	case runtime.DecimalValue:
		return runtime.DecimalValue{Value: -t.Value}, nil
	case runtime.BigDecimalValue:
		return runtime.BigDecimalValue{Value: t.Value.Neg()}, nil
	default:
		return nil, in.runtimeErr(op, "unsupported operand type for unary '-'")
	}
}

// incrDecr implements prefix/postfix ++/--. The operand must be an
// assignable Variable; a literal operand and any other non-assignable
// expression get distinct diagnostics, matching the original's split
// between "cannot apply to a literal" and "not an assignable expression".
//
// A BigDecimal operand's result is computed as a DecimalValue rather than
// a BigDecimalValue: the original's equivalent branch yields a value
// mistagged "decimal" after incrementing a BigDecimal in place, and this
// reproduces that externally observable mistagging (typeOf and later
// arithmetic see "decimal") without needing a Value whose Type() lies
// about its own concrete representation.
func (in *Interpreter) incrDecr(e *ast.Unary) (runtime.Value, error) {
	varExpr, isVar := e.Operand.(*ast.Variable)

	current, err := in.evalExpr(e.Operand)
	if err != nil {
		return nil, err
	}

	isIncr := e.Op.Type == lexer.PRE_INCR || e.Op.Type == lexer.POST_INCR

	var next runtime.Value
	switch t := current.(type) {
	case runtime.IntegerValue:
		one := runtime.NewIntegerI32(1)
		if isIncr {
			next = runtime.NewInteger(t.Value.Add(one))
		} else {
			next = runtime.NewInteger(t.Value.Sub(one))
		}
	case runtime.DecimalValue:
		if isIncr {
			next = runtime.DecimalValue{Value: t.Value + 1}
		} else {
			next = runtime.DecimalValue{Value: t.Value - 1}
		}
	case runtime.BigDecimalValue:
		one := runtime.NewBigDecimalFromInt64(1)
		var bd runtime.BigDecimal
		if isIncr {
			bd = t.Value.Add(one)
		} else {
			bd = t.Value.Sub(one)
		}
		next = runtime.DecimalValue{Value: bd.Float64()}
	default:
		return nil, in.runtimeErr(e.Op, "unsupported operand type for '"+e.Op.Lexeme+"'")
	}

	if !isVar {
		if _, isLit := e.Operand.(*ast.Literal); isLit {
			return nil, in.runtimeErr(e.Op, "cannot apply '"+e.Op.Lexeme+"' to a literal")
		}
		return nil, in.runtimeErr(e.Op, "cannot apply '"+e.Op.Lexeme+"' to a non-assignable expression")
	}

	if err := in.writeVariable(e.Operand, varExpr.Name, next); err != nil {
		return nil, err
	}

	if e.Op.Type == lexer.PRE_INCR || e.Op.Type == lexer.PRE_DECR {
		return next, nil
	}
	return current, nil
}

func (in *Interpreter) evalBinary(e *ast.Binary) (runtime.Value, error) {
	leftV, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	rightV, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	if _, lok := leftV.(runtime.NilValue); lok {
		if _, rok := rightV.(runtime.NilValue); rok {
			switch e.Op.Type {
			case lexer.EQUAL_EQUAL:
				return runtime.BooleanValue{Value: true}, nil
			case lexer.BANG_EQUAL:
				return runtime.BooleanValue{Value: false}, nil
			}
		}
	}

	targetType := runtime.HigherPriority(leftV.Type(), rightV.Type())

	switch e.Op.Type {
	case lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL,
		lexer.BANG_EQUAL, lexer.EQUAL_EQUAL:
		pl, pr, lchg, rchg, ok := runtime.Promote(leftV, rightV)
		if !ok {
			return nil, in.runtimeErr(e.Op, "cannot compare '"+leftV.Type()+"' and '"+rightV.Type()+"'")
		}
		if lchg {
			in.warn(e.Op, "implicit conversion from '"+leftV.Type()+"' to '"+targetType+"'")
		}
		if rchg {
			in.warn(e.Op, "implicit conversion from '"+rightV.Type()+"' to '"+targetType+"'")
		}
		return in.compare(targetType, pl, pr, e.Op)

	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		lBool, lIsBool := leftV.(runtime.BooleanValue)
		rBool, rIsBool := rightV.(runtime.BooleanValue)
		if targetType == runtime.TagBoolean && lIsBool && rIsBool {
			in.warn(e.Op, "implicit conversion from 'boolean' to 'integer'")
			li := runtime.NewIntegerI32(boolToI32(lBool.Value))
			ri := runtime.NewIntegerI32(boolToI32(rBool.Value))
			return in.integerArith(e.Op, li, ri)
		}
		pl, pr, lchg, rchg, ok := runtime.Promote(leftV, rightV)
		if !ok {
			return nil, in.runtimeErr(e.Op, "unsupported operand types for '"+e.Op.Lexeme+"'")
		}
		if lchg {
			in.warn(e.Op, "implicit conversion from '"+leftV.Type()+"' to '"+targetType+"'")
		}
		if rchg {
			in.warn(e.Op, "implicit conversion from '"+rightV.Type()+"' to '"+targetType+"'")
		}
		return in.arith(targetType, e.Op, pl, pr)

	default:
		panic("evaluator: unhandled binary operator")
	}
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (in *Interpreter) compare(targetType string, pl, pr runtime.Value, op lexer.Token) (runtime.Value, error) {
	var cmp int
	switch targetType {
	case runtime.TagInteger:
		cmp = pl.(runtime.IntegerValue).Value.Cmp(pr.(runtime.IntegerValue).Value)
	case runtime.TagDecimal:
		cmp = cmpFloat(pl.(runtime.DecimalValue).Value, pr.(runtime.DecimalValue).Value)
	case runtime.TagBigDecimal:
		cmp = pl.(runtime.BigDecimalValue).Value.Cmp(pr.(runtime.BigDecimalValue).Value)
	case runtime.TagString:
		cmp = cmpString(pl.(runtime.StringValue).Value, pr.(runtime.StringValue).Value)
	case runtime.TagBoolean:
		cmp = cmpBool(pl.(runtime.BooleanValue).Value, pr.(runtime.BooleanValue).Value)
	default:
		return nil, in.runtimeErr(op, "cannot compare values of type '"+targetType+"'")
	}

	var result bool
	switch op.Type {
	case lexer.GREATER:
		result = cmp > 0
	case lexer.GREATER_EQUAL:
		result = cmp >= 0
	case lexer.LESS:
		result = cmp < 0
	case lexer.LESS_EQUAL:
		result = cmp <= 0
	case lexer.EQUAL_EQUAL:
		result = cmp == 0
	case lexer.BANG_EQUAL:
		result = cmp != 0
	}
	return runtime.BooleanValue{Value: result}, nil
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func (in *Interpreter) arith(targetType string, op lexer.Token, pl, pr runtime.Value) (runtime.Value, error) {
	switch targetType {
	case runtime.TagInteger:
		return in.integerArith(op, pl.(runtime.IntegerValue).Value, pr.(runtime.IntegerValue).Value)
	case runtime.TagDecimal:
		return in.decimalArith(op, pl.(runtime.DecimalValue).Value, pr.(runtime.DecimalValue).Value)
	case runtime.TagBigDecimal:
		return in.bigDecimalArith(op, pl.(runtime.BigDecimalValue).Value, pr.(runtime.BigDecimalValue).Value)
	case runtime.TagString:
		l := pl.(runtime.StringValue).Value
		r := pr.(runtime.StringValue).Value
		if op.Type == lexer.PLUS {
			return runtime.StringValue{Value: l + r}, nil
		}
		return nil, in.runtimeErr(op, "unsupported operand type for 'string' and '"+op.Lexeme+"'")
	default:
		return nil, in.runtimeErr(op, "unsupported operand types for '"+op.Lexeme+"'")
	}
}

func (in *Interpreter) integerArith(op lexer.Token, l, r runtime.Integer) (runtime.Value, error) {
	switch op.Type {
	case lexer.PLUS:
		return runtime.NewInteger(l.Add(r)), nil
	case lexer.MINUS:
		return runtime.NewInteger(l.Sub(r)), nil
	case lexer.STAR:
		return runtime.NewInteger(l.Mul(r)), nil
	case lexer.SLASH:
		q, ok := l.Div(r)
		if !ok {
			return nil, in.runtimeErr(op, "divide by zero error")
		}
		return runtime.NewInteger(q), nil
	case lexer.PERCENT:
		m, ok := l.Mod(r)
		if !ok {
			return nil, in.runtimeErr(op, "modulo by zero error")
		}
		return runtime.NewInteger(m), nil
	default:
		return nil, in.runtimeErr(op, "unsupported operand type for 'integer' and 'integer'")
	}
}

func (in *Interpreter) decimalArith(op lexer.Token, l, r float64) (runtime.Value, error) {
	switch op.Type {
	case lexer.PLUS:
		return runtime.DecimalValue{Value: l + r}, nil
	case lexer.MINUS:
		return runtime.DecimalValue{Value: l - r}, nil
	case lexer.STAR:
		return runtime.DecimalValue{Value: l * r}, nil
	case lexer.SLASH:
		if r == 0 {
			return nil, in.runtimeErr(op, "divide by zero error")
		}
		return runtime.DecimalValue{Value: l / r}, nil
	case lexer.PERCENT:
		if r == 0 {
			return nil, in.runtimeErr(op, "modulo by zero error")
		}
		return runtime.DecimalValue{Value: math.Mod(l, r)}, nil
	default:
		return nil, in.runtimeErr(op, "unsupported operand type for 'decimal' and 'decimal'")
	}
}

func (in *Interpreter) bigDecimalArith(op lexer.Token, l, r runtime.BigDecimal) (runtime.Value, error) {
	zero := runtime.NewBigDecimalFromInt64(0)
	switch op.Type {
	case lexer.PLUS:
		return runtime.BigDecimalValue{Value: l.Add(r)}, nil
	case lexer.MINUS:
		return runtime.BigDecimalValue{Value: l.Sub(r)}, nil
	case lexer.STAR:
		return runtime.BigDecimalValue{Value: l.Mul(r)}, nil
	case lexer.SLASH:
		if r.Equal(zero) {
			return nil, in.runtimeErr(op, "divide by zero error")
		}
		q, _ := l.Div(r)
		return runtime.BigDecimalValue{Value: q}, nil
	case lexer.PERCENT:
		if r.Equal(zero) {
			return nil, in.runtimeErr(op, "modulo by zero error")
		}
		m, _ := l.Mod(r)
		return runtime.BigDecimalValue{Value: m}, nil
	default:
		return nil, in.runtimeErr(op, "unsupported operand type for 'BigDecimal' and 'BigDecimal'")
	}
}
