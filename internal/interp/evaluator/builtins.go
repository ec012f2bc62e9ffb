package evaluator

import (
	"time"

	"github.com/Akarai77/Dharma/internal/ast"
	"github.com/Akarai77/Dharma/internal/interp/runtime"
	"github.com/Akarai77/Dharma/internal/lexer"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func registerBuiltins(globals *runtime.Environment) {
	globals.Define("clock", &NativeFunction{name: "clock", arity: 0, fn: nativeClock}, "function")
	globals.Define("typeOf", &NativeFunction{name: "typeOf", arity: 1, fn: nativeTypeOf}, "function")
	globals.Define("jsonGet", &NativeFunction{name: "jsonGet", arity: 2, fn: nativeJSONGet}, "function")
	globals.Define("jsonSet", &NativeFunction{name: "jsonSet", arity: 3, fn: nativeJSONSet}, "function")
}

// BuiltinNames lists every built-in registered by registerBuiltins, for
// the CLI's "karma builtins" debug subcommand. Kept here rather than
// hardcoded in cmd/karma so the two can't drift.
func BuiltinNames() []string {
	return []string{"clock", "typeOf", "jsonGet", "jsonSet"}
}

func nativeClock(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error) {
	return runtime.DecimalValue{Value: float64(time.Now().UnixNano()) / 1e9}, nil
}

// nativeTypeOf reports a bare identifier's declared type (composing
// "variable <dynamictype>" when the declaration is unannotated and the
// value isn't nil), falling back to the value's dynamic type for any
// other argument expression. Unlike the original, a nil argument
// reports plain "nil" rather than its placeholder joke string.
func nativeTypeOf(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error) {
	argExpr := args[0]
	v, err := in.evalExpr(argExpr)
	if err != nil {
		return nil, err
	}

	if varExpr, ok := argExpr.(*ast.Variable); ok {
		if declaredType, ok := in.lookupDeclaredType(varExpr.Name, varExpr); ok {
			if declaredType == "variable" && v.Type() != runtime.TagNil {
				return runtime.StringValue{Value: declaredType + " " + v.Type()}, nil
			}
			return runtime.StringValue{Value: declaredType}, nil
		}
	}

	if v.Type() == runtime.TagNil {
		return runtime.StringValue{Value: "nil"}, nil
	}
	return runtime.StringValue{Value: v.Type()}, nil
}

func nativeJSONGet(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error) {
	jsonV, err := in.evalExpr(args[0])
	if err != nil {
		return nil, err
	}
	pathV, err := in.evalExpr(args[1])
	if err != nil {
		return nil, err
	}
	jsonStr, ok1 := jsonV.(runtime.StringValue)
	pathStr, ok2 := pathV.(runtime.StringValue)
	if !ok1 || !ok2 {
		return nil, in.runtimeErr(paren, "jsonGet expects (string, string)")
	}
	return gjsonToValue(gjson.Get(jsonStr.Value, pathStr.Value)), nil
}

func gjsonToValue(r gjson.Result) runtime.Value {
	switch r.Type {
	case gjson.String:
		return runtime.StringValue{Value: r.Str}
	case gjson.Number:
		return runtime.DecimalValue{Value: r.Num}
	case gjson.True:
		return runtime.BooleanValue{Value: true}
	case gjson.False:
		return runtime.BooleanValue{Value: false}
	case gjson.Null:
		return runtime.Nil
	default:
		if !r.Exists() {
			return runtime.Nil
		}
		return runtime.StringValue{Value: r.Raw}
	}
}

// nativeJSONSet writes value at path in the given JSON document, using
// SetRaw for Integer/BigDecimal so arbitrary-precision values survive
// the round trip rather than being narrowed through float64.
func nativeJSONSet(in *Interpreter, args []ast.Expr, paren lexer.Token) (runtime.Value, error) {
	jsonV, err := in.evalExpr(args[0])
	if err != nil {
		return nil, err
	}
	pathV, err := in.evalExpr(args[1])
	if err != nil {
		return nil, err
	}
	valV, err := in.evalExpr(args[2])
	if err != nil {
		return nil, err
	}

	jsonStr, ok := jsonV.(runtime.StringValue)
	if !ok {
		return nil, in.runtimeErr(paren, "jsonSet expects a string document")
	}
	pathStr, ok := pathV.(runtime.StringValue)
	if !ok {
		return nil, in.runtimeErr(paren, "jsonSet expects a string path")
	}

	var out string
	switch t := valV.(type) {
	case runtime.StringValue:
		out, err = sjson.Set(jsonStr.Value, pathStr.Value, t.Value)
	case runtime.BooleanValue:
		out, err = sjson.Set(jsonStr.Value, pathStr.Value, t.Value)
	case runtime.DecimalValue:
		out, err = sjson.Set(jsonStr.Value, pathStr.Value, t.Value)
	case runtime.IntegerValue:
		out, err = sjson.SetRaw(jsonStr.Value, pathStr.Value, t.Value.String())
	case runtime.BigDecimalValue:
		out, err = sjson.SetRaw(jsonStr.Value, pathStr.Value, t.Value.String())
	case runtime.NilValue:
		out, err = sjson.SetRaw(jsonStr.Value, pathStr.Value, "null")
	default:
		return nil, in.runtimeErr(paren, "jsonSet does not support values of type '"+t.Type()+"'")
	}
	if err != nil {
		return nil, in.runtimeErr(paren, err.Error())
	}
	return runtime.StringValue{Value: out}, nil
}
