package parser

import (
	"strconv"

	"github.com/Akarai77/Dharma/internal/ast"
	"github.com/Akarai77/Dharma/internal/interp/runtime"
	"github.com/Akarai77/Dharma/internal/lexer"
)

// declaration := varDecl | funcDecl | classDecl | statement
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.check(lexer.TYPE):
		return p.varDeclaration()
	case p.match(lexer.FUN):
		return p.function(ast.FuncPlain)
	case p.match(lexer.CLASS):
		return p.classDeclaration()
	default:
		return p.statement()
	}
}

// normalizeType maps a declared-type keyword's lexeme to the canonical
// tag used everywhere else (environment bindings, runtime value tags):
// "var" → "variable", "int" → "integer", everything else unchanged.
func normalizeType(lexeme string) string {
	switch lexeme {
	case "var":
		return "variable"
	case "int":
		return "integer"
	default:
		return lexeme
	}
}

// varDecl := TYPE IDENT (":" TYPE)? ("=" expression)? ";"
//
// The leading TYPE is the declaration's actual declared type (folded
// through normalizeType). An optional ":" TYPE clause additionally
// names a fold target used only to coerce a literal initializer at
// parse time — legal only when the leading type is "var" and the
// clause names a different, concrete type; combining a concrete
// leading type with any ":" clause is always an error (redundant if
// the same type, conflicting if not), and "var x : var" is forbidden
// outright.
func (p *Parser) varDeclaration() ast.Stmt {
	leadTok := p.consume(lexer.TYPE, "expected a type")
	declaredType := normalizeType(leadTok.Lexeme)

	name := p.consume(lexer.IDENTIFIER, "expected variable name")

	foldTarget := ""
	if declaredType != "variable" {
		foldTarget = declaredType
	}

	if p.match(lexer.COLON) {
		annTok := p.consume(lexer.TYPE, "expected a type after ':'")
		annType := normalizeType(annTok.Lexeme)

		switch {
		case declaredType != "variable" && annType == declaredType:
			panic(p.errorAt(annTok, "redundant type annotation"))
		case declaredType != "variable" && annType != declaredType:
			panic(p.errorAt(annTok, "conflicting type annotation"))
		case declaredType == "variable" && annType == "variable":
			panic(p.errorAt(annTok, "'var x : var' is forbidden"))
		default:
			foldTarget = annType
		}
	}

	var initializer ast.Expr
	if p.match(lexer.EQUAL) {
		initializer = p.expressionFoldedTo(foldTarget)
	}

	p.consumeSemicolon()

	return &ast.Var{Name: name, TypeName: declaredType, Initializer: initializer}
}

// function parses `"fun" IDENT "(" (TYPE IDENT ("," TYPE IDENT)*)? ")"
// ("->" TYPE)? block`. kind distinguishes a free function from a
// method; methods named "init" are retagged to FuncInitializer by the
// caller (classDeclaration).
func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(lexer.IDENTIFIER, "expected a function name")
	p.consume(lexer.LPAREN, "expected '(' after function name")

	var params []*ast.Var
	if !p.check(lexer.RPAREN) {
		for {
			if len(params) >= maxArgs {
				panic(p.errorAt(p.peek(), "cannot have more than 255 parameters"))
			}
			pType := p.consume(lexer.TYPE, "expected a parameter type")
			pName := p.consume(lexer.IDENTIFIER, "expected a parameter name")
			params = append(params, &ast.Var{Name: pName, TypeName: normalizeType(pType.Lexeme)})
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RPAREN, "expected ')' after parameters")

	returnType := "variable"
	if p.match(lexer.ARROW) {
		rt := p.consume(lexer.TYPE, "expected a return type after '->'")
		returnType = normalizeType(rt.Lexeme)
	}

	p.consume(lexer.LBRACE, "expected '{' before function body")
	p.returnTypeStack = append(p.returnTypeStack, returnType)
	body := p.blockStatements()
	p.returnTypeStack = p.returnTypeStack[:len(p.returnTypeStack)-1]

	return &ast.Function{Name: name, Kind: kind, Params: params, Body: body, ReturnType: returnType}
}

// classDecl := "class" IDENT ("extends" IDENT)? "{" funcDecl* "}"
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "expected a class name")

	var superclass *ast.Variable
	if p.match(lexer.EXTENDS) {
		superName := p.consume(lexer.IDENTIFIER, "expected a superclass name")
		superclass = &ast.Variable{Name: superName}
	}

	p.consume(lexer.LBRACE, "expected '{' before class body")

	var methods []*ast.Function
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		p.consume(lexer.FUN, "expected a method declaration")
		kind := ast.FuncMethod
		fn := p.function(kind)
		if fn.Name.Lexeme == "init" {
			fn.Kind = ast.FuncInitializer
		}
		methods = append(methods, fn)
	}
	p.consume(lexer.RBRACE, "expected '}' after class body")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

// expressionFoldedTo parses a full expression and, when the result is
// a bare Literal whose dynamic type differs from target, attempts the
// conversion-table coercion described by spec.md's type-annotation
// folding. target == "" (a "var" leading type with no ":" clause)
// means no folding is attempted.
func (p *Parser) expressionFoldedTo(target string) ast.Expr {
	startTok := p.peek()
	expr := p.expression()
	if target == "" {
		return expr
	}
	lit, ok := expr.(*ast.Literal)
	if !ok {
		return expr
	}
	if lit.Value.Type() == target {
		return lit
	}
	converted, _, ok := runtime.ConvertTo(lit.Value, target)
	if !ok {
		panic(p.errorAt(startTok, "cannot convert '"+lit.Value.Type()+"' to '"+target+"'"))
	}
	lit.Value = converted
	return lit
}

// literalValue materializes the runtime.Value carried by a just-scanned
// literal token.
func literalValue(tok lexer.Token) runtime.Value {
	switch tok.Type {
	case lexer.INTEGER:
		return runtime.NewInteger(runtime.NewIntegerFromString(tok.Literal))
	case lexer.DECIMAL:
		f, _ := strconv.ParseFloat(tok.Literal, 64)
		return runtime.DecimalValue{Value: f}
	case lexer.BIGDECIMAL:
		bd, _ := runtime.NewBigDecimalFromString(tok.Literal)
		return runtime.BigDecimalValue{Value: bd}
	case lexer.STRING:
		return runtime.StringValue{Value: tok.Literal}
	case lexer.TRUE:
		return runtime.BooleanValue{Value: true}
	case lexer.FALSE:
		return runtime.BooleanValue{Value: false}
	default: // lexer.NIL
		return runtime.Nil
	}
}
