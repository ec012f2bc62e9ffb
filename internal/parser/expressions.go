package parser

import (
	"github.com/Akarai77/Dharma/internal/ast"
	"github.com/Akarai77/Dharma/internal/lexer"
)

func (p *Parser) expression() ast.Expr { return p.assignment() }

// assignment := call ("=" | "+=" | "-=" | "*=" | "/=" | "%=") assignment
//             | logic_or
//
// Compound forms are desugared here so the evaluator only ever sees a
// plain "=" Assign/Set: "x += e" becomes Assign(x, "=", Binary(x, +, e)).
func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if !p.match(lexer.EQUAL, lexer.PLUS_EQUAL, lexer.MINUS_EQUAL,
		lexer.STAR_EQUAL, lexer.SLASH_EQUAL, lexer.PERCENT_EQUAL) {
		return expr
	}
	opTok := p.previous()
	value := p.assignment()

	switch target := expr.(type) {
	case *ast.Variable:
		if opTok.Type != lexer.EQUAL {
			value = &ast.Binary{
				Left:  &ast.Variable{Name: target.Name},
				Op:    compoundToBinaryOp(opTok),
				Right: value,
			}
		}
		return &ast.Assign{Name: target.Name, Op: equalToken(opTok), Value: value}

	case *ast.Get:
		if opTok.Type != lexer.EQUAL {
			value = &ast.Binary{
				Left:  &ast.Get{Object: target.Object, Name: target.Name},
				Op:    compoundToBinaryOp(opTok),
				Right: value,
			}
		}
		return &ast.Set{Object: target.Object, Name: target.Name, Value: value}

	default:
		panic(p.errorAt(opTok, "invalid assignment target"))
	}
}

// equalToken normalizes any compound-assignment operator token to a
// plain "=" token at the same position, for the desugared Assign node.
func equalToken(opTok lexer.Token) lexer.Token {
	if opTok.Type == lexer.EQUAL {
		return opTok
	}
	return lexer.Token{Type: lexer.EQUAL, Lexeme: "=", Line: opTok.Line, Col: opTok.Col}
}

// compoundToBinaryOp strips the trailing "=" off a compound-assignment
// operator token, producing the plain arithmetic operator token the
// desugared Binary node uses.
func compoundToBinaryOp(opTok lexer.Token) lexer.Token {
	var tt lexer.TokenType
	var lexeme string
	switch opTok.Type {
	case lexer.PLUS_EQUAL:
		tt, lexeme = lexer.PLUS, "+"
	case lexer.MINUS_EQUAL:
		tt, lexeme = lexer.MINUS, "-"
	case lexer.STAR_EQUAL:
		tt, lexeme = lexer.STAR, "*"
	case lexer.SLASH_EQUAL:
		tt, lexeme = lexer.SLASH, "/"
	case lexer.PERCENT_EQUAL:
		tt, lexeme = lexer.PERCENT, "%"
	}
	return lexer.Token{Type: tt, Lexeme: lexeme, Line: opTok.Line, Col: opTok.Col}
}

// logic_or := logic_and (("or"|"||") logic_and)*
func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(lexer.OR, lexer.OR_OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// logic_and := equality (("and"|"&&") equality)*
func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(lexer.AND, lexer.AND_AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// equality := comparison (("=="|"!=") comparison)*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(lexer.EQUAL_EQUAL, lexer.BANG_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison := term (("<"|"<="|">"|">=") term)*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(lexer.LESS, lexer.LESS_EQUAL, lexer.GREATER, lexer.GREATER_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// term := factor (("+"|"-") factor)*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// factor := unary (("*"|"/"|"%") unary)*
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(lexer.STAR, lexer.SLASH, lexer.PERCENT) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary := ("!"|"-"|"++"|"--") unary | call
//
// A prefix "++"/"--" is retagged from the lexer's undistinguished
// INCR/DECR to PRE_INCR/PRE_DECR.
func (p *Parser) unary() ast.Expr {
	if p.match(lexer.BANG, lexer.MINUS, lexer.INCR, lexer.DECR) {
		op := p.previous()
		switch op.Type {
		case lexer.INCR:
			op.Type = lexer.PRE_INCR
		case lexer.DECR:
			op.Type = lexer.PRE_DECR
		}
		operand := p.unary()
		return &ast.Unary{Op: op, Operand: operand}
	}
	return p.call()
}

// call := primary (("++"|"--") | "(" args? ")" | "." IDENT)*
//
// A trailing "++"/"--" is retagged to POST_INCR/POST_DECR.
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(lexer.LPAREN):
			expr = p.finishCall(expr)
		case p.match(lexer.DOT):
			name := p.consume(lexer.IDENTIFIER, "expected a property name after '.'")
			expr = &ast.Get{Object: expr, Name: name}
		case p.match(lexer.INCR):
			op := p.previous()
			op.Type = lexer.POST_INCR
			expr = &ast.Unary{Op: op, Operand: expr}
		case p.match(lexer.DECR):
			op := p.previous()
			op.Type = lexer.POST_DECR
			expr = &ast.Unary{Op: op, Operand: expr}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(lexer.RPAREN) {
		for {
			if len(args) >= maxArgs {
				panic(p.errorAt(p.peek(), "cannot have more than 255 arguments"))
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.consume(lexer.RPAREN, "expected ')' after arguments")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// primary := literal | IDENT | "(" expression ")" | "this"
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.TRUE, lexer.FALSE, lexer.NIL, lexer.INTEGER, lexer.DECIMAL, lexer.BIGDECIMAL, lexer.STRING):
		tok := p.previous()
		return &ast.Literal{Token: tok, Value: literalValue(tok)}
	case p.match(lexer.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(lexer.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(lexer.LPAREN):
		paren := p.previous()
		expr := p.expression()
		p.consume(lexer.RPAREN, "expected ')' after expression")
		return &ast.Grouping{Paren: paren, Expression: expr}
	default:
		panic(p.errorAt(p.peek(), "expected an expression"))
	}
}
