package parser

import (
	"github.com/Akarai77/Dharma/internal/ast"
	"github.com/Akarai77/Dharma/internal/lexer"
)

// statement := exprStmt | print | if | while | for | return | block
//            | break | continue
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.PRINT):
		return p.printStatement()
	case p.match(lexer.IF):
		return p.ifStatement()
	case p.match(lexer.WHILE):
		return p.whileStatement()
	case p.match(lexer.FOR):
		return p.forStatement()
	case p.match(lexer.RETURN):
		return p.returnStatement()
	case p.match(lexer.BREAK):
		return p.breakStatement()
	case p.match(lexer.CONTINUE):
		return p.continueStatement()
	case p.check(lexer.LBRACE):
		brace := p.advance()
		return &ast.Block{Brace: brace, Statements: p.blockStatements()}
	default:
		return p.exprStatement()
	}
}

func (p *Parser) exprStatement() ast.Stmt {
	expr := p.expression()
	p.consumeSemicolon()
	return &ast.ExprStmt{Expression: expr}
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	expr := p.expression()
	p.consumeSemicolon()
	return &ast.Print{Keyword: keyword, Expression: expr}
}

// blockStatements consumes declarations until the matching "}",
// which it also consumes.
func (p *Parser) blockStatements() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(lexer.RBRACE, "expected '}' after block")
	return statements
}

// if := "if" "(" expr ")" stmt ("elif" "(" expr ")" stmt)* ("else" stmt)?
func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(lexer.LPAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(lexer.RPAREN, "expected ')' after condition")
	then := p.statement()

	stmt := &ast.If{Keyword: keyword, Cond: cond, Then: then}

	for p.match(lexer.ELIF) {
		p.consume(lexer.LPAREN, "expected '(' after 'elif'")
		elifCond := p.expression()
		p.consume(lexer.RPAREN, "expected ')' after condition")
		elifThen := p.statement()
		stmt.ElifConds = append(stmt.ElifConds, elifCond)
		stmt.ElifThens = append(stmt.ElifThens, elifThen)
	}

	if p.match(lexer.ELSE) {
		stmt.Else = p.statement()
	}

	return stmt
}

func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(lexer.LPAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(lexer.RPAREN, "expected ')' after condition")
	body := p.statement()
	return &ast.While{Keyword: keyword, Cond: cond, Body: body}
}

// for := "for" "(" (varDecl | exprStmt | ";") expr? ";" expr? ")" stmt
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(lexer.LPAREN, "expected '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		init = nil
	case p.check(lexer.TYPE):
		init = p.varDeclaration()
	default:
		init = p.exprStatement()
	}

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expected ';' after loop condition")

	var step ast.Expr
	if !p.check(lexer.RPAREN) {
		step = p.expression()
	}
	p.consume(lexer.RPAREN, "expected ')' after for clauses")

	body := p.statement()

	return &ast.For{Keyword: keyword, Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consumeSemicolon()
	return &ast.Return{Keyword: keyword, Value: value, ReturnType: p.currentReturnType()}
}

func (p *Parser) breakStatement() ast.Stmt {
	keyword := p.previous()
	p.consumeSemicolon()
	return &ast.Break{Keyword: keyword}
}

func (p *Parser) continueStatement() ast.Stmt {
	keyword := p.previous()
	p.consumeSemicolon()
	return &ast.Continue{Keyword: keyword}
}
