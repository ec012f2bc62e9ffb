package parser

import "github.com/Akarai77/Dharma/internal/lexer"

// synchronize discards tokens until it reaches a plausible statement
// boundary: just past a ";", or just before a token that starts a new
// declaration. Used after a ParseError so one bad declaration doesn't
// cascade into spurious errors for the rest of the file.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.TYPE, lexer.FUN, lexer.CLASS, lexer.IF, lexer.WHILE,
			lexer.FOR, lexer.RETURN, lexer.PRINT, lexer.BREAK, lexer.CONTINUE:
			return
		}
		p.advance()
	}
}
