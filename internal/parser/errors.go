package parser

import (
	"fmt"

	"github.com/lhaig/vyc/internal/diagnostic"
	"github.com/lhaig/vyc/internal/lexer"
)

// Parser holds the parser state. The first error is sticky: once set, every
// helper becomes a no-op and Parse returns it.
type Parser struct {
	tokens []lexer.Token
	pos    int
	err    error
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise records a syntax error
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if p.err != nil {
		return tok
	}
	if tok.Type != tt {
		p.errorf(tok, "expected %s, got %s", tt, describe(tok))
		return tok
	}
	return p.advance()
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.err == nil && p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// failed reports whether a syntax error has been recorded
func (p *Parser) failed() bool {
	return p.err != nil
}

// errorf records the first syntax error at tok
func (p *Parser) errorf(tok lexer.Token, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = &diagnostic.SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// describe renders a token for error messages
func describe(tok lexer.Token) string {
	switch {
	case tok.Type == lexer.ILLEGAL:
		return fmt.Sprintf("illegal input %q", tok.Literal)
	case tok.Type.Named():
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	case tok.Type == lexer.NEWLINE || tok.Type == lexer.INDENT || tok.Type == lexer.DEDENT || tok.Type == lexer.EOF:
		return tok.Type.String()
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}
