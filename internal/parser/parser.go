package parser

import (
	"github.com/lhaig/vyc/internal/cst"
	"github.com/lhaig/vyc/internal/lexer"
)

// Grammar rule names. These are the labels of the concrete tree and the
// keys of the lowering registry.
const (
	RuleModule     = "module"
	RuleVariable   = "variable"
	RuleWithGetter = "with_getter"
	RuleStorage    = "storage"
	RuleAbiType    = "abi_type"
	RuleMethod     = "method"
	RuleDecorators = "decorators"
	RuleDecorator  = "decorator"
	RuleMethodType = "method_type"
	RuleParameters = "parameters"
	RuleParameter  = "parameter"
	RuleBody       = "body"
	RulePassStmt   = "pass_stmt"
	RuleExprStmt   = "expr_stmt"
	RuleVar        = "var"
	RuleAttribute  = "attribute"
)

// Rules returns every rule name the parser can produce
func Rules() []string {
	return []string{
		RuleModule,
		RuleVariable,
		RuleWithGetter,
		RuleStorage,
		RuleAbiType,
		RuleMethod,
		RuleDecorators,
		RuleDecorator,
		RuleMethodType,
		RuleParameters,
		RuleParameter,
		RuleBody,
		RulePassStmt,
		RuleExprStmt,
		RuleVar,
		RuleAttribute,
	}
}

// receiver is the name the first method parameter must carry
const receiver = "self"

// New creates a new parser
func New(source string) *Parser {
	l := lexer.New(source)
	return &Parser{
		tokens: l.Tokenize(),
		pos:    0,
	}
}

// Parse parses source text into a concrete tree rooted at the module rule
func Parse(source string) (*cst.Tree, error) {
	return New(source).Parse()
}

// Parse parses the token stream into a concrete tree
func (p *Parser) Parse() (*cst.Tree, error) {
	mod := p.parseModule()
	if p.err != nil {
		return nil, p.err
	}
	return mod, nil
}

func tree(rule string, tok lexer.Token, children ...cst.Node) *cst.Tree {
	return &cst.Tree{
		Rule:     rule,
		Children: children,
		Pos:      cst.Pos{Line: tok.Line, Column: tok.Column},
	}
}

func leaf(tok lexer.Token) *cst.Token {
	return &cst.Token{
		Kind:   tok.Type.String(),
		Text:   tok.Literal,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseModule parses: (variable | method | NEWLINE)*
func (p *Parser) parseModule() *cst.Tree {
	mod := tree(RuleModule, p.current())
	for !p.failed() && !p.check(lexer.EOF) {
		switch p.current().Type {
		case lexer.NEWLINE:
			p.advance()
		case lexer.AT, lexer.DEF:
			mod.Children = append(mod.Children, p.parseMethod())
		case lexer.NAME:
			mod.Children = append(mod.Children, p.parseVariable())
		default:
			p.errorf(p.current(), "unexpected %s at top level", describe(p.current()))
		}
	}
	return mod
}

// parseVariable parses: NAME [":" (public(storage) | storage)] NEWLINE
func (p *Parser) parseVariable() *cst.Tree {
	name := p.expect(lexer.NAME)
	if !p.match(lexer.COLON) {
		p.expect(lexer.NEWLINE)
		return tree(RuleVariable, name, leaf(name))
	}

	if p.check(lexer.PUBLIC) {
		p.advance()
		p.expect(lexer.LPAREN)
		storage := p.parseStorage()
		p.expect(lexer.RPAREN)
		p.expect(lexer.NEWLINE)
		getter := tree(RuleWithGetter, name, leaf(name), storage)
		return tree(RuleVariable, name, getter)
	}

	storage := p.parseStorage()
	p.expect(lexer.NEWLINE)
	return tree(RuleVariable, name, leaf(name), storage)
}

// parseStorage parses a storage location type
func (p *Parser) parseStorage() *cst.Tree {
	tok := p.current()
	return tree(RuleStorage, tok, p.parseAbiType())
}

// parseAbiType parses: BASIC_TYPE
func (p *Parser) parseAbiType() *cst.Tree {
	tok := p.current()
	if tok.Type == lexer.NAME {
		p.errorf(tok, "unknown type %q", tok.Literal)
	}
	typ := p.expect(lexer.BASIC_TYPE)
	return tree(RuleAbiType, tok, leaf(typ))
}

// parseMethod parses: [decorators] method_type ":" body
func (p *Parser) parseMethod() *cst.Tree {
	method := tree(RuleMethod, p.current())
	if p.check(lexer.AT) {
		method.Children = append(method.Children, p.parseDecorators())
	}
	method.Children = append(method.Children, p.parseMethodType())
	p.expect(lexer.COLON)
	method.Children = append(method.Children, p.parseBody())
	return method
}

// parseDecorators parses one or more: "@" DECORATOR_NAME NEWLINE
func (p *Parser) parseDecorators() *cst.Tree {
	group := tree(RuleDecorators, p.current())
	for p.check(lexer.AT) {
		at := p.advance()
		name := p.expect(lexer.DECORATOR_NAME)
		if !p.failed() && !lexer.IsDecorator(name.Literal) {
			p.errorf(name, "unknown decorator %q", name.Literal)
		}
		p.expect(lexer.NEWLINE)
		group.Children = append(group.Children, tree(RuleDecorator, at, leaf(name)))
	}
	return group
}

// parseMethodType parses: "def" NAME "(" "self" ["," parameters] ")"
func (p *Parser) parseMethodType() *cst.Tree {
	def := p.expect(lexer.DEF)
	name := p.expect(lexer.NAME)
	sig := tree(RuleMethodType, def, leaf(name))

	p.expect(lexer.LPAREN)
	self := p.current()
	if !p.failed() && (self.Type != lexer.NAME || self.Literal != receiver) {
		p.errorf(self, "expected '%s' as first parameter of %q, got %s", receiver, name.Literal, describe(self))
	}
	p.advance()
	if p.match(lexer.COMMA) {
		sig.Children = append(sig.Children, p.parseParameters())
	}
	p.expect(lexer.RPAREN)
	return sig
}

// parseParameters parses: parameter ("," parameter)*
func (p *Parser) parseParameters() *cst.Tree {
	group := tree(RuleParameters, p.current(), p.parseParameter())
	for p.match(lexer.COMMA) {
		group.Children = append(group.Children, p.parseParameter())
	}
	return group
}

// parseParameter parses: NAME [":" abi_type]
func (p *Parser) parseParameter() *cst.Tree {
	name := p.expect(lexer.NAME)
	param := tree(RuleParameter, name, leaf(name))
	if p.match(lexer.COLON) {
		param.Children = append(param.Children, p.parseAbiType())
	}
	return param
}

// parseBody parses: NEWLINE INDENT stmt+ DEDENT
func (p *Parser) parseBody() *cst.Tree {
	p.expect(lexer.NEWLINE)
	indent := p.expect(lexer.INDENT)
	body := tree(RuleBody, indent)
	for !p.failed() && !p.check(lexer.DEDENT) && !p.check(lexer.EOF) {
		body.Children = append(body.Children, p.parseStatement())
	}
	p.expect(lexer.DEDENT)
	return body
}

// parseStatement parses: pass_stmt | expr_stmt
func (p *Parser) parseStatement() *cst.Tree {
	tok := p.current()
	switch tok.Type {
	case lexer.PASS:
		p.advance()
		p.expect(lexer.NEWLINE)
		return tree(RulePassStmt, tok)
	case lexer.NAME:
		target := p.parseTarget()
		p.expect(lexer.ASSIGN)
		value := p.parseExpr()
		p.expect(lexer.NEWLINE)
		return tree(RuleExprStmt, tok, target, value)
	default:
		p.errorf(tok, "expected statement, got %s", describe(tok))
		return tree(RulePassStmt, tok)
	}
}

// parseTarget parses an assignment target: an annotated var or an expr
func (p *Parser) parseTarget() cst.Node {
	name := p.expect(lexer.NAME)
	if p.match(lexer.COLON) {
		typ := p.expect(lexer.BASIC_TYPE)
		return tree(RuleVar, name, leaf(name), leaf(typ))
	}
	return p.parseTrailers(tree(RuleVar, name, leaf(name)))
}

// parseExpr parses: var ("." NAME)*
func (p *Parser) parseExpr() cst.Node {
	name := p.expect(lexer.NAME)
	return p.parseTrailers(tree(RuleVar, name, leaf(name)))
}

func (p *Parser) parseTrailers(base *cst.Tree) cst.Node {
	node := base
	for p.match(lexer.DOT) {
		prop := p.expect(lexer.NAME)
		node = &cst.Tree{
			Rule:     RuleAttribute,
			Children: []cst.Node{node, leaf(prop)},
			Pos:      base.Pos,
		}
	}
	return node
}
