package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Layout
	NEWLINE
	INDENT
	DEDENT

	// Named terminals
	NAME           // balance, amount, self
	BASIC_TYPE     // uint256, address
	DECORATOR_NAME // public, constant (only directly after '@')

	// Keywords
	DEF
	PASS
	PUBLIC

	// Delimiters
	LPAREN // (
	RPAREN // )
	COMMA  // ,
	COLON  // :
	DOT    // .
	AT     // @
	ASSIGN // =
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case NEWLINE:
		return "NEWLINE"
	case INDENT:
		return "INDENT"
	case DEDENT:
		return "DEDENT"
	case NAME:
		return "NAME"
	case BASIC_TYPE:
		return "BASIC_TYPE"
	case DECORATOR_NAME:
		return "DECORATOR_NAME"
	case DEF:
		return "def"
	case PASS:
		return "pass"
	case PUBLIC:
		return "public"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case COMMA:
		return ","
	case COLON:
		return ":"
	case DOT:
		return "."
	case AT:
		return "@"
	case ASSIGN:
		return "="
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Named reports whether tokens of this type survive into the concrete
// parse tree. Punctuation, keywords and layout tokens are anonymous.
func (t TokenType) Named() bool {
	return t == NAME || t == BASIC_TYPE || t == DECORATOR_NAME
}

var keywords = map[string]TokenType{
	"def":    DEF,
	"pass":   PASS,
	"public": PUBLIC,
}

// BasicTypes lists the built-in value types the language recognises.
var BasicTypes = []string{
	"uint256",
	"int128",
	"address",
	"bool",
	"bytes32",
	"decimal",
}

var basicTypes = func() map[string]bool {
	m := make(map[string]bool, len(BasicTypes))
	for _, name := range BasicTypes {
		m[name] = true
	}
	return m
}()

// Decorators lists the names accepted after '@'.
var Decorators = []string{
	"public",
	"private",
	"constant",
	"payable",
	"nonreentrant",
}

var decorators = func() map[string]bool {
	m := make(map[string]bool, len(Decorators))
	for _, name := range Decorators {
		m[name] = true
	}
	return m
}()

// LookupIdent checks if an identifier is a keyword or basic type name
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if basicTypes[ident] {
		return BASIC_TYPE
	}
	return NAME
}

// IsDecorator reports whether name is a known decorator
func IsDecorator(name string) bool {
	return decorators[name]
}
