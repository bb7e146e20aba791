package lexer

import "fmt"

const tabWidth = 4

// Lexer scans contract source code and produces tokens. Indentation is
// turned into INDENT/DEDENT tokens and logical line ends into NEWLINE.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number

	indents     []int   // indentation stack, bottom is always 0
	pending     []Token // layout tokens queued for emission
	parenDepth  int     // newlines inside parentheses are ignored
	atLineStart bool
	lineHasText bool // a token has been emitted on the current logical line
	afterAt     bool // the previous token was '@'
	done        bool
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		column:      0,
		indents:     []int{0},
		atLineStart: true,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// newline consumes a '\n' and moves to the next line
func (l *Lexer) newline() {
	l.readChar()
	l.line++
	l.column = 1
}

// skipBlanks skips spaces, tabs and carriage returns on the current line
func (l *Lexer) skipBlanks() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment skips a '#' comment up to (not including) the end of line
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readIdentifier reads an identifier, keyword or type name
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// measureIndent consumes leading whitespace and returns its width
func (l *Lexer) measureIndent() int {
	width := 0
	for {
		switch l.ch {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		case '\r':
		default:
			return width
		}
		l.readChar()
	}
}

// indentation handles the start of a physical line. It skips blank and
// comment-only lines and queues INDENT/DEDENT tokens for the first line
// that carries code.
func (l *Lexer) indentation() {
	for {
		width := l.measureIndent()
		switch l.ch {
		case '#':
			l.skipComment()
			continue
		case '\n':
			l.newline()
			continue
		case 0:
			return
		}

		l.atLineStart = false
		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.pending = append(l.pending, l.layout(INDENT))
		case width < top:
			for width < l.indents[len(l.indents)-1] {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, l.layout(DEDENT))
			}
			if width != l.indents[len(l.indents)-1] {
				l.pending = append(l.pending, Token{Type: ILLEGAL, Literal: "inconsistent dedent", Line: l.line, Column: l.column})
			}
		}
		return
	}
}

func (l *Lexer) layout(tt TokenType) Token {
	return Token{Type: tt, Literal: "", Line: l.line, Column: l.column}
}

// finish queues the tokens that close the input: a final NEWLINE if the
// last line had code, one DEDENT per open indentation level and EOF.
func (l *Lexer) finish() {
	if l.lineHasText {
		l.pending = append(l.pending, l.layout(NEWLINE))
		l.lineHasText = false
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.pending = append(l.pending, l.layout(DEDENT))
	}
	l.pending = append(l.pending, l.layout(EOF))
	l.done = true
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for len(l.pending) == 0 {
		if l.done {
			return l.layout(EOF)
		}
		l.scan()
	}
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

// scan queues at least one token, or marks the input as finished
func (l *Lexer) scan() {
	if l.atLineStart && l.parenDepth == 0 {
		l.indentation()
		if len(l.pending) > 0 {
			return
		}
	}

	l.skipBlanks()
	if l.ch == '#' {
		l.skipComment()
	}

	line, col := l.line, l.column
	emit := func(tt TokenType, literal string) {
		l.pending = append(l.pending, Token{Type: tt, Literal: literal, Line: line, Column: col})
		l.lineHasText = true
		l.afterAt = tt == AT
	}

	switch l.ch {
	case 0:
		l.finish()
		return
	case '\n':
		l.newline()
		if l.parenDepth > 0 {
			return
		}
		if l.lineHasText {
			l.pending = append(l.pending, Token{Type: NEWLINE, Literal: "", Line: line, Column: col})
			l.lineHasText = false
		}
		l.atLineStart = true
		return
	case '(':
		l.parenDepth++
		emit(LPAREN, "(")
	case ')':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		emit(RPAREN, ")")
	case ',':
		emit(COMMA, ",")
	case ':':
		emit(COLON, ":")
	case '.':
		emit(DOT, ".")
	case '@':
		emit(AT, "@")
	case '=':
		emit(ASSIGN, "=")
	default:
		if isLetter(l.ch) {
			wasAt := l.afterAt
			ident := l.readIdentifier()
			if wasAt {
				emit(DECORATOR_NAME, ident)
			} else {
				emit(LookupIdent(ident), ident)
			}
			return // readIdentifier already advanced
		}
		emit(ILLEGAL, illegal(l.ch))
	}

	l.readChar()
}

// Tokenize returns all tokens from the input
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// illegal renders an unexpected byte, escaping anything outside printable ASCII
func illegal(ch byte) string {
	if ch < ' ' || ch > '~' {
		return fmt.Sprintf("\\x%02x", ch)
	}
	return string(ch)
}
