package lexer

import (
	"testing"
)

func tokenTypes(input string) []TokenType {
	var types []TokenType
	for _, tok := range New(input).Tokenize() {
		types = append(types, tok.Type)
	}
	return types
}

func TestNextToken_Types(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []TokenType{EOF},
		},
		{
			name:     "punctuation",
			input:    "( ) , : . @ =",
			expected: []TokenType{LPAREN, RPAREN, COMMA, COLON, DOT, AT, ASSIGN, NEWLINE, EOF},
		},
		{
			name:     "keywords and types",
			input:    "def pass public self uint256 address bool balance",
			expected: []TokenType{DEF, PASS, PUBLIC, NAME, BASIC_TYPE, BASIC_TYPE, BASIC_TYPE, NAME, NEWLINE, EOF},
		},
		{
			name:     "decorators",
			input:    "@public\n@payable\n",
			expected: []TokenType{AT, DECORATOR_NAME, NEWLINE, AT, DECORATOR_NAME, NEWLINE, EOF},
		},
		{
			name:  "indented body with blank and comment lines",
			input: "def f(self):\n    pass\n\n    # comment\nx: bool\n",
			expected: []TokenType{
				DEF, NAME, LPAREN, NAME, RPAREN, COLON, NEWLINE,
				INDENT, PASS, NEWLINE,
				DEDENT, NAME, COLON, BASIC_TYPE, NEWLINE,
				EOF,
			},
		},
		{
			name:  "newlines inside parentheses are ignored",
			input: "def f(self,\n      x: bool):\n    pass\n",
			expected: []TokenType{
				DEF, NAME, LPAREN, NAME, COMMA, NAME, COLON, BASIC_TYPE, RPAREN, COLON, NEWLINE,
				INDENT, PASS, NEWLINE,
				DEDENT, EOF,
			},
		},
		{
			name:     "tab indentation",
			input:    "def f(self):\n\tpass",
			expected: []TokenType{DEF, NAME, LPAREN, NAME, RPAREN, COLON, NEWLINE, INDENT, PASS, NEWLINE, DEDENT, EOF},
		},
		{
			name:     "trailing comment",
			input:    "x: bool # flag\n",
			expected: []TokenType{NAME, COLON, BASIC_TYPE, NEWLINE, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenTypes(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("wrong token count. expected=%v, got=%v", tt.expected, got)
			}
			for i, expectedType := range tt.expected {
				if got[i] != expectedType {
					t.Errorf("token[%d] - wrong type. expected=%q, got=%q", i, expectedType, got[i])
				}
			}
		})
	}
}

func TestNextToken_Positions(t *testing.T) {
	input := "balance: uint256\n@public\n"
	expected := []struct {
		typ     TokenType
		literal string
		line    int
		column  int
	}{
		{NAME, "balance", 1, 1},
		{COLON, ":", 1, 8},
		{BASIC_TYPE, "uint256", 1, 10},
		{NEWLINE, "", 1, 17},
		{AT, "@", 2, 1},
		{DECORATOR_NAME, "public", 2, 2},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ || tok.Literal != exp.literal {
			t.Fatalf("token[%d] - expected %s %q, got %s %q", i, exp.typ, exp.literal, tok.Type, tok.Literal)
		}
		if tok.Line != exp.line || tok.Column != exp.column {
			t.Errorf("token[%d] %q - expected position %d:%d, got %d:%d",
				i, tok.Literal, exp.line, exp.column, tok.Line, tok.Column)
		}
	}
}

func TestNextToken_Illegal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
	}{
		{"digit", "x = 1\n", "1"},
		{"non-ASCII byte", "x = \xff\n", `\xff`},
		{"control byte", "x = \x01\n", `\x01`},
		{"inconsistent dedent", "def f(self):\n    pass\n  pass\n", "inconsistent dedent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, tok := range New(tt.input).Tokenize() {
				if tok.Type == ILLEGAL {
					found = true
					if tok.Literal != tt.literal {
						t.Errorf("expected literal %q, got %q", tt.literal, tok.Literal)
					}
					break
				}
			}
			if !found {
				t.Error("expected an ILLEGAL token")
			}
		})
	}
}

func TestNextToken_AfterEOF(t *testing.T) {
	l := New("x")
	l.Tokenize()
	if tok := l.NextToken(); tok.Type != EOF {
		t.Errorf("expected EOF after end of input, got %s", tok.Type)
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected TokenType
	}{
		{"def", DEF},
		{"pass", PASS},
		{"public", PUBLIC},
		{"int128", BASIC_TYPE},
		{"bytes32", BASIC_TYPE},
		{"decimal", BASIC_TYPE},
		{"owner", NAME},
		{"payable", NAME},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.expected {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.expected)
		}
	}

	if !IsDecorator("nonreentrant") || IsDecorator("frozen") {
		t.Error("IsDecorator does not match the decorator list")
	}
}
