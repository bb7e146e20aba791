package cst

import (
	"testing"
)

func TestRulesFirstSeenOrder(t *testing.T) {
	root := &Tree{Rule: "module", Children: []Node{
		&Tree{Rule: "variable", Children: []Node{&Token{Kind: "NAME", Text: "x"}}},
		&Tree{Rule: "method", Children: []Node{
			&Tree{Rule: "body", Children: []Node{&Tree{Rule: "pass_stmt"}}},
		}},
		&Tree{Rule: "variable"},
	}}

	got := Rules(root)
	expected := []string{"module", "variable", "method", "body", "pass_stmt"}
	if len(got) != len(expected) {
		t.Fatalf("Rules() = %v, want %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Rules()[%d] = %q, want %q", i, got[i], expected[i])
		}
	}
}

func TestPrint(t *testing.T) {
	root := &Tree{Rule: "var", Children: []Node{
		&Token{Kind: "NAME", Text: "x"},
		&Token{Kind: "BASIC_TYPE", Text: "bool"},
	}}
	expected := "var\n  NAME \"x\"\n  BASIC_TYPE \"bool\"\n"
	if got := Print(root); got != expected {
		t.Errorf("Print() = %q, want %q", got, expected)
	}
}

func TestPositions(t *testing.T) {
	tok := &Token{Kind: "NAME", Text: "x", Line: 2, Column: 5}
	if tok.Position().String() != "2:5" {
		t.Errorf("token position = %s", tok.Position())
	}
	if tok.String() != `NAME("x")` {
		t.Errorf("token string = %s", tok)
	}
	tree := &Tree{Rule: "body", Pos: Pos{Line: 3, Column: 1}}
	if tree.Position() != (Pos{Line: 3, Column: 1}) {
		t.Errorf("tree position = %s", tree.Position())
	}
}
