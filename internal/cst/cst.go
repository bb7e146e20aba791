// Package cst defines the concrete parse tree produced by the parser.
//
// A concrete tree mirrors the grammar: every rule reduction becomes a Tree
// labelled with the rule name, and every named terminal becomes a Token.
// Anonymous punctuation and layout tokens are not kept.
package cst

import (
	"fmt"
	"strings"
)

// Pos is a source position
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is either a *Tree or a *Token
type Node interface {
	Position() Pos
	concreteNode()
}

// Tree is a rule node with ordered children
type Tree struct {
	Rule     string
	Children []Node
	Pos      Pos
}

func (t *Tree) Position() Pos { return t.Pos }
func (t *Tree) concreteNode() {}

// Token is a named terminal
type Token struct {
	Kind   string
	Text   string
	Line   int
	Column int
}

func (t *Token) Position() Pos { return Pos{Line: t.Line, Column: t.Column} }
func (t *Token) concreteNode() {}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Rules returns the distinct rule names used in the tree, in first-seen
// order of a depth-first walk.
func Rules(root Node) []string {
	seen := make(map[string]bool)
	var rules []string
	var walk func(Node)
	walk = func(n Node) {
		tree, ok := n.(*Tree)
		if !ok {
			return
		}
		if !seen[tree.Rule] {
			seen[tree.Rule] = true
			rules = append(rules, tree.Rule)
		}
		for _, child := range tree.Children {
			walk(child)
		}
	}
	walk(root)
	return rules
}

// Print returns an indented rendering of the tree for debugging
func Print(root Node) string {
	var sb strings.Builder
	printNode(&sb, root, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *Tree:
		sb.WriteString(prefix + n.Rule + "\n")
		for _, child := range n.Children {
			printNode(sb, child, indent+1)
		}
	case *Token:
		sb.WriteString(fmt.Sprintf("%s%s %q\n", prefix, n.Kind, n.Text))
	}
}
