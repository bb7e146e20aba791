// Package lower turns a concrete parse tree into the typed AST.
//
// Lowering is a bottom-up reduction: the children of every rule node are
// lowered first, then the rule's constructor from the node registry builds
// the AST node from them. Grouping rules survive as ast.Raw values until the
// parent constructor consumes them. The result is re-checked by Validate.
package lower

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/cst"
	"github.com/lhaig/vyc/internal/diagnostic"
)

// Lower converts a concrete tree rooted at the module rule into a module
// AST that contains no concrete fragments.
func Lower(root cst.Node) (*ast.Module, error) {
	node, err := reduce(root)
	if err != nil {
		return nil, err
	}
	mod, ok := node.(*ast.Module)
	if !ok {
		line, col := node.Pos()
		rule := ""
		if tree, isTree := root.(*cst.Tree); isTree {
			rule = tree.Rule
		}
		return nil, &diagnostic.ShapeMismatchError{
			Kind:      ast.KindModule.String(),
			Rule:      rule,
			Reason:    "root did not lower to a module",
			Remainder: []string{ast.Describe(node)},
			Line:      line,
			Column:    col,
		}
	}
	if err := Validate(mod); err != nil {
		return nil, err
	}
	log.Debug("Lowered module", "methods", len(mod.Methods), "variables", len(mod.Variables))
	return mod, nil
}

// reduce lowers one concrete node after lowering its children in order
func reduce(n cst.Node) (ast.Node, error) {
	switch n := n.(type) {
	case *cst.Token:
		return &ast.Raw{Token: n, Line: n.Line, Column: n.Column}, nil

	case *cst.Tree:
		children := make([]ast.Node, 0, len(n.Children))
		for _, child := range n.Children {
			lowered, err := reduce(child)
			if err != nil {
				return nil, err
			}
			children = append(children, lowered)
		}

		kind, ok := ruleKinds[n.Rule]
		if !ok {
			return nil, &diagnostic.UngroupedConstructError{Rule: n.Rule, Line: n.Pos.Line, Column: n.Pos.Column}
		}
		if kind == ast.KindRaw {
			return &ast.Raw{Rule: n.Rule, Children: children, Line: n.Pos.Line, Column: n.Pos.Column}, nil
		}
		node, err := constructors[kind](n.Rule, n.Pos, children)
		if err != nil {
			return nil, err
		}
		log.Trace("Reduced rule", "rule", n.Rule, "kind", kind, "pos", n.Pos)
		return node, nil

	default:
		return nil, &diagnostic.UngroupedConstructError{Rule: "<nil>"}
	}
}
