package lower

import (
	"fmt"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/diagnostic"
)

// Validate walks every node-valued field of every node depth-first and
// fails at the first field that still holds a concrete fragment, is empty,
// or holds a node kind the field does not accept.
func Validate(root ast.Node) error {
	if raw, ok := root.(*ast.Raw); ok {
		return &diagnostic.IncompleteLoweringError{
			Kind:     "root",
			Field:    "node",
			Residual: raw.String(),
			Line:     raw.Line,
			Column:   raw.Column,
		}
	}
	return validateNode(root)
}

func validateNode(node ast.Node) error {
	for _, field := range node.Fields() {
		for _, child := range field.Value {
			if err := validateField(node, field, child); err != nil {
				return err
			}
		}
		for _, child := range field.Value {
			if err := validateNode(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateField checks a single field value
func validateField(owner ast.Node, field ast.Field, child ast.Node) error {
	line, col := owner.Pos()
	fail := func(residual string) error {
		return &diagnostic.IncompleteLoweringError{
			Kind:     owner.Kind().String(),
			Field:    field.Name,
			Residual: residual,
			Line:     line,
			Column:   col,
		}
	}

	if child == nil {
		return fail("<nil>")
	}
	if raw, ok := child.(*ast.Raw); ok {
		line, col = raw.Pos()
		return fail(raw.String())
	}
	if len(field.Accept) == 0 {
		return nil
	}
	for _, kind := range field.Accept {
		if child.Kind() == kind {
			return nil
		}
	}
	return fail(fmt.Sprintf("%s is not allowed here", ast.Describe(child)))
}
