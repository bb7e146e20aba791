package checker

import (
	"fmt"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/diagnostic"
)

// Check verifies that both sides of every assignment in an annotated module
// carry the same type. Annotate must have run first.
func Check(mod *ast.Module) error {
	for _, m := range mod.Methods {
		for _, stmt := range m.Body {
			s, ok := stmt.(*ast.ExpressionStatement)
			if !ok {
				continue
			}
			want, got := ast.TypeOf(s.Assignment), ast.TypeOf(s.Expression)
			if want == got {
				continue
			}
			line, col := s.Pos()
			return &diagnostic.TypeMismatchError{
				Target:    Render(s.Assignment),
				Want:      want.String(),
				Got:       got.String(),
				Construct: fmt.Sprintf("method %s", m.Name),
				Line:      line,
				Column:    col,
			}
		}
	}
	return nil
}

// Render prints a reference the way it appears in source
func Render(n ast.Node) string {
	switch n := n.(type) {
	case *ast.VariableRef:
		return n.Name
	case *ast.Parameter:
		return n.Name
	case *ast.AttributeRef:
		return Render(n.Base) + "." + n.Property
	default:
		return ast.Describe(n)
	}
}
