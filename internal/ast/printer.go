package ast

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Module:
		sb.WriteString(prefix + "Module\n")
		for _, v := range n.Variables {
			printNode(sb, v, indent+1)
		}
		for _, fn := range n.Methods {
			printNode(sb, fn, indent+1)
		}

	case *StorageVariable:
		modifiers := ""
		if n.IsPublic {
			modifiers = " public"
		}
		sb.WriteString(fmt.Sprintf("%sStorageVariable: %s: %s%s\n", prefix, n.Name, n.Type, modifiers))

	case *Method:
		sb.WriteString(fmt.Sprintf("%sMethod: %s\n", prefix, n.Name))
		for _, d := range n.Decorators {
			printNode(sb, d, indent+1)
		}
		for _, p := range n.Parameters {
			printNode(sb, p, indent+1)
		}
		if len(n.Body) > 0 {
			sb.WriteString(prefix + "  Body:\n")
			for _, stmt := range n.Body {
				printNode(sb, stmt, indent+2)
			}
		}

	case *Decorator:
		sb.WriteString(fmt.Sprintf("%sDecorator: @%s\n", prefix, n.Type))

	case *Parameter:
		sb.WriteString(fmt.Sprintf("%sParameter: %s: %s\n", prefix, n.Name, n.Type))

	case *PassStatement:
		sb.WriteString(prefix + "PassStatement\n")

	case *ExpressionStatement:
		sb.WriteString(prefix + "ExpressionStatement\n")
		printNode(sb, n.Assignment, indent+1)
		printNode(sb, n.Expression, indent+1)

	case *VariableRef:
		sb.WriteString(fmt.Sprintf("%sVariableRef: %s: %s\n", prefix, n.Name, n.Type))

	case *AttributeRef:
		sb.WriteString(fmt.Sprintf("%sAttributeRef: .%s: %s\n", prefix, n.Property, n.Type))
		printNode(sb, n.Base, indent+1)

	case *Raw:
		sb.WriteString(fmt.Sprintf("%sRaw: %s\n", prefix, n))

	default:
		sb.WriteString(fmt.Sprintf("%s<unknown node %T>\n", prefix, n))
	}
}
