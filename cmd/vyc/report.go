package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/diagnostic"
)

// printDiagnostics writes every diagnostic to stderr with a colored label
func printDiagnostics(diag *diagnostic.Diagnostics) {
	for _, item := range diag.All() {
		line := diagnostic.FormatOne(item)
		label, rest := line, ""
		if i := strings.Index(line, ": "); i >= 0 {
			label, rest = line[:i+1], line[i+1:]
		}
		errorColor.Fprint(os.Stderr, label)
		fmt.Fprintln(os.Stderr, rest)
	}
}

// printSummary renders the storage layout and the methods of a module
func printSummary(w io.Writer, mod *ast.Module) {
	storage := tablewriter.NewWriter(w)
	storage.SetHeader([]string{"Storage", "Type", "Public"})
	for _, v := range mod.Variables {
		public := "no"
		if v.IsPublic {
			public = "yes"
		}
		storage.Append([]string{v.Name, v.Type.String(), public})
	}
	storage.Render()

	methods := tablewriter.NewWriter(w)
	methods.SetHeader([]string{"Method", "Decorators", "Parameters"})
	for _, m := range mod.Methods {
		var decorators, params []string
		for _, n := range m.Decorators {
			if d, ok := n.(*ast.Decorator); ok {
				decorators = append(decorators, "@"+d.Type)
			}
		}
		for _, n := range m.Parameters {
			if p, ok := n.(*ast.Parameter); ok {
				params = append(params, fmt.Sprintf("%s: %s", p.Name, p.Type))
			}
		}
		methods.Append([]string{m.Name, strings.Join(decorators, " "), strings.Join(params, ", ")})
	}
	methods.Render()
}
