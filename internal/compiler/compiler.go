package compiler

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/checker"
	"github.com/lhaig/vyc/internal/cst"
	"github.com/lhaig/vyc/internal/lower"
	"github.com/lhaig/vyc/internal/parser"
)

// Result holds the output of a compilation
type Result struct {
	Path   string
	Tree   *cst.Tree
	Module *ast.Module
	Cached bool
}

// Compile runs the full pipeline: parse -> lower -> annotate -> check.
// The first failing stage aborts the unit and its error is returned as is.
func Compile(source string) (*Result, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	mod, err := lower.Lower(tree)
	if err != nil {
		return nil, err
	}

	if err := checker.Annotate(mod); err != nil {
		return nil, err
	}
	if err := checker.Check(mod); err != nil {
		return nil, err
	}

	return &Result{Tree: tree, Module: mod}, nil
}

// CompileFile reads and compiles a single source file
func CompileFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	res, err := Compile(string(source))
	if err != nil {
		return nil, err
	}
	res.Path = path
	log.Debug("Compiled source", "path", path, "methods", len(res.Module.Methods))
	return res, nil
}

// ParseFile runs the grammar adapter only and returns the concrete tree
func ParseFile(path string) (*cst.Tree, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return parser.Parse(string(source))
}
