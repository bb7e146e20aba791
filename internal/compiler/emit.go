package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/cst"
)

// Format selects how a compile result is written out
type Format string

const (
	FormatTree Format = "tree"
	FormatYAML Format = "yaml"
	FormatDump Format = "dump"
	FormatCST  Format = "cst"
)

// Formats lists every supported emit format
var Formats = []Format{FormatTree, FormatYAML, FormatDump, FormatCST}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown emit format: %s", name)
}

// getFileExtension returns the file extension for the given format
func getFileExtension(f Format) string {
	switch f {
	case FormatTree:
		return ".ast"
	case FormatYAML:
		return ".yaml"
	case FormatDump:
		return ".dump"
	case FormatCST:
		return ".cst"
	default:
		return ""
	}
}

// Emit renders a result in the given format
func Emit(res *Result, f Format) ([]byte, error) {
	switch f {
	case FormatTree:
		return []byte(ast.Print(res.Module)), nil
	case FormatYAML:
		return ast.MarshalYAML(res.Module)
	case FormatDump:
		return []byte(dumper.Sdump(res.Module)), nil
	case FormatCST:
		return []byte(cst.Print(res.Tree)), nil
	default:
		return nil, fmt.Errorf("unknown emit format: %s", f)
	}
}

// EmitToDir writes the rendered result under outDir and returns the written
// path. The output mirrors rel, the source path relative to the project
// root; a rel that leaves the root falls back to the source file name.
func EmitToDir(res *Result, f Format, outDir, rel string) (string, error) {
	out, err := Emit(res, f)
	if err != nil {
		return "", err
	}
	if rel == "" || !filepath.IsLocal(rel) {
		rel = filepath.Base(res.Path)
	}
	outPath := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+getFileExtension(f))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return outPath, nil
}
