package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic is one failed compile unit
type Diagnostic struct {
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Diagnostics collects the failures of a multi-file build. Every compile
// unit aborts at its first error, so each file contributes at most one item.
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Add records err against file. Position information is taken from the
// first Positioned error in the chain.
func (d *Diagnostics) Add(file string, err error) {
	item := Diagnostic{
		File:    file,
		Message: err.Error(),
		Err:     err,
	}
	var pe Positioned
	if errors.As(err, &pe) {
		item.Line, item.Column = pe.Pos()
		item.Message = pe.Error()
	}
	d.items = append(d.items, item)
}

// HasErrors returns true if any file failed
func (d *Diagnostics) HasErrors() bool {
	return len(d.items) > 0
}

// All returns all diagnostics in insertion order
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// Format returns human-readable error messages
// Output format:
//
//	error[token.vy:3:10]: cannot find 'total' in method get
//	error[vault.vy]: open vault.vy: no such file or directory
func (d *Diagnostics) Format() string {
	var builder strings.Builder
	for i, item := range d.items {
		builder.WriteString(FormatOne(item))
		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// FormatOne renders a single diagnostic
func FormatOne(item Diagnostic) string {
	if item.Line == 0 {
		return fmt.Sprintf("error[%s]: %s", item.File, item.Message)
	}
	return fmt.Sprintf("error[%s:%d:%d]: %s", item.File, item.Line, item.Column, item.Message)
}
