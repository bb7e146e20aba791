package diagnostic

import (
	"fmt"
	"strings"
)

// Positioned is implemented by every compile error that knows where in the
// source it happened.
type Positioned interface {
	error
	Pos() (line, col int)
}

// SyntaxError reports malformed source text
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.Message)
}

func (e *SyntaxError) Pos() (int, int) { return e.Line, e.Column }

// ShapeMismatchError reports that a node constructor received children it
// could not consume: a wrong count for its shape, or leftovers.
type ShapeMismatchError struct {
	Kind      string   // node kind being constructed
	Rule      string   // grammar rule that reduced
	Reason    string   // what was expected
	Remainder []string // undigested children
	Line      int
	Column    int
}

func (e *ShapeMismatchError) Error() string {
	msg := fmt.Sprintf("cannot build %s from rule '%s': %s", e.Kind, e.Rule, e.Reason)
	if len(e.Remainder) > 0 {
		msg += fmt.Sprintf(" (undigested: %s)", strings.Join(e.Remainder, ", "))
	}
	return msg
}

func (e *ShapeMismatchError) Pos() (int, int) { return e.Line, e.Column }

// UngroupedConstructError reports a grammar rule that has no entry in the
// node registry.
type UngroupedConstructError struct {
	Rule   string
	Line   int
	Column int
}

func (e *UngroupedConstructError) Error() string {
	return fmt.Sprintf("ungrouped construct: no node registered for rule '%s'", e.Rule)
}

func (e *UngroupedConstructError) Pos() (int, int) { return e.Line, e.Column }

// IncompleteLoweringError reports a field that still holds a concrete
// parse-tree fragment after lowering.
type IncompleteLoweringError struct {
	Kind     string
	Field    string
	Residual string
	Line     int
	Column   int
}

func (e *IncompleteLoweringError) Error() string {
	return fmt.Sprintf("could not convert %s in %s: %s", e.Field, e.Kind, e.Residual)
}

func (e *IncompleteLoweringError) Pos() (int, int) { return e.Line, e.Column }

// MissingTypeError reports a declaration without an explicit type at the
// point its scope was built.
type MissingTypeError struct {
	Declaration string
	Kind        string // "storage variable" or "parameter"
	Line        int
	Column      int
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("%s '%s' has no declared type", e.Kind, e.Declaration)
}

func (e *MissingTypeError) Pos() (int, int) { return e.Line, e.Column }

// DuplicateDeclarationError reports a name declared twice in one list
type DuplicateDeclarationError struct {
	Name   string
	Kind   string
	Line   int
	Column int
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%s '%s' already declared in this scope", e.Kind, e.Name)
}

func (e *DuplicateDeclarationError) Pos() (int, int) { return e.Line, e.Column }

// UnresolvedIdentifierError reports a reference that is not in scope
type UnresolvedIdentifierError struct {
	Name      string
	Construct string // enclosing construct, e.g. "method get"
	Line      int
	Column    int
}

func (e *UnresolvedIdentifierError) Error() string {
	return fmt.Sprintf("cannot find '%s' in %s", e.Name, e.Construct)
}

func (e *UnresolvedIdentifierError) Pos() (int, int) { return e.Line, e.Column }

// ReadOnlyAssignmentError reports an assignment to the receiver or to the
// transaction environment
type ReadOnlyAssignmentError struct {
	Target    string
	Kind      string // kind of the root symbol
	Construct string
	Line      int
	Column    int
}

func (e *ReadOnlyAssignmentError) Error() string {
	return fmt.Sprintf("cannot assign to '%s': %s is read-only in %s", e.Target, e.Kind, e.Construct)
}

func (e *ReadOnlyAssignmentError) Pos() (int, int) { return e.Line, e.Column }

// TypeMismatchError reports an assignment whose sides have different types
type TypeMismatchError struct {
	Target    string
	Want      string
	Got       string
	Construct string
	Line      int
	Column    int
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot assign %s to '%s' of type %s in %s", e.Got, e.Target, e.Want, e.Construct)
}

func (e *TypeMismatchError) Pos() (int, int) { return e.Line, e.Column }
