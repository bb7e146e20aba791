// Package checker builds scope contexts and propagates declared types onto
// every reference in a lowered module.
package checker

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/diagnostic"
)

// Annotator fills in the Type of every reference in a module. An Annotator
// is single use.
type Annotator struct {
	members   map[ast.Type]*Context // member tables keyed by owner type
	construct string                // enclosing construct for diagnostics
}

// NewAnnotator creates an annotator
func NewAnnotator() *Annotator {
	return &Annotator{construct: "module"}
}

// Annotate propagates types through mod in place
func Annotate(mod *ast.Module) error {
	return NewAnnotator().Module(mod)
}

// Module annotates every method of mod. Storage variables are checked for
// explicit types before any method is visited.
func (a *Annotator) Module(mod *ast.Module) error {
	globals, members := environmentContext()
	a.members = members

	storage, err := BuildContext(StorageDeclarations(mod.Variables))
	if err != nil {
		return err
	}
	a.members[SelfType] = storage

	scope := NewScope(globals).Push(storage)
	for _, m := range mod.Methods {
		if err := a.method(scope, m); err != nil {
			return err
		}
	}
	return nil
}

// method annotates a method body in a scope private to the method; siblings
// never see its parameters or locals.
func (a *Annotator) method(outer *Scope, m *ast.Method) error {
	decls := ParameterDeclarations(m.Parameters)
	for _, d := range decls {
		if d.Name == ReceiverName {
			return &diagnostic.DuplicateDeclarationError{Name: d.Name, Kind: d.Kind.String(), Line: d.Line, Column: d.Column}
		}
	}
	params, err := BuildContext(decls)
	if err != nil {
		return err
	}

	prev := a.construct
	a.construct = fmt.Sprintf("method %s", m.Name)
	defer func() { a.construct = prev }()

	scope := outer.Bind(ReceiverName, SelfType, SymReceiver).Push(params)
	for _, stmt := range m.Body {
		scope, err = a.statement(scope, stmt)
		if err != nil {
			return err
		}
	}
	log.Debug("Annotated method", "name", m.Name, "params", params.Len(), "statements", len(m.Body))
	return nil
}

// statement annotates one statement and returns the scope for the next
func (a *Annotator) statement(scope *Scope, stmt ast.Node) (*Scope, error) {
	switch s := stmt.(type) {
	case *ast.PassStatement:
		return scope, nil

	case *ast.ExpressionStatement:
		if err := a.expression(scope, s.Expression); err != nil {
			return nil, err
		}
		// An annotated name on the left declares a local
		if v, ok := s.Assignment.(*ast.VariableRef); ok && v.Type.Resolved() {
			if v.Name == ReceiverName {
				return nil, &diagnostic.DuplicateDeclarationError{Name: v.Name, Kind: SymLocal.String(), Line: v.Line, Column: v.Column}
			}
			return scope.Bind(v.Name, v.Type, SymLocal), nil
		}
		if err := a.writable(scope, s.Assignment); err != nil {
			return nil, err
		}
		if err := a.expression(scope, s.Assignment); err != nil {
			return nil, err
		}
		return scope, nil

	default:
		return scope, nil
	}
}

// writable rejects a target that is the receiver itself or is rooted at an
// environment global.
func (a *Annotator) writable(scope *Scope, target ast.Node) error {
	root, member := target, false
	for {
		ref, ok := root.(*ast.AttributeRef)
		if !ok {
			break
		}
		root, member = ref.Base, true
	}
	v, ok := root.(*ast.VariableRef)
	if !ok {
		return nil
	}
	sym := scope.Resolve(v.Name)
	if sym == nil {
		return nil
	}
	if sym.Kind == SymEnvironment || (sym.Kind == SymReceiver && !member) {
		return &diagnostic.ReadOnlyAssignmentError{
			Target:    Render(target),
			Kind:      sym.Kind.String(),
			Construct: a.construct,
			Line:      v.Line,
			Column:    v.Column,
		}
	}
	return nil
}

// expression resolves a reference. Nodes that already carry a type are left
// alone.
func (a *Annotator) expression(scope *Scope, n ast.Node) error {
	switch e := n.(type) {
	case *ast.VariableRef:
		if e.Type.Resolved() {
			return nil
		}
		sym := scope.Resolve(e.Name)
		if sym == nil {
			return &diagnostic.UnresolvedIdentifierError{Name: e.Name, Construct: a.construct, Line: e.Line, Column: e.Column}
		}
		e.Type = sym.Type
		return nil

	case *ast.AttributeRef:
		if e.Type.Resolved() {
			return nil
		}
		if v, ok := e.Base.(*ast.VariableRef); ok && v.Name == ReceiverName && !v.Type.Resolved() {
			v.Type = SelfType
		} else if err := a.expression(scope, e.Base); err != nil {
			return err
		}

		owner := ast.TypeOf(e.Base)
		sym := a.members[owner].Lookup(e.Property)
		if sym == nil {
			return &diagnostic.UnresolvedIdentifierError{
				Name:      e.Property,
				Construct: fmt.Sprintf("members of %s in %s", owner, a.construct),
				Line:      e.Line,
				Column:    e.Column,
			}
		}
		e.Type = sym.Type
		return nil

	default:
		return nil
	}
}
