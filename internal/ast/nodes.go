package ast

import (
	"fmt"
	"strings"

	"github.com/lhaig/vyc/internal/cst"
)

// Kind tags every AST node variant
type Kind int

const (
	KindRaw Kind = iota
	KindModule
	KindMethod
	KindDecorator
	KindPassStatement
	KindExpressionStatement
	KindVariableRef
	KindParameter
	KindStorageVariable
	KindAttributeRef
)

// String returns the node kind name
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "Raw"
	case KindModule:
		return "Module"
	case KindMethod:
		return "Method"
	case KindDecorator:
		return "Decorator"
	case KindPassStatement:
		return "PassStatement"
	case KindExpressionStatement:
		return "ExpressionStatement"
	case KindVariableRef:
		return "VariableRef"
	case KindParameter:
		return "Parameter"
	case KindStorageVariable:
		return "StorageVariable"
	case KindAttributeRef:
		return "AttributeRef"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is an opaque type name such as "uint256"
type Type string

// Unresolved is the zero Type, filled in by type propagation
const Unresolved Type = ""

// Resolved reports whether the type has been filled in
func (t Type) Resolved() bool { return t != Unresolved }

func (t Type) String() string {
	if t == Unresolved {
		return "<unresolved>"
	}
	return string(t)
}

// Node is the base interface for all AST nodes
type Node interface {
	Kind() Kind
	Pos() (line, col int)
	// Fields lists every field that holds child nodes
	Fields() []Field
}

// Field describes a node-valued field. Single-valued fields carry exactly
// one element in Value.
type Field struct {
	Name   string
	Value  []Node
	List   bool
	Accept []Kind
}

func one(name string, n Node, accept ...Kind) Field {
	return Field{Name: name, Value: []Node{n}, Accept: accept}
}

func many(name string, ns []Node, accept ...Kind) Field {
	return Field{Name: name, Value: ns, List: true, Accept: accept}
}

// Module is the root of a lowered compile unit
type Module struct {
	Methods   []*Method
	Variables []*StorageVariable
	Line      int
	Column    int
}

func (m *Module) Kind() Kind      { return KindModule }
func (m *Module) Pos() (int, int) { return m.Line, m.Column }
func (m *Module) Fields() []Field {
	methods := make([]Node, len(m.Methods))
	for i, fn := range m.Methods {
		methods[i] = fn
	}
	variables := make([]Node, len(m.Variables))
	for i, v := range m.Variables {
		variables[i] = v
	}
	return []Field{
		many("methods", methods, KindMethod),
		many("variables", variables, KindStorageVariable),
	}
}

// Method is a contract function. Parameters exclude the receiver.
type Method struct {
	Decorators []Node
	Name       string
	Parameters []Node
	Body       []Node
	Line       int
	Column     int
}

func (m *Method) Kind() Kind      { return KindMethod }
func (m *Method) Pos() (int, int) { return m.Line, m.Column }
func (m *Method) Fields() []Field {
	return []Field{
		many("decorators", m.Decorators, KindDecorator),
		many("parameters", m.Parameters, KindParameter),
		many("body", m.Body, KindPassStatement, KindExpressionStatement),
	}
}

// Decorator is a method annotation such as @public
type Decorator struct {
	Type   string
	Line   int
	Column int
}

func (d *Decorator) Kind() Kind      { return KindDecorator }
func (d *Decorator) Pos() (int, int) { return d.Line, d.Column }
func (d *Decorator) Fields() []Field { return nil }

// PassStatement does nothing
type PassStatement struct {
	Line   int
	Column int
}

func (s *PassStatement) Kind() Kind      { return KindPassStatement }
func (s *PassStatement) Pos() (int, int) { return s.Line, s.Column }
func (s *PassStatement) Fields() []Field { return nil }

// ExpressionStatement assigns Expression to Assignment
type ExpressionStatement struct {
	Assignment Node
	Expression Node
	Line       int
	Column     int
}

func (s *ExpressionStatement) Kind() Kind      { return KindExpressionStatement }
func (s *ExpressionStatement) Pos() (int, int) { return s.Line, s.Column }
func (s *ExpressionStatement) Fields() []Field {
	return []Field{
		one("assignment", s.Assignment, KindVariableRef, KindAttributeRef),
		one("expression", s.Expression, KindVariableRef, KindAttributeRef),
	}
}

// VariableRef is a reference to a name. Type is set when the source
// annotates it, otherwise by type propagation.
type VariableRef struct {
	Name   string
	Type   Type
	Line   int
	Column int
}

func (v *VariableRef) Kind() Kind      { return KindVariableRef }
func (v *VariableRef) Pos() (int, int) { return v.Line, v.Column }
func (v *VariableRef) Fields() []Field { return nil }

// Parameter is a VariableRef declared in a method signature
type Parameter struct {
	VariableRef
}

func (p *Parameter) Kind() Kind { return KindParameter }

// StorageVariable is a module-level declaration. Public variables get a
// generated accessor.
type StorageVariable struct {
	Name     string
	Type     Type
	IsPublic bool
	Line     int
	Column   int
}

func (v *StorageVariable) Kind() Kind      { return KindStorageVariable }
func (v *StorageVariable) Pos() (int, int) { return v.Line, v.Column }
func (v *StorageVariable) Fields() []Field { return nil }

// AttributeRef is Base.Property
type AttributeRef struct {
	Base     Node
	Property string
	Type     Type
	Line     int
	Column   int
}

func (a *AttributeRef) Kind() Kind      { return KindAttributeRef }
func (a *AttributeRef) Pos() (int, int) { return a.Line, a.Column }
func (a *AttributeRef) Fields() []Field {
	return []Field{one("base", a.Base, KindVariableRef, KindAttributeRef)}
}

// Raw is a concrete parse-tree fragment that was not turned into an AST
// node: either a token, or a grouping rule whose children have already
// been lowered. Raw values only exist while lowering is in progress.
type Raw struct {
	Rule     string     // grouping rule name, empty for tokens
	Token    *cst.Token // set for tokens
	Children []Node
	Line     int
	Column   int
}

func (r *Raw) Kind() Kind      { return KindRaw }
func (r *Raw) Pos() (int, int) { return r.Line, r.Column }
func (r *Raw) Fields() []Field { return []Field{many("children", r.Children)} }

// IsToken reports whether r wraps a terminal
func (r *Raw) IsToken() bool { return r.Token != nil }

func (r *Raw) String() string {
	if r.Token != nil {
		return r.Token.String()
	}
	parts := make([]string, len(r.Children))
	for i, child := range r.Children {
		parts[i] = Describe(child)
	}
	return fmt.Sprintf("Tree(%s, [%s])", r.Rule, strings.Join(parts, ", "))
}

// Describe renders a short label for any node
func Describe(n Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case *Raw:
		return n.String()
	case *VariableRef:
		return fmt.Sprintf("VariableRef(%s)", n.Name)
	case *Parameter:
		return fmt.Sprintf("Parameter(%s)", n.Name)
	case *StorageVariable:
		return fmt.Sprintf("StorageVariable(%s)", n.Name)
	case *Method:
		return fmt.Sprintf("Method(%s)", n.Name)
	case *Decorator:
		return fmt.Sprintf("Decorator(%s)", n.Type)
	case *AttributeRef:
		return fmt.Sprintf("AttributeRef(%s.%s)", Describe(n.Base), n.Property)
	default:
		return n.Kind().String()
	}
}

// TypeOf returns the type carried by a reference node
func TypeOf(n Node) Type {
	switch n := n.(type) {
	case *VariableRef:
		return n.Type
	case *Parameter:
		return n.Type
	case *StorageVariable:
		return n.Type
	case *AttributeRef:
		return n.Type
	default:
		return Unresolved
	}
}
