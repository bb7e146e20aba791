package checker

import (
	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/diagnostic"
)

// Declaration is a named, possibly untyped declaration feeding a context
type Declaration struct {
	Name   string
	Type   ast.Type
	Kind   SymbolKind
	Line   int
	Column int
}

// Context is an ordered name to symbol mapping
type Context struct {
	order   []string
	symbols map[string]*Symbol
}

func newContext() *Context {
	return &Context{symbols: make(map[string]*Symbol)}
}

func (c *Context) add(sym *Symbol) {
	if _, exists := c.symbols[sym.Name]; !exists {
		c.order = append(c.order, sym.Name)
	}
	c.symbols[sym.Name] = sym
}

// BuildContext builds a context from declarations in order. Every
// declaration must already carry an explicit type.
func BuildContext(decls []Declaration) (*Context, error) {
	ctx := newContext()
	for _, d := range decls {
		if !d.Type.Resolved() {
			return nil, &diagnostic.MissingTypeError{
				Declaration: d.Name,
				Kind:        d.Kind.String(),
				Line:        d.Line,
				Column:      d.Column,
			}
		}
		if ctx.Lookup(d.Name) != nil {
			return nil, &diagnostic.DuplicateDeclarationError{
				Name:   d.Name,
				Kind:   d.Kind.String(),
				Line:   d.Line,
				Column: d.Column,
			}
		}
		ctx.add(&Symbol{Name: d.Name, Type: d.Type, Kind: d.Kind})
	}
	return ctx, nil
}

// Lookup returns the symbol bound to name, or nil
func (c *Context) Lookup(name string) *Symbol {
	if c == nil {
		return nil
	}
	return c.symbols[name]
}

// Names returns the bound names in declaration order
func (c *Context) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Len returns the number of bound names
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// StorageDeclarations adapts module storage variables
func StorageDeclarations(vars []*ast.StorageVariable) []Declaration {
	decls := make([]Declaration, 0, len(vars))
	for _, v := range vars {
		decls = append(decls, Declaration{Name: v.Name, Type: v.Type, Kind: SymStorage, Line: v.Line, Column: v.Column})
	}
	return decls
}

// ParameterDeclarations adapts method parameters. Lowering validation
// guarantees every entry is a *ast.Parameter.
func ParameterDeclarations(params []ast.Node) []Declaration {
	decls := make([]Declaration, 0, len(params))
	for _, n := range params {
		p, ok := n.(*ast.Parameter)
		if !ok {
			continue
		}
		decls = append(decls, Declaration{Name: p.Name, Type: p.Type, Kind: SymParam, Line: p.Line, Column: p.Column})
	}
	return decls
}
