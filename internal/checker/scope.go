package checker

import (
	"github.com/lhaig/vyc/internal/ast"
)

// SymbolKind represents the kind of symbol
type SymbolKind int

const (
	SymStorage SymbolKind = iota
	SymParam
	SymLocal
	SymReceiver
	SymEnvironment
	SymMember
)

// String returns the string representation of the symbol kind
func (sk SymbolKind) String() string {
	switch sk {
	case SymStorage:
		return "storage variable"
	case SymParam:
		return "parameter"
	case SymLocal:
		return "local variable"
	case SymReceiver:
		return "receiver"
	case SymEnvironment:
		return "environment variable"
	case SymMember:
		return "member"
	default:
		return "unknown"
	}
}

// Symbol represents a symbol in the symbol table
type Symbol struct {
	Name string
	Type ast.Type
	Kind SymbolKind
}

// Scope is one link in an immutable chain of contexts. Push returns a new
// handle and leaves the receiver untouched, so dropping the handle on exit
// restores whatever the outer scope bound before.
type Scope struct {
	parent *Scope
	ctx    *Context
}

// NewScope creates a root scope over ctx
func NewScope(ctx *Context) *Scope {
	return &Scope{ctx: ctx}
}

// Push returns a child scope whose names shadow the receiver's
func (s *Scope) Push(ctx *Context) *Scope {
	return &Scope{parent: s, ctx: ctx}
}

// Bind returns a child scope holding a single symbol
func (s *Scope) Bind(name string, typ ast.Type, kind SymbolKind) *Scope {
	ctx := newContext()
	ctx.add(&Symbol{Name: name, Type: typ, Kind: kind})
	return s.Push(ctx)
}

// Parent returns the enclosing scope, nil for the root
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Resolve looks up a symbol in the current scope and parent scopes
// Returns nil if the symbol is not found
func (s *Scope) Resolve(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.parent {
		if sym := scope.ctx.Lookup(name); sym != nil {
			return sym
		}
	}
	return nil
}

// ResolveLocal looks up a symbol only in the current scope (not parent scopes)
func (s *Scope) ResolveLocal(name string) *Symbol {
	return s.ctx.Lookup(name)
}
