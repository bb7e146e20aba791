package checker

import "github.com/lhaig/vyc/internal/ast"

// SelfType is the sentinel type of the implicit receiver. Its members are
// the module's storage variables.
const SelfType ast.Type = "self"

// ReceiverName is the implicit receiver placeholder
const ReceiverName = "self"

type builtin struct {
	name    string
	members []Symbol
}

// environment lists the transaction and block context visible to every
// method. Each global has a type of the same name.
var environment = []builtin{
	{name: "msg", members: []Symbol{
		{Name: "sender", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "gas", Type: "uint256"},
	}},
	{name: "block", members: []Symbol{
		{Name: "timestamp", Type: "uint256"},
		{Name: "number", Type: "uint256"},
		{Name: "coinbase", Type: "address"},
	}},
	{name: "tx", members: []Symbol{
		{Name: "origin", Type: "address"},
	}},
}

// environmentContext builds the outermost context and the member tables of
// the environment types
func environmentContext() (*Context, map[ast.Type]*Context) {
	globals := newContext()
	members := make(map[ast.Type]*Context, len(environment))
	for _, b := range environment {
		typ := ast.Type(b.name)
		globals.add(&Symbol{Name: b.name, Type: typ, Kind: SymEnvironment})
		table := newContext()
		for _, m := range b.members {
			table.add(&Symbol{Name: m.Name, Type: m.Type, Kind: SymMember})
		}
		members[typ] = table
	}
	return globals, members
}
