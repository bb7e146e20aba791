package checker

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/diagnostic"
)

func TestPushLeavesOuterScope(t *testing.T) {
	outer, err := BuildContext([]Declaration{{Name: "x", Type: "address", Kind: SymStorage}})
	if err != nil {
		t.Fatal(err)
	}
	inner, err := BuildContext([]Declaration{{Name: "x", Type: "uint256", Kind: SymParam}})
	if err != nil {
		t.Fatal(err)
	}

	root := NewScope(outer)
	child := root.Push(inner)

	if got := child.Resolve("x"); got == nil || got.Type != "uint256" {
		t.Errorf("child x = %v, want uint256", got)
	}
	if got := root.Resolve("x"); got == nil || got.Type != "address" {
		t.Errorf("root x = %v, want address", got)
	}
	if child.Parent() != root {
		t.Error("child parent is not root")
	}
	if got := child.Parent().Resolve("x"); got.Kind != SymStorage {
		t.Errorf("after pop x is %s, want storage variable", got.Kind)
	}
}

func TestBindShadowsWithoutMutating(t *testing.T) {
	root := NewScope(newContext())
	bound := root.Bind("y", "bool", SymLocal)

	if root.Resolve("y") != nil {
		t.Error("Bind changed the receiver")
	}
	if sym := bound.ResolveLocal("y"); sym == nil || sym.Kind != SymLocal {
		t.Errorf("bound y = %v", sym)
	}
}

func TestBuildContextKeepsOrder(t *testing.T) {
	ctx, err := BuildContext([]Declaration{
		{Name: "owner", Type: "address"},
		{Name: "balance", Type: "uint256"},
		{Name: "active", Type: "bool"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"owner", "balance", "active"}, ctx.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if ctx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ctx.Len())
	}
}

func TestBuildContextRejectsUntyped(t *testing.T) {
	_, err := BuildContext([]Declaration{
		{Name: "a", Type: "uint256"},
		{Name: "total", Type: ast.Unresolved, Kind: SymStorage, Line: 3, Column: 1},
	})
	var missing *diagnostic.MissingTypeError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTypeError, got %v", err)
	}
	if missing.Declaration != "total" || missing.Line != 3 {
		t.Errorf("unexpected error %+v", missing)
	}
}

func TestBuildContextEmpty(t *testing.T) {
	ctx, err := BuildContext(nil)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Len() != 0 || ctx.Lookup("anything") != nil {
		t.Error("empty context should bind nothing")
	}
}

func TestEnvironmentContext(t *testing.T) {
	globals, members := environmentContext()
	if diff := cmp.Diff([]string{"msg", "block", "tx"}, globals.Names()); diff != "" {
		t.Errorf("globals mismatch (-want +got):\n%s", diff)
	}
	if sym := members["msg"].Lookup("sender"); sym == nil || sym.Type != "address" {
		t.Errorf("msg.sender = %v", sym)
	}
	if members["tx"].Lookup("gas") != nil {
		t.Error("tx should not have gas")
	}
}
