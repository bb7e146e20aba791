package lower

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/cst"
	"github.com/lhaig/vyc/internal/diagnostic"
	"github.com/lhaig/vyc/internal/parser"
)

func tok(kind, text string) *cst.Token {
	return &cst.Token{Kind: kind, Text: text, Line: 1, Column: 1}
}

func node(rule string, children ...cst.Node) *cst.Tree {
	return &cst.Tree{Rule: rule, Children: children, Pos: cst.Pos{Line: 1, Column: 1}}
}

func passBody() *cst.Tree {
	return node(parser.RuleBody, node(parser.RulePassStmt))
}

func lowerSource(t *testing.T, source string) *ast.Module {
	t.Helper()
	tree, err := parser.Parse(source)
	require.NoError(t, err)
	mod, err := Lower(tree)
	require.NoError(t, err)
	return mod
}

func TestLowerGetterContract(t *testing.T) {
	mod := lowerSource(t, `balance: public(uint256)

@public
def get(self):
    pass
`)
	require.Len(t, mod.Variables, 1)
	v := mod.Variables[0]
	assert.Equal(t, "balance", v.Name)
	assert.Equal(t, ast.Type("uint256"), v.Type)
	assert.True(t, v.IsPublic)

	require.Len(t, mod.Methods, 1)
	m := mod.Methods[0]
	assert.Equal(t, "get", m.Name)
	assert.Empty(t, m.Parameters)
	require.Len(t, m.Decorators, 1)
	assert.Equal(t, "public", m.Decorators[0].(*ast.Decorator).Type)
	require.Len(t, m.Body, 1)
	assert.Equal(t, ast.KindPassStatement, m.Body[0].Kind())
}

func TestLowerStatementsAndParameters(t *testing.T) {
	mod := lowerSource(t, `owner: address
total

def move(self, to: address, amount: uint256):
    spent: uint256 = amount
    self.owner = to
`)
	require.Len(t, mod.Variables, 2)
	assert.False(t, mod.Variables[0].IsPublic)
	assert.Equal(t, ast.Unresolved, mod.Variables[1].Type)

	m := mod.Methods[0]
	require.Len(t, m.Parameters, 2)
	assert.Equal(t, "to", m.Parameters[0].(*ast.Parameter).Name)
	assert.Equal(t, ast.Type("uint256"), m.Parameters[1].(*ast.Parameter).Type)

	first := m.Body[0].(*ast.ExpressionStatement)
	assert.Equal(t, ast.Type("uint256"), ast.TypeOf(first.Assignment))
	assert.Equal(t, ast.Unresolved, ast.TypeOf(first.Expression))

	second := m.Body[1].(*ast.ExpressionStatement)
	attr, ok := second.Assignment.(*ast.AttributeRef)
	require.True(t, ok)
	assert.Equal(t, "owner", attr.Property)
	assert.Equal(t, "self", attr.Base.(*ast.VariableRef).Name)
}

func TestLowerIsDeterministic(t *testing.T) {
	source := `balance: public(uint256)

@public
@payable
def deposit(self, amount: uint256):
    self.balance = amount.value.inner
`
	first := lowerSource(t, source)
	second := lowerSource(t, source)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("lowering twice differs (-first +second):\n%s", diff)
	}
}

func TestCheckRules(t *testing.T) {
	require.NoError(t, CheckRules(parser.Rules()))

	err := CheckRules(append(parser.Rules(), "for_stmt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 'for_stmt' has no node binding")

	err = CheckRules(parser.Rules()[1:])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding for unknown rule 'module'")
}

func TestRuleKind(t *testing.T) {
	kind, ok := RuleKind(parser.RuleBody)
	assert.True(t, ok)
	assert.Equal(t, ast.KindRaw, kind)

	kind, ok = RuleKind(parser.RuleAttribute)
	assert.True(t, ok)
	assert.Equal(t, ast.KindAttributeRef, kind)

	_, ok = RuleKind("if_stmt")
	assert.False(t, ok)
}

func TestUngroupedConstruct(t *testing.T) {
	tree := node(parser.RuleModule, node("for_stmt", tok("NAME", "i")))
	_, err := Lower(tree)

	var ungrouped *diagnostic.UngroupedConstructError
	require.True(t, errors.As(err, &ungrouped), "got %v", err)
	assert.Equal(t, "for_stmt", ungrouped.Rule)
}

func TestShapeMismatch(t *testing.T) {
	decorators := func() *cst.Tree {
		return node(parser.RuleDecorators, node(parser.RuleDecorator, tok("DECORATOR_NAME", "public")))
	}
	signature := node(parser.RuleMethodType, tok("NAME", "get"))

	tests := []struct {
		name   string
		tree   *cst.Tree
		kind   string
		reason string
	}{
		{
			name:   "two decorator sets",
			tree:   node(parser.RuleModule, node(parser.RuleMethod, decorators(), decorators(), signature, passBody())),
			kind:   "Method",
			reason: "should not have more than 1 set of decorators",
		},
		{
			name:   "missing body",
			tree:   node(parser.RuleModule, node(parser.RuleMethod, signature)),
			kind:   "Method",
			reason: "expected exactly 1 body",
		},
		{
			name:   "pass with child",
			tree:   node(parser.RuleModule, node(parser.RuleMethod, signature, node(parser.RuleBody, node(parser.RulePassStmt, tok("NAME", "x"))))),
			kind:   "PassStatement",
			reason: "expected no children",
		},
		{
			name: "undigested type child",
			tree: node(parser.RuleModule, node(parser.RuleVariable,
				tok("NAME", "x"),
				node(parser.RuleStorage, node(parser.RuleAbiType, tok("BASIC_TYPE", "uint256"), tok("DECORATOR_NAME", "public"))),
			)),
			kind:   "StorageVariable",
			reason: "did not save everything",
		},
		{
			name:   "repeated names",
			tree:   node(parser.RuleModule, node(parser.RuleVariable, tok("NAME", "x"), tok("NAME", "y"))),
			kind:   "StorageVariable",
			reason: "fields repeat",
		},
		{
			name:   "stray token in module",
			tree:   node(parser.RuleModule, tok("NAME", "x")),
			kind:   "Module",
			reason: "did not save everything",
		},
		{
			name:   "root is not a module",
			tree:   node(parser.RulePassStmt),
			kind:   "Module",
			reason: "root did not lower to a module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lower(tt.tree)
			var shape *diagnostic.ShapeMismatchError
			require.True(t, errors.As(err, &shape), "got %v", err)
			assert.Equal(t, tt.kind, shape.Kind)
			assert.Equal(t, tt.reason, shape.Reason)
		})
	}
}

func TestShapeMismatchNamesRemainder(t *testing.T) {
	tree := node(parser.RuleModule, node(parser.RuleVariable,
		tok("NAME", "x"),
		node(parser.RuleStorage, node(parser.RuleAbiType, tok("BASIC_TYPE", "uint256"), tok("DECORATOR_NAME", "public"))),
	))
	_, err := Lower(tree)
	var shape *diagnostic.ShapeMismatchError
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, []string{`DECORATOR_NAME("public")`}, shape.Remainder)
	assert.True(t, strings.Contains(err.Error(), "undigested"), err.Error())
}

func TestStrayParameterIsResidual(t *testing.T) {
	sig := node(parser.RuleMethodType,
		tok("NAME", "f"),
		node(parser.RuleParameters,
			node(parser.RuleParameter, tok("NAME", "a"), node(parser.RuleAbiType, tok("BASIC_TYPE", "uint256"))),
			tok("NAME", "stray"),
		),
	)
	_, err := Lower(node(parser.RuleModule, node(parser.RuleMethod, sig, passBody())))

	var incomplete *diagnostic.IncompleteLoweringError
	require.True(t, errors.As(err, &incomplete), "got %v", err)
	assert.Equal(t, "Method", incomplete.Kind)
	assert.Equal(t, "parameters", incomplete.Field)
	assert.Equal(t, `NAME("stray")`, incomplete.Residual)
}

func TestFold(t *testing.T) {
	unique := fold([]ast.Node{
		&ast.Raw{Token: tok("NAME", "x")},
		&ast.Raw{Token: tok("BASIC_TYPE", "bool")},
	})
	require.True(t, unique.isDict())
	name, ok := unique.text("NAME")
	assert.True(t, ok)
	assert.Equal(t, "x", name)
	assert.Len(t, unique.leftover(), 1)

	repeated := fold([]ast.Node{&ast.Parameter{}, &ast.Parameter{}})
	assert.False(t, repeated.isDict())
	assert.Len(t, repeated.nodes(), 2)
	assert.Empty(t, repeated.leftover())
}

func TestSplit(t *testing.T) {
	body := &ast.Raw{Rule: parser.RuleBody}
	token := &ast.Raw{Token: tok("NAME", "body")}
	selected, rest := split([]ast.Node{token, body}, parser.RuleBody)
	assert.Equal(t, []*ast.Raw{body}, selected)
	assert.Equal(t, []ast.Node{token}, rest)
}
