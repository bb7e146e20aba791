package lower

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/cst"
	"github.com/lhaig/vyc/internal/parser"
)

// constructor builds one node kind from the already-lowered children of a
// reduced rule
type constructor func(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error)

// ruleKinds binds every grammar rule to the node kind it reduces to.
// Grouping rules map to ast.KindRaw and are consumed by their parent's
// constructor.
var ruleKinds = map[string]ast.Kind{
	parser.RuleModule:    ast.KindModule,
	parser.RuleMethod:    ast.KindMethod,
	parser.RuleDecorator: ast.KindDecorator,
	parser.RulePassStmt:  ast.KindPassStatement,
	parser.RuleExprStmt:  ast.KindExpressionStatement,
	parser.RuleVar:       ast.KindVariableRef,
	parser.RuleParameter: ast.KindParameter,
	parser.RuleVariable:  ast.KindStorageVariable,
	parser.RuleAttribute: ast.KindAttributeRef,

	parser.RuleWithGetter: ast.KindRaw,
	parser.RuleStorage:    ast.KindRaw,
	parser.RuleAbiType:    ast.KindRaw,
	parser.RuleDecorators: ast.KindRaw,
	parser.RuleMethodType: ast.KindRaw,
	parser.RuleParameters: ast.KindRaw,
	parser.RuleBody:       ast.KindRaw,
}

var constructors = map[ast.Kind]constructor{
	ast.KindModule:              newModule,
	ast.KindMethod:              newMethod,
	ast.KindDecorator:           newDecorator,
	ast.KindPassStatement:       newPassStatement,
	ast.KindExpressionStatement: newExpressionStatement,
	ast.KindVariableRef:         newVariableRef,
	ast.KindParameter:           newParameter,
	ast.KindStorageVariable:     newStorageVariable,
	ast.KindAttributeRef:        newAttributeRef,
}

func init() {
	if err := CheckRules(parser.Rules()); err != nil {
		panic(err)
	}
}

// CheckRules verifies the rule table against a grammar's rule set: every
// grammar rule must be bound, no binding may name a rule the grammar lacks,
// and every bound kind must have a constructor.
func CheckRules(rules []string) error {
	var problems []string

	grammar := make(map[string]bool, len(rules))
	for _, rule := range rules {
		grammar[rule] = true
		kind, ok := ruleKinds[rule]
		if !ok {
			problems = append(problems, fmt.Sprintf("rule '%s' has no node binding", rule))
			continue
		}
		if kind != ast.KindRaw && constructors[kind] == nil {
			problems = append(problems, fmt.Sprintf("rule '%s' binds %s, which has no constructor", rule, kind))
		}
	}
	for rule := range ruleKinds {
		if !grammar[rule] {
			problems = append(problems, fmt.Sprintf("binding for unknown rule '%s'", rule))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("node registry out of sync with grammar: %s", strings.Join(problems, "; "))
}

// RuleKind returns the node kind a rule reduces to
func RuleKind(rule string) (ast.Kind, bool) {
	kind, ok := ruleKinds[rule]
	return kind, ok
}
