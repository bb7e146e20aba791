package lower

import (
	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/cst"
	"github.com/lhaig/vyc/internal/lexer"
	"github.com/lhaig/vyc/internal/parser"
)

// Token kind names as they appear in the concrete tree
var (
	tokName      = lexer.NAME.String()
	tokBasicType = lexer.BASIC_TYPE.String()
	tokDecorator = lexer.DECORATOR_NAME.String()
)

func newModule(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	methods, rest := splitKind(children, ast.KindMethod)
	variables, rest := splitKind(rest, ast.KindStorageVariable)
	if len(rest) > 0 {
		return nil, mismatch(ast.KindModule, rule, pos.Line, pos.Column, "did not save everything", rest)
	}

	mod := &ast.Module{Line: pos.Line, Column: pos.Column}
	for _, m := range methods {
		mod.Methods = append(mod.Methods, m.(*ast.Method))
	}
	for _, v := range variables {
		mod.Variables = append(mod.Variables, v.(*ast.StorageVariable))
	}
	return mod, nil
}

func newMethod(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	method := &ast.Method{Line: pos.Line, Column: pos.Column}
	fail := func(reason string, rest []ast.Node) (ast.Node, error) {
		return nil, mismatch(ast.KindMethod, rule, pos.Line, pos.Column, reason, rest)
	}

	decorators, rest := split(children, parser.RuleDecorators)
	if len(decorators) > 1 {
		return fail("should not have more than 1 set of decorators", rawNodes(decorators))
	}
	if len(decorators) == 1 {
		method.Decorators = decorators[0].Children
	}

	signatures, rest := split(rest, parser.RuleMethodType)
	if len(signatures) != 1 {
		return fail("expected exactly 1 method_type", rawNodes(signatures))
	}
	sig := fold(signatures[0].Children)
	if !sig.isDict() {
		return fail("method_type fields repeat", signatures[0].Children)
	}
	name, ok := sig.text(tokName)
	if !ok {
		return fail("method_type has no NAME", signatures[0].Children)
	}
	method.Name = name
	if params, ok := sig.group(parser.RuleParameters); ok {
		method.Parameters = params.nodes()
	}
	if left := sig.leftover(); len(left) > 0 {
		return fail("did not save everything in method_type", left)
	}

	bodies, rest := split(rest, parser.RuleBody)
	if len(bodies) != 1 {
		return fail("expected exactly 1 body", rawNodes(bodies))
	}
	method.Body = bodies[0].Children

	if len(rest) > 0 {
		return fail("did not save everything", rest)
	}
	return method, nil
}

func newDecorator(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	if len(children) != 1 {
		return nil, mismatch(ast.KindDecorator, rule, pos.Line, pos.Column, "expected exactly 1 child", children)
	}
	s := fold(children)
	name, ok := s.text(tokDecorator)
	if !ok {
		return nil, mismatch(ast.KindDecorator, rule, pos.Line, pos.Column, "expected DECORATOR_NAME", children)
	}
	return &ast.Decorator{Type: name, Line: pos.Line, Column: pos.Column}, nil
}

func newPassStatement(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	if len(children) != 0 {
		return nil, mismatch(ast.KindPassStatement, rule, pos.Line, pos.Column, "expected no children", children)
	}
	return &ast.PassStatement{Line: pos.Line, Column: pos.Column}, nil
}

func newExpressionStatement(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	if len(children) != 2 {
		return nil, mismatch(ast.KindExpressionStatement, rule, pos.Line, pos.Column, "expected assignment and expression", children)
	}
	return &ast.ExpressionStatement{
		Assignment: children[0],
		Expression: children[1],
		Line:       pos.Line,
		Column:     pos.Column,
	}, nil
}

func newVariableRef(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	s := fold(children)
	if !s.isDict() {
		return nil, mismatch(ast.KindVariableRef, rule, pos.Line, pos.Column, "fields repeat", children)
	}
	name, ok := s.text(tokName)
	if !ok {
		return nil, mismatch(ast.KindVariableRef, rule, pos.Line, pos.Column, "expected NAME", children)
	}
	// Do not know the type yet unless annotated
	typ, _ := s.text(tokBasicType)
	if left := s.leftover(); len(left) > 0 {
		return nil, mismatch(ast.KindVariableRef, rule, pos.Line, pos.Column, "did not save everything", left)
	}
	return &ast.VariableRef{Name: name, Type: ast.Type(typ), Line: pos.Line, Column: pos.Column}, nil
}

func newParameter(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	s := fold(children)
	if !s.isDict() {
		return nil, mismatch(ast.KindParameter, rule, pos.Line, pos.Column, "fields repeat", children)
	}
	name, ok := s.text(tokName)
	if !ok {
		return nil, mismatch(ast.KindParameter, rule, pos.Line, pos.Column, "expected NAME", children)
	}
	typ, ok := declaredType(s)
	if !ok {
		return nil, mismatch(ast.KindParameter, rule, pos.Line, pos.Column, "type group carries no type", children)
	}
	if left := s.leftover(); len(left) > 0 {
		return nil, mismatch(ast.KindParameter, rule, pos.Line, pos.Column, "did not save everything", left)
	}
	return &ast.Parameter{VariableRef: ast.VariableRef{Name: name, Type: typ, Line: pos.Line, Column: pos.Column}}, nil
}

func newStorageVariable(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	outer := fold(children)
	if !outer.isDict() {
		return nil, mismatch(ast.KindStorageVariable, rule, pos.Line, pos.Column, "fields repeat", children)
	}

	props, public := outer.group(parser.RuleWithGetter)
	if !public {
		props = outer
	} else if !props.isDict() {
		return nil, mismatch(ast.KindStorageVariable, rule, pos.Line, pos.Column, "with_getter fields repeat", children)
	}

	name, ok := props.text(tokName)
	if !ok {
		return nil, mismatch(ast.KindStorageVariable, rule, pos.Line, pos.Column, "expected NAME", children)
	}
	typ, ok := declaredType(props)
	if !ok {
		return nil, mismatch(ast.KindStorageVariable, rule, pos.Line, pos.Column, "type group carries no type", children)
	}
	if left := outer.leftover(); len(left) > 0 {
		return nil, mismatch(ast.KindStorageVariable, rule, pos.Line, pos.Column, "did not save everything", left)
	}
	return &ast.StorageVariable{
		Name:     name,
		Type:     typ,
		IsPublic: public,
		Line:     pos.Line,
		Column:   pos.Column,
	}, nil
}

func newAttributeRef(rule string, pos cst.Pos, children []ast.Node) (ast.Node, error) {
	if len(children) != 2 {
		return nil, mismatch(ast.KindAttributeRef, rule, pos.Line, pos.Column, "expected base and property", children)
	}
	prop := fold(children[1:])
	name, ok := prop.text(tokName)
	if !ok {
		return nil, mismatch(ast.KindAttributeRef, rule, pos.Line, pos.Column, "property is not a NAME", children[1:])
	}
	return &ast.AttributeRef{
		Base:     children[0],
		Property: name,
		Line:     pos.Line,
		Column:   pos.Column,
	}, nil
}

// declaredType follows storage -> abi_type -> BASIC_TYPE. A declaration
// without any type group yields ast.Unresolved; ok is false only when a
// type group is present but names no type.
func declaredType(s *shape) (ast.Type, bool) {
	for _, rule := range []string{parser.RuleStorage, parser.RuleAbiType} {
		if inner, found := s.group(rule); found {
			typ, ok := declaredType(inner)
			return typ, ok && typ.Resolved()
		}
	}
	if name, found := s.text(tokBasicType); found {
		return ast.Type(name), true
	}
	return ast.Unresolved, true
}

func rawNodes(raws []*ast.Raw) []ast.Node {
	nodes := make([]ast.Node, len(raws))
	for i, r := range raws {
		nodes[i] = r
	}
	return nodes
}
