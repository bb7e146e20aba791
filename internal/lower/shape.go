package lower

import (
	"github.com/lhaig/vyc/internal/ast"
	"github.com/lhaig/vyc/internal/diagnostic"
)

// split partitions children into the groups reduced by rule and the rest
func split(children []ast.Node, rule string) (selected []*ast.Raw, rest []ast.Node) {
	for _, child := range children {
		if raw, ok := child.(*ast.Raw); ok && !raw.IsToken() && raw.Rule == rule {
			selected = append(selected, raw)
			continue
		}
		rest = append(rest, child)
	}
	return selected, rest
}

// splitKind partitions children into lowered nodes of kind and the rest
func splitKind(children []ast.Node, kind ast.Kind) (selected []ast.Node, rest []ast.Node) {
	for _, child := range children {
		if child != nil && child.Kind() == kind {
			selected = append(selected, child)
			continue
		}
		rest = append(rest, child)
	}
	return selected, rest
}

// entry is one named child of a folded shape
type entry struct {
	name  string
	value ast.Node
	used  bool
}

// shape is an ordered list of named children. When every name is unique it
// is also indexed by name, so single-field shapes (a typed declaration) and
// repeating-field shapes (a parameter list) share one mechanism.
type shape struct {
	entries []*entry
	dict    map[string]*entry
	nested  []*shape
}

// fold names each child (token kind, group rule or node kind) and indexes
// the result by name if no name repeats
func fold(children []ast.Node) *shape {
	s := &shape{}
	dict := make(map[string]*entry, len(children))
	unique := true
	for _, child := range children {
		e := &entry{name: entryName(child), value: child}
		s.entries = append(s.entries, e)
		if _, dup := dict[e.name]; dup {
			unique = false
		}
		dict[e.name] = e
	}
	if unique {
		s.dict = dict
	}
	return s
}

func entryName(n ast.Node) string {
	if raw, ok := n.(*ast.Raw); ok {
		if raw.IsToken() {
			return raw.Token.Kind
		}
		return raw.Rule
	}
	if n == nil {
		return "<nil>"
	}
	return n.Kind().String()
}

// isDict reports whether the shape folded into a name-keyed mapping
func (s *shape) isDict() bool {
	return s.dict != nil
}

// text consumes the token named kind and returns its text
func (s *shape) text(kind string) (string, bool) {
	e, ok := s.dict[kind]
	if !ok {
		return "", false
	}
	raw, ok := e.value.(*ast.Raw)
	if !ok || !raw.IsToken() {
		return "", false
	}
	e.used = true
	return raw.Token.Text, true
}

// group consumes the group named rule and folds its children
func (s *shape) group(rule string) (*shape, bool) {
	e, ok := s.dict[rule]
	if !ok {
		return nil, false
	}
	raw, ok := e.value.(*ast.Raw)
	if !ok || raw.IsToken() {
		return nil, false
	}
	e.used = true
	inner := fold(raw.Children)
	s.nested = append(s.nested, inner)
	return inner, true
}

// nodes consumes every entry and returns the values in order
func (s *shape) nodes() []ast.Node {
	values := make([]ast.Node, len(s.entries))
	for i, e := range s.entries {
		e.used = true
		values[i] = e.value
	}
	return values
}

// leftover returns every unconsumed child, including those of consumed
// groups
func (s *shape) leftover() []ast.Node {
	var rest []ast.Node
	for _, e := range s.entries {
		if !e.used {
			rest = append(rest, e.value)
		}
	}
	for _, inner := range s.nested {
		rest = append(rest, inner.leftover()...)
	}
	return rest
}

func describeAll(nodes []ast.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = ast.Describe(n)
	}
	return out
}

// mismatch builds the error a constructor returns when it cannot digest
// its children
func mismatch(kind ast.Kind, rule string, line, col int, reason string, remainder []ast.Node) error {
	return &diagnostic.ShapeMismatchError{
		Kind:      kind.String(),
		Rule:      rule,
		Reason:    reason,
		Remainder: describeAll(remainder),
		Line:      line,
		Column:    col,
	}
}
