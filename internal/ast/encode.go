package ast

import (
	yaml "gopkg.in/yaml.v2"
)

// Encode converts a node into an ordered YAML document value. Every mapping
// starts with the node kind.
func Encode(node Node) interface{} {
	if node == nil {
		return nil
	}
	doc := yaml.MapSlice{{Key: "kind", Value: node.Kind().String()}}

	switch n := node.(type) {
	case *Method:
		doc = append(doc, yaml.MapItem{Key: "name", Value: n.Name})
	case *Decorator:
		doc = append(doc, yaml.MapItem{Key: "type", Value: n.Type})
	case *VariableRef:
		doc = append(doc, yaml.MapItem{Key: "name", Value: n.Name}, typeItem(n.Type))
	case *Parameter:
		doc = append(doc, yaml.MapItem{Key: "name", Value: n.Name}, typeItem(n.Type))
	case *StorageVariable:
		doc = append(doc,
			yaml.MapItem{Key: "name", Value: n.Name},
			typeItem(n.Type),
			yaml.MapItem{Key: "is_public", Value: n.IsPublic},
		)
	case *AttributeRef:
		doc = append(doc, yaml.MapItem{Key: "property", Value: n.Property}, typeItem(n.Type))
	case *Raw:
		doc = append(doc, yaml.MapItem{Key: "residual", Value: n.String()})
		return doc
	}

	for _, f := range node.Fields() {
		if !f.List {
			doc = append(doc, yaml.MapItem{Key: f.Name, Value: Encode(f.Value[0])})
			continue
		}
		items := make([]interface{}, len(f.Value))
		for i, child := range f.Value {
			items[i] = Encode(child)
		}
		doc = append(doc, yaml.MapItem{Key: f.Name, Value: items})
	}
	return doc
}

func typeItem(t Type) yaml.MapItem {
	if !t.Resolved() {
		return yaml.MapItem{Key: "type", Value: nil}
	}
	return yaml.MapItem{Key: "type", Value: string(t)}
}

// MarshalYAML renders a node as a YAML document
func MarshalYAML(node Node) ([]byte, error) {
	return yaml.Marshal(Encode(node))
}
