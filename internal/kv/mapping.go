package kv

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mapping is a string map that remembers insertion order.
// Setting an existing key keeps its original position.
type Mapping struct {
	keys   []string
	values map[string]string
}

// NewMapping builds a Mapping from alternating key, value arguments.
func NewMapping(pairs ...string) *Mapping {
	m := &Mapping{}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func (m *Mapping) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Mapping) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// UnmarshalYAML keeps the document order of a YAML mapping. Scalar values are taken verbatim.
// Data adapters use it to lay out rows in the order keys were written.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	*m = Mapping{}
	if node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q is not a scalar", v.Line, k.Value)
		}
		if v.Tag == "!!null" {
			m.Set(k.Value, "")
			continue
		}
		m.Set(k.Value, v.Value)
	}
	return nil
}
