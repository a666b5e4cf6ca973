// Package kinds adapts typed Kubernetes resources to the form models edited in a session.
package kinds

import (
	"fmt"
	"maps"
	"sort"

	"gopkg.in/yaml.v3"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/kv"
)

// DataForm is the form model of kinds carrying a string "data" map.
// Object holds every other field of the resource untouched.
type DataForm struct {
	Object codec.Resource `json:"object"`
	Data   kv.Rows        `json:"data"`
}

// dataAdapter lifts "data" into rows, transforming each value on the way in and out.
// decode may keep a value as is and name the encoding it stays in.
type dataAdapter struct {
	decode func(string) (value, encoding string, err error)
	encode func(value, encoding string) string
}

func (a dataAdapter) AdaptResourceModel(raw codec.Resource) (DataForm, error) {
	return a.adapt(raw, nil)
}

// AdaptDocument lays out rows in the order "data" has in the YAML document.
func (a dataAdapter) AdaptDocument(raw codec.Resource, doc *yaml.Node) (DataForm, error) {
	return a.adapt(raw, dataOrder(doc))
}

func (a dataAdapter) adapt(raw codec.Resource, order []string) (DataForm, error) {
	obj := maps.Clone(raw)
	if obj == nil {
		obj = codec.Resource{}
	}
	data, present := obj["data"]
	delete(obj, "data")

	form := DataForm{Object: obj, Data: kv.Rows{{}}}
	if !present || data == nil {
		return form, nil
	}

	entries, ok := data.(map[string]any)
	if !ok {
		return DataForm{}, fmt.Errorf("data must be a mapping, got %T", data)
	}

	m := kv.NewMapping()
	encodings := make(map[string]string)
	for _, k := range orderedKeys(entries, order) {
		s, ok := entries[k].(string)
		if !ok {
			return DataForm{}, fmt.Errorf("data.%s must be a string, got %T", k, entries[k])
		}
		v, enc, err := a.decode(s)
		if err != nil {
			return DataForm{}, fmt.Errorf("data.%s: %w", k, err)
		}
		m.Set(k, v)
		if enc != "" {
			encodings[k] = enc
		}
	}

	form.Data = kv.FromMapping(m)
	for i := range form.Data {
		form.Data[i].Encoding = encodings[form.Data[i].Key]
	}
	return form, nil
}

// AdaptFormModel drops rows without a key and omits "data" when nothing is left.
func (a dataAdapter) AdaptFormModel(form DataForm) (codec.Resource, error) {
	out := maps.Clone(form.Object)
	if out == nil {
		out = codec.Resource{}
	}
	delete(out, "data")

	m := kv.ToMapping(form.Data)
	if m.Len() == 0 {
		return out, nil
	}

	// the last row of a key wins, its encoding with it
	encodings := make(map[string]string, m.Len())
	for _, row := range form.Data {
		if row.Key != "" {
			encodings[row.Key] = row.Encoding
		}
	}

	data := make(map[string]any, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		data[k] = a.encode(v, encodings[k])
	}
	out["data"] = data
	return out, nil
}

// dataOrder reads the keys of "data" in document order, nil when doc has no such mapping.
func dataOrder(doc *yaml.Node) []string {
	if doc == nil || doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "data" {
			continue
		}
		var m kv.Mapping
		if err := doc.Content[i+1].Decode(&m); err != nil {
			return nil
		}
		return m.Keys()
	}
	return nil
}

// orderedKeys returns the keys of entries listed in order first, the rest sorted.
func orderedKeys(entries map[string]any, order []string) []string {
	keys := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, k := range order {
		if _, ok := entries[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	rest := make([]string, 0, len(entries)-len(keys))
	for k := range entries {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func (dataAdapter) Validate(form DataForm) error {
	if errs := kv.Validate(form.Data); len(errs) > 0 {
		return errs
	}
	return nil
}

func verbatim(s string) (string, string, error) { return s, "", nil }

func same(s, _ string) string { return s }

// ConfigMapAdapter edits ConfigMap data as plain rows.
type ConfigMapAdapter struct {
	dataAdapter
}

func NewConfigMapAdapter() ConfigMapAdapter {
	return ConfigMapAdapter{dataAdapter{decode: verbatim, encode: same}}
}
