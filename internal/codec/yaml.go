// Package codec converts resources to and from YAML text.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// MultiDocumentWarning is the message key emitted when a stream holds more than one document.
const MultiDocumentWarning = "multi_yaml_resource_warning"

// ErrEncode marks a resource that could not be serialized.
var ErrEncode = errors.New("failed to encode resource as yaml")

// Resource is an opaque structured object with JSON-compatible values.
type Resource = map[string]any

// ParseError is returned for malformed YAML. It is distinct from an empty result.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Warner receives non-fatal warnings by message key.
type Warner interface {
	Warn(key string)
}

// Codec encodes and decodes resources.
type Codec struct {
	logger *zap.Logger
	warner Warner
}

func New(logger *zap.Logger, warner Warner) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{logger: logger, warner: warner}
}

// Encode normalizes v through JSON (dropping what JSON cannot carry) and dumps it as YAML.
// Failures are logged; the caller gets no text.
func (c *Codec) Encode(v any) (string, error) {
	normalized, err := Normalize(v)
	if err != nil {
		c.logger.Error("failed to normalize resource", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}

	out, err := sigsyaml.Marshal(normalized)
	if err != nil {
		c.logger.Error("failed to dump resource", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return string(out), nil
}

// Decode parses a possibly multi-document stream and returns the first document.
// Empty input, "undefined" and non-mapping documents decode to an empty resource.
func (c *Codec) Decode(text string) (Resource, error) {
	res, _, err := c.DecodeDocument(text)
	return res, err
}

// DecodeDocument is Decode that also returns the mapping node of the first document,
// which keeps the key order of the text. The node is nil when Decode yields an empty resource.
func (c *Codec) DecodeDocument(text string) (Resource, *yaml.Node, error) {
	docs, err := documents(text)
	if err != nil {
		return nil, nil, err
	}

	if len(docs) > 1 && c.warner != nil {
		c.warner.Warn(MultiDocumentWarning)
	}
	if len(docs) == 0 {
		return Resource{}, nil, nil
	}

	root := docs[0]
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Resource{}, nil, nil
	}

	var raw any
	if err := root.Decode(&raw); err != nil {
		return nil, nil, &ParseError{Err: err}
	}
	normalized, err := Normalize(raw)
	if err != nil {
		return nil, nil, &ParseError{Err: err}
	}

	res, ok := normalized.(Resource)
	if !ok {
		return Resource{}, nil, nil
	}
	return res, root, nil
}

// documents reads every document of the stream, dropping trailing empty ones.
func documents(text string) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var docs []*yaml.Node
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		docs = append(docs, &n)
	}

	for len(docs) > 0 && isEmptyDocument(docs[len(docs)-1]) {
		docs = docs[:len(docs)-1]
	}
	return docs, nil
}

func isEmptyDocument(n *yaml.Node) bool {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return true
		}
		n = n.Content[0]
	}
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// Normalize round-trips v through JSON so the result only holds JSON types
// (map[string]any, []any, string, float64, bool, nil).
func Normalize(v any) (any, error) {
	b, err := json.Marshal(stringKeys(v))
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// stringKeys rewrites map[any]any produced for non-string YAML keys.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = stringKeys(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = stringKeys(val)
		}
		return s
	default:
		return v
	}
}
