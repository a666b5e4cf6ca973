package editor

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"resourceEditorAPI/internal/codec"
)

// volatileFields are server-owned; resubmitting them conflicts with concurrent server-side changes.
var volatileFields = [][]string{
	{"metadata", "resourceVersion"},
	{"metadata", "uid"},
	{"metadata", "creationTimestamp"},
	{"metadata", "generation"},
	{"metadata", "managedFields"},
	{"metadata", "selfLink"},
	{"status"},
}

// StripVolatile returns a JSON-normalized copy of r without server-assigned fields.
func StripVolatile(r codec.Resource) (codec.Resource, error) {
	normalized, err := codec.Normalize(r)
	if err != nil {
		return nil, err
	}
	out, ok := normalized.(codec.Resource)
	if !ok {
		return codec.Resource{}, nil
	}
	for _, path := range volatileFields {
		unstructured.RemoveNestedField(out, path...)
	}
	return out, nil
}
