package editor

import (
	"gopkg.in/yaml.v3"

	"resourceEditorAPI/internal/codec"
)

// ResourceAdapter shapes a decoded resource for editing and back.
// AdaptFormModel(AdaptResourceModel(x)) must reconstruct x for every valid x.
type ResourceAdapter[S any] interface {
	// AdaptResourceModel runs after decode, before the value enters the form.
	AdaptResourceModel(raw codec.Resource) (S, error)
	// AdaptFormModel runs before encode, when the value leaves the form.
	AdaptFormModel(form S) (codec.Resource, error)
}

// Validator is implemented by adapters whose form model can be invalid.
// Validation errors block submission only.
type Validator[S any] interface {
	Validate(form S) error
}

// DocumentAdapter is implemented by adapters that read key order from the YAML text.
// It is used instead of AdaptResourceModel whenever the resource comes from YAML.
type DocumentAdapter[S any] interface {
	AdaptDocument(raw codec.Resource, doc *yaml.Node) (S, error)
}

// Identity passes resources through unchanged.
type Identity struct{}

func (Identity) AdaptResourceModel(raw codec.Resource) (codec.Resource, error) {
	if raw == nil {
		return codec.Resource{}, nil
	}
	return raw, nil
}

func (Identity) AdaptFormModel(form codec.Resource) (codec.Resource, error) {
	if form == nil {
		return codec.Resource{}, nil
	}
	return form, nil
}
