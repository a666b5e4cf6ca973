package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/editor"
)

var ErrNotConvertible = errors.New("resource cannot be converted")

// blank returns an editor of kind seeded with an empty resource, so it accepts edits right away.
func blank(kind string, opts editor.Options) Editor {
	ed := NewEditor(kind, opts)
	source := editor.NewSubject[codec.Resource]()
	defer ed.Bind(source)()
	source.Publish(codec.Resource{})
	return ed
}

// ToForm decodes YAML text and returns the form model of kind as JSON.
func ToForm(kind, text string, opts editor.Options) (json.RawMessage, error) {
	ed := blank(kind, opts)
	if err := ed.SetMode(editor.ModeYAML); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConvertible, err)
	}
	if err := ed.SetYAML(text); err != nil {
		return nil, err
	}
	if err := ed.SetMode(editor.ModeForm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConvertible, err)
	}
	return ed.FormJSON()
}

// ToYAML renders a JSON form model of kind as YAML text.
func ToYAML(kind string, form json.RawMessage, opts editor.Options) (string, error) {
	ed := blank(kind, opts)
	if err := ed.SetFormJSON(form); err != nil {
		return "", err
	}
	if err := ed.SetMode(editor.ModeYAML); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotConvertible, err)
	}
	return ed.YAML(), nil
}
