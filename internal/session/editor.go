// Package session keeps the open edit sessions of the API.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/editor"
	"resourceEditorAPI/internal/kinds"
	"resourceEditorAPI/internal/kv"
	"resourceEditorAPI/internal/models"
)

// Editor is a coordinator with its form model exchanged as JSON.
type Editor interface {
	Mode() editor.Mode
	SetMode(mode editor.Mode) error
	YAML() string
	SetYAML(text string) error
	FormJSON() (json.RawMessage, error)
	SetFormJSON(raw json.RawMessage) error
	Initialized() bool
	Submitted() bool
	SubmitDisabled() bool
	Bind(source *editor.Subject[codec.Resource]) func()
	Submit(ctx context.Context, s editor.Submitter, id models.Identity) (codec.Resource, error)
}

type jsonEditor[S any] struct {
	*editor.Coordinator[S]
}

func (e jsonEditor[S]) FormJSON() (json.RawMessage, error) {
	b, err := json.Marshal(e.FormModel())
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	return b, nil
}

func (e jsonEditor[S]) SetFormJSON(raw json.RawMessage) error {
	var form S
	if err := json.Unmarshal(raw, &form); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return e.SetFormModel(form)
}

func wrap[S any](adapter editor.ResourceAdapter[S], opts editor.Options) jsonEditor[S] {
	return jsonEditor[S]{editor.NewCoordinator(adapter, opts)}
}

// DataEditor is implemented by editors of kinds carrying a "data" map.
// Row edits follow the form mode rules of SetFormJSON.
type DataEditor interface {
	AddRow(index int) error
	RemoveRow(index int) error
	Import(name, content string) error
	RowHeights() []int
}

// SecretEditor also switches the type of a Secret.
type SecretEditor interface {
	DataEditor
	SecretType() kinds.SecretType
	SetSecretType(t kinds.SecretType) error
}

type dataEditor struct {
	jsonEditor[kinds.DataForm]
}

func (e dataEditor) rows(fn func(kv.Rows) (kv.Rows, error)) error {
	return e.UpdateFormModel(func(form kinds.DataForm) (kinds.DataForm, error) {
		rows, err := fn(form.Data)
		if err != nil {
			return form, err
		}
		form.Data = rows
		return form, nil
	})
}

func (e dataEditor) AddRow(index int) error {
	return e.rows(func(r kv.Rows) (kv.Rows, error) { return kv.AddRow(r, index), nil })
}

func (e dataEditor) RemoveRow(index int) error {
	return e.rows(func(r kv.Rows) (kv.Rows, error) { return kv.RemoveRow(r, index), nil })
}

// Import adds an uploaded file as a row. Binary content is rejected with kv.ErrBinaryContent.
func (e dataEditor) Import(name, content string) error {
	return e.rows(func(r kv.Rows) (kv.Rows, error) { return kv.ImportEntry(r, name, content) })
}

// RowHeights is the textarea height of every row value.
func (e dataEditor) RowHeights() []int {
	rows := e.FormModel().Data
	heights := make([]int, len(rows))
	for i, row := range rows {
		heights[i] = kv.TextareaRows(row.Value)
	}
	return heights
}

type secretEditor struct {
	dataEditor
}

func (e secretEditor) SecretType() kinds.SecretType {
	return kinds.TypeOf(e.FormModel())
}

// SetSecretType changes the type and clears the data of the previous one.
func (e secretEditor) SetSecretType(t kinds.SecretType) error {
	return e.UpdateFormModel(func(form kinds.DataForm) (kinds.DataForm, error) {
		return kinds.ChangeType(form, t), nil
	})
}

var (
	_ SecretEditor = secretEditor{}
	_ DataEditor   = dataEditor{}
)

// NewEditor picks the adapter of kind. Kinds without one are edited as plain resources.
func NewEditor(kind string, opts editor.Options) Editor {
	switch models.CanonicalKind(kind) {
	case "Secret":
		return secretEditor{dataEditor{wrap[kinds.DataForm](kinds.NewSecretAdapter(), opts)}}
	case "ConfigMap":
		return dataEditor{wrap[kinds.DataForm](kinds.NewConfigMapAdapter(), opts)}
	case "PersistentVolumeClaim":
		return wrap[kinds.PVCForm](kinds.PVCAdapter{}, opts)
	default:
		return wrap[codec.Resource](editor.Identity{}, opts)
	}
}
