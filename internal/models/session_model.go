package models

import (
	"encoding/json"

	"resourceEditorAPI/internal/kv"
	"resourceEditorAPI/internal/notify"
)

// SessionRequest represents the payload for opening an edit session
type SessionRequest struct {
	Kind      string `json:"kind" binding:"required"`
	Namespace string `json:"namespace" binding:"required"`
	Name      string `json:"name,omitempty"`   // empty for the create flow
	Locale    string `json:"locale,omitempty"` // falls back to Accept-Language
}

// ModeRequest switches a session between "form" and "yaml"
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// YAMLRequest replaces the YAML text of a session in yaml mode
type YAMLRequest struct {
	YAML string `json:"yaml"`
}

// FormRequest replaces the form model of a session in form mode
type FormRequest struct {
	Form json.RawMessage `json:"form"`
}

// RowRequest adds a blank row before Index or removes the row at Index
type RowRequest struct {
	Op    string `json:"op" binding:"required"` // "add" or "remove"
	Index int    `json:"index"`
}

// ImportRequest adds an uploaded text file as a data row named after it
type ImportRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}

// SecretTypeRequest changes the type of a Secret, discarding its data
type SecretTypeRequest struct {
	Type string `json:"type" binding:"required"`
}

// SecretTypeOption is one selectable Secret type with its display name
type SecretTypeOption struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// SessionResponse is the state of an edit session
type SessionResponse struct {
	ID             string                `json:"id"`
	Kind           string                `json:"kind"`
	Namespace      string                `json:"namespace"`
	Name           string                `json:"name,omitempty"`
	Mode           string                `json:"mode"`
	YAML           string                `json:"yaml"`
	Form           json.RawMessage       `json:"form,omitempty"`
	RowHeights     []int                 `json:"rowHeights,omitempty"` // textarea height per data row
	SecretType     string                `json:"secretType,omitempty"`
	Loading        bool                  `json:"loading"`
	Initialized    bool                  `json:"initialized"`
	Submitted      bool                  `json:"submitted"`
	SubmitDisabled bool                  `json:"submitDisabled"`
	Notifications  []notify.Notification `json:"notifications,omitempty"`
}

// SubmitResponse is returned after a successful create or update
type SubmitResponse struct {
	Resource map[string]any `json:"resource"`
}

// ErrorResponse carries a notification-style error with optional row errors
type ErrorResponse struct {
	Title         string                `json:"title"`
	Content       string                `json:"content"`
	RowErrors     kv.ValidationErrors   `json:"rowErrors,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}
