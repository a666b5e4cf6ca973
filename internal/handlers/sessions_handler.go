package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"resourceEditorAPI/internal/auth"
	"resourceEditorAPI/internal/editor"
	"resourceEditorAPI/internal/kinds"
	"resourceEditorAPI/internal/kv"
	"resourceEditorAPI/internal/metrics"
	"resourceEditorAPI/internal/models"
	"resourceEditorAPI/internal/session"
)

// SessionsHandler exposes edit sessions: opening, editing in either mode and submitting.
type SessionsHandler struct {
	Store  *session.Store
	Client editor.Submitter
	Logger *zap.Logger
}

func NewSessionsHandler(store *session.Store, client editor.Submitter, logger *zap.Logger) *SessionsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionsHandler{Store: store, Client: client, Logger: logger}
}

// Create handles POST /sessions/
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	operator, ok := auth.OperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.SessionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Locale == "" {
		req.Locale = r.Header.Get("Accept-Language")
	}

	sess, err := h.Store.Create(r.Context(), operator, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, h.Logger, http.StatusCreated, h.state(sess))
}

// Get handles GET /sessions/{id}. Pending notifications are drained into the response.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.Logger, http.StatusOK, h.state(sess))
}

// SetMode handles PUT /sessions/{id}/mode
func (h *SessionsHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.ModeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	mode, err := editor.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := sess.Editor.SetMode(mode); err != nil {
		if errors.Is(err, editor.ErrNotInitialized) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		metrics.ModeSwitchesTotal.WithLabelValues(string(mode), "parse_error").Inc()
		titleKey := "yaml_format_error_message"
		if mode == editor.ModeYAML {
			titleKey = "resource_encode_fail"
		}
		writeJSON(w, h.Logger, http.StatusUnprocessableEntity, models.ErrorResponse{
			Title:         sess.Translator.Get(titleKey),
			Content:       err.Error(),
			Notifications: sess.Notifications.Drain(),
		})
		return
	}

	metrics.ModeSwitchesTotal.WithLabelValues(string(mode), "ok").Inc()
	writeJSON(w, h.Logger, http.StatusOK, h.state(sess))
}

// SetYAML handles PUT /sessions/{id}/yaml
func (h *SessionsHandler) SetYAML(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.YAMLRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := sess.Editor.SetYAML(req.YAML); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, h.Logger, http.StatusOK, h.state(sess))
}

// SetForm handles PUT /sessions/{id}/form
func (h *SessionsHandler) SetForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.FormRequest
	if err := decodeJSON(r, &req); err != nil || len(req.Form) == 0 {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := sess.Editor.SetFormJSON(req.Form); err != nil {
		status := http.StatusConflict
		if errors.Is(err, session.ErrInvalidForm) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, h.Logger, http.StatusOK, h.state(sess))
}

// Rows handles POST /sessions/{id}/rows, adding or removing a data row in form mode.
func (h *SessionsHandler) Rows(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	de, ok := sess.Editor.(session.DataEditor)
	if !ok {
		http.Error(w, "Kind has no data rows", http.StatusBadRequest)
		return
	}

	var req models.RowRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	var err error
	switch req.Op {
	case "add":
		err = de.AddRow(req.Index)
	case "remove":
		err = de.RemoveRow(req.Index)
	default:
		http.Error(w, "Unknown row operation", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, h.Logger, http.StatusOK, h.state(sess))
}

// Import handles POST /sessions/{id}/import. Binary files are refused.
func (h *SessionsHandler) Import(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	de, ok := sess.Editor.(session.DataEditor)
	if !ok {
		http.Error(w, "Kind has no data rows", http.StatusBadRequest)
		return
	}

	var req models.ImportRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	err := de.Import(req.Name, req.Content)
	switch {
	case err == nil:
		writeJSON(w, h.Logger, http.StatusOK, h.state(sess))
	case errors.Is(err, kv.ErrBinaryContent):
		writeJSON(w, h.Logger, http.StatusUnprocessableEntity, models.ErrorResponse{
			Title:         sess.Translator.Get("fileupload_binary_unsupported"),
			Content:       req.Name,
			Notifications: sess.Notifications.Drain(),
		})
	default:
		http.Error(w, err.Error(), http.StatusConflict)
	}
}

// SetType handles PUT /sessions/{id}/type. The data of the previous type is discarded.
func (h *SessionsHandler) SetType(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	se, ok := sess.Editor.(session.SecretEditor)
	if !ok {
		http.Error(w, "Only Secrets have a type", http.StatusBadRequest)
		return
	}

	var req models.SecretTypeRequest
	if err := decodeJSON(r, &req); err != nil || req.Type == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := se.SetSecretType(kinds.SecretType(req.Type)); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, h.Logger, http.StatusOK, h.state(sess))
}

// SecretTypes handles GET /secret-types, listing the selectable types in the caller's language.
func (h *SessionsHandler) SecretTypes(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = r.Header.Get("Accept-Language")
	}
	tr := h.Store.Translator(locale)

	options := make([]models.SecretTypeOption, 0, len(kinds.SecretTypes))
	for _, t := range kinds.SecretTypes {
		options = append(options, models.SecretTypeOption{Type: string(t), Name: kinds.TypeDisplayName(t, tr)})
	}
	writeJSON(w, h.Logger, http.StatusOK, options)
}

// Submit handles POST /sessions/{id}/submit. A new resource is created, an existing one updated.
func (h *SessionsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	operation := "update"
	if sess.Identity.IsNew() {
		operation = "create"
	}
	count := func(outcome string) {
		metrics.SubmitsTotal.WithLabelValues(metrics.KindLabel(sess.Identity.Kind), operation, outcome).Inc()
	}

	out, err := sess.Editor.Submit(r.Context(), h.Client, sess.Identity)
	if err == nil {
		count("success")
		h.Logger.Info("resource submitted",
			zap.String("session_id", sess.ID),
			zap.Stringer("resource", sess.Identity),
			zap.String("operation", operation))
		writeJSON(w, h.Logger, http.StatusOK, models.SubmitResponse{Resource: out})
		return
	}

	var (
		rowErrs kv.ValidationErrors
		serr    *editor.SubmitError
	)
	switch {
	case errors.Is(err, editor.ErrSubmitInProgress), errors.Is(err, editor.ErrNotInitialized):
		count("busy")
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &serr):
		count("failed")
		writeJSON(w, h.Logger, http.StatusBadGateway, models.ErrorResponse{
			Title:         serr.Title,
			Content:       serr.Content,
			Notifications: sess.Notifications.Drain(),
		})
	case errors.As(err, &rowErrs):
		count("invalid")
		writeJSON(w, h.Logger, http.StatusUnprocessableEntity, models.ErrorResponse{
			Title:         sess.Translator.Get("resource_validation_fail"),
			Content:       rowErrs.Error(),
			RowErrors:     rowErrs,
			Notifications: sess.Notifications.Drain(),
		})
	default:
		count("invalid")
		writeJSON(w, h.Logger, http.StatusUnprocessableEntity, models.ErrorResponse{
			Title:         sess.Translator.Get("resource_validation_fail"),
			Content:       err.Error(),
			Notifications: sess.Notifications.Drain(),
		})
	}
}

// Delete handles DELETE /sessions/{id}
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.Store.Delete(sess.ID); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the session addressed by the request. Sessions of other operators are reported as missing.
func (h *SessionsHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	operator, ok := auth.OperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	id, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Session id required", http.StatusBadRequest)
		return nil, false
	}

	sess, err := h.Store.Get(id)
	if err != nil || sess.Operator != operator {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (h *SessionsHandler) state(sess *session.Session) models.SessionResponse {
	resp := models.SessionResponse{
		ID:             sess.ID,
		Kind:           sess.Identity.Kind,
		Namespace:      sess.Identity.Namespace,
		Name:           sess.Identity.Name,
		Mode:           string(sess.Editor.Mode()),
		YAML:           sess.Editor.YAML(),
		Loading:        sess.Load.Loading(),
		Initialized:    sess.Editor.Initialized(),
		Submitted:      sess.Editor.Submitted(),
		SubmitDisabled: sess.Editor.SubmitDisabled(),
	}
	// the form model is only current in form mode
	if resp.Initialized && resp.Mode == string(editor.ModeForm) {
		form, err := sess.Editor.FormJSON()
		if err != nil {
			h.Logger.Warn("failed to encode form", zap.String("session_id", sess.ID), zap.Error(err))
		} else {
			resp.Form = form
		}
		if de, ok := sess.Editor.(session.DataEditor); ok {
			resp.RowHeights = de.RowHeights()
		}
	}
	if se, ok := sess.Editor.(session.SecretEditor); ok && resp.Initialized {
		resp.SecretType = string(se.SecretType())
	}
	resp.Notifications = sess.Notifications.Drain()
	return resp
}
