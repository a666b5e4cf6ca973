package handlers

import "net/http"

// OperatorHandlerInterface defines the behavior the router expects from any operator handler implementation (real or mock).
type OperatorHandlerInterface interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// SessionsHandlerInterface defines the behavior expected from edit session handlers.
type SessionsHandlerInterface interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SetMode(w http.ResponseWriter, r *http.Request)
	SetYAML(w http.ResponseWriter, r *http.Request)
	SetForm(w http.ResponseWriter, r *http.Request)
	Rows(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	SetType(w http.ResponseWriter, r *http.Request)
	SecretTypes(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

var (
	_ OperatorHandlerInterface = (*OperatorHandler)(nil)
	_ SessionsHandlerInterface = (*SessionsHandler)(nil)
)
