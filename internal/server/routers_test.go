package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourceEditorAPI/internal/auth"
	"resourceEditorAPI/internal/handlers/mocks"
)

// recordingHandler implements both handler interfaces and records what reached it.
type recordingHandler struct {
	called    string
	operator  string
	sessionID string
	panicOn   string
}

func (h *recordingHandler) record(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if name == h.panicOn {
			panic("boom")
		}
		h.called = name
		h.operator, _ = auth.OperatorFromContext(r.Context())
		h.sessionID, _ = auth.SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}
}

func (h *recordingHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.record("Register")(w, r)
}
func (h *recordingHandler) Login(w http.ResponseWriter, r *http.Request) { h.record("Login")(w, r) }
func (h *recordingHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	h.record("ChangePassword")(w, r)
}
func (h *recordingHandler) Create(w http.ResponseWriter, r *http.Request) { h.record("Create")(w, r) }
func (h *recordingHandler) Get(w http.ResponseWriter, r *http.Request)    { h.record("Get")(w, r) }
func (h *recordingHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	h.record("SetMode")(w, r)
}
func (h *recordingHandler) SetYAML(w http.ResponseWriter, r *http.Request) {
	h.record("SetYAML")(w, r)
}
func (h *recordingHandler) SetForm(w http.ResponseWriter, r *http.Request) {
	h.record("SetForm")(w, r)
}
func (h *recordingHandler) Rows(w http.ResponseWriter, r *http.Request)   { h.record("Rows")(w, r) }
func (h *recordingHandler) Import(w http.ResponseWriter, r *http.Request) { h.record("Import")(w, r) }
func (h *recordingHandler) SetType(w http.ResponseWriter, r *http.Request) {
	h.record("SetType")(w, r)
}
func (h *recordingHandler) SecretTypes(w http.ResponseWriter, r *http.Request) {
	h.record("SecretTypes")(w, r)
}
func (h *recordingHandler) Submit(w http.ResponseWriter, r *http.Request) { h.record("Submit")(w, r) }
func (h *recordingHandler) Delete(w http.ResponseWriter, r *http.Request) { h.record("Delete")(w, r) }

func newTestRouter(verifyErr error) (http.Handler, *recordingHandler, *recordingHandler) {
	verifier := &mocks.MockJWTManager{Claims: &auth.Claims{Operator: "alice"}, VerifyErr: verifyErr}
	operators := &recordingHandler{}
	sessions := &recordingHandler{panicOn: "Submit"}
	return NewRouter(verifier, operators, sessions, Options{AllowedOrigins: []string{"https://console.example"}}), operators, sessions
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		verifyErr      error
		expectedStatus int
		expectedCall   string
		expectedID     string
		onSessions     bool
	}{
		{name: "register is public", method: http.MethodPost, path: "/register", expectedStatus: http.StatusTeapot, expectedCall: "Register"},
		{name: "login is public", method: http.MethodPost, path: "/login", expectedStatus: http.StatusTeapot, expectedCall: "Login"},
		{name: "wrong method", method: http.MethodGet, path: "/login", expectedStatus: http.StatusMethodNotAllowed},
		{name: "password change needs a token", method: http.MethodPut, path: "/operator/password", expectedStatus: http.StatusUnauthorized},
		{name: "invalid token", method: http.MethodPut, path: "/operator/password", token: "bad", verifyErr: errors.New("expired"), expectedStatus: http.StatusUnauthorized},
		{name: "password change", method: http.MethodPut, path: "/operator/password", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "ChangePassword"},
		{name: "operator delete", method: http.MethodDelete, path: "/operator", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "Delete"},
		{name: "open session", method: http.MethodPost, path: "/sessions/", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "Create", onSessions: true},
		{name: "get session", method: http.MethodGet, path: "/sessions/abc", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "Get", expectedID: "abc", onSessions: true},
		{name: "switch mode", method: http.MethodPut, path: "/sessions/abc/mode", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "SetMode", expectedID: "abc", onSessions: true},
		{name: "edit yaml", method: http.MethodPut, path: "/sessions/abc/yaml", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "SetYAML", expectedID: "abc", onSessions: true},
		{name: "edit form", method: http.MethodPut, path: "/sessions/abc/form", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "SetForm", expectedID: "abc", onSessions: true},
		{name: "edit rows", method: http.MethodPost, path: "/sessions/abc/rows", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "Rows", expectedID: "abc", onSessions: true},
		{name: "import file", method: http.MethodPost, path: "/sessions/abc/import", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "Import", expectedID: "abc", onSessions: true},
		{name: "change secret type", method: http.MethodPut, path: "/sessions/abc/type", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "SetType", expectedID: "abc", onSessions: true},
		{name: "list secret types", method: http.MethodGet, path: "/secret-types", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "SecretTypes", onSessions: true},
		{name: "secret types need a token", method: http.MethodGet, path: "/secret-types", expectedStatus: http.StatusUnauthorized},
		{name: "close session", method: http.MethodDelete, path: "/sessions/abc", token: "tok", expectedStatus: http.StatusTeapot, expectedCall: "Delete", expectedID: "abc", onSessions: true},
		{name: "panicking handler", method: http.MethodPost, path: "/sessions/abc/submit", token: "tok", expectedStatus: http.StatusInternalServerError},
		{name: "unknown path", method: http.MethodGet, path: "/secrets", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, operators, sessions := newTestRouter(tt.verifyErr)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedCall == "" {
				return
			}

			target := operators
			if tt.onSessions {
				target = sessions
			}
			assert.Equal(t, tt.expectedCall, target.called)
			assert.Equal(t, tt.expectedID, target.sessionID)
			if tt.token != "" {
				assert.Equal(t, "alice", target.operator)
			}
		})
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router, _, _ := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "resource_editor_sessions_active"))
}

func TestRouter_CORS(t *testing.T) {
	tests := []struct {
		name          string
		allowed       []string
		origin        string
		expectedAllow string
	}{
		{name: "allowed origin", allowed: []string{"https://console.example"}, origin: "https://console.example", expectedAllow: "https://console.example"},
		{name: "foreign origin", allowed: []string{"https://console.example"}, origin: "https://evil.example", expectedAllow: ""},
		{name: "wildcard does not reflect the origin", allowed: []string{"*"}, origin: "https://evil.example", expectedAllow: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mocks.MockJWTManager{Claims: &auth.Claims{Operator: "alice"}}
			router := NewRouter(verifier, &recordingHandler{}, &recordingHandler{}, Options{AllowedOrigins: tt.allowed})

			req := httptest.NewRequest(http.MethodOptions, "/sessions/abc", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			req.Header.Set("Access-Control-Request-Headers", "Authorization")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			// bearer tokens need no credentialed requests
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}
