package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"resourceEditorAPI/internal/auth"
	"resourceEditorAPI/internal/handlers"
	"resourceEditorAPI/internal/metrics"
)

// scopedRoute represents a single API route
type scopedRoute struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
	Protected   bool // whether the route requires JWT
}

// Options configures the cross-cutting parts of the router.
type Options struct {
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter initializes all routes and returns an http.Handler
func NewRouter(verifier auth.TokenVerifier, operators handlers.OperatorHandlerInterface, sessions handlers.SessionsHandlerInterface, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	routes := []scopedRoute{
		// Public routes
		{
			Name:        "RegisterOperator",
			Method:      http.MethodPost,
			Pattern:     "/register",
			HandlerFunc: operators.Register,
		},
		{
			Name:        "LoginOperator",
			Method:      http.MethodPost,
			Pattern:     "/login",
			HandlerFunc: operators.Login,
		},

		// Protected routes
		{
			Name:        "ChangeOperatorPassword",
			Method:      http.MethodPut,
			Pattern:     "/operator/password",
			HandlerFunc: operators.ChangePassword,
			Protected:   true,
		},
		{
			Name:        "DeleteOperator",
			Method:      http.MethodDelete,
			Pattern:     "/operator",
			HandlerFunc: operators.Delete,
			Protected:   true,
		},
		{
			Name:        "CreateSession",
			Method:      http.MethodPost,
			Pattern:     "/sessions/",
			HandlerFunc: sessions.Create,
			Protected:   true,
		},
		{
			Name:        "GetSession",
			Method:      http.MethodGet,
			Pattern:     "/sessions/{id}",
			HandlerFunc: withSessionID(sessions.Get),
			Protected:   true,
		},
		{
			Name:        "SetSessionMode",
			Method:      http.MethodPut,
			Pattern:     "/sessions/{id}/mode",
			HandlerFunc: withSessionID(sessions.SetMode),
			Protected:   true,
		},
		{
			Name:        "SetSessionYAML",
			Method:      http.MethodPut,
			Pattern:     "/sessions/{id}/yaml",
			HandlerFunc: withSessionID(sessions.SetYAML),
			Protected:   true,
		},
		{
			Name:        "SetSessionForm",
			Method:      http.MethodPut,
			Pattern:     "/sessions/{id}/form",
			HandlerFunc: withSessionID(sessions.SetForm),
			Protected:   true,
		},
		{
			Name:        "EditSessionRows",
			Method:      http.MethodPost,
			Pattern:     "/sessions/{id}/rows",
			HandlerFunc: withSessionID(sessions.Rows),
			Protected:   true,
		},
		{
			Name:        "ImportSessionFile",
			Method:      http.MethodPost,
			Pattern:     "/sessions/{id}/import",
			HandlerFunc: withSessionID(sessions.Import),
			Protected:   true,
		},
		{
			Name:        "SetSessionSecretType",
			Method:      http.MethodPut,
			Pattern:     "/sessions/{id}/type",
			HandlerFunc: withSessionID(sessions.SetType),
			Protected:   true,
		},
		{
			Name:        "ListSecretTypes",
			Method:      http.MethodGet,
			Pattern:     "/secret-types",
			HandlerFunc: sessions.SecretTypes,
			Protected:   true,
		},
		{
			Name:        "SubmitSession",
			Method:      http.MethodPost,
			Pattern:     "/sessions/{id}/submit",
			HandlerFunc: withSessionID(sessions.Submit),
			Protected:   true,
		},
		{
			Name:        "DeleteSession",
			Method:      http.MethodDelete,
			Pattern:     "/sessions/{id}",
			HandlerFunc: withSessionID(sessions.Delete),
			Protected:   true,
		},
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet).Name("Health")
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet).Name("Metrics")

	for _, route := range routes {
		var handler http.Handler = route.HandlerFunc
		if route.Protected {
			handler = auth.JWTMiddleware(verifier, handler)
		}
		router.Handle(route.Pattern, handler).Methods(route.Method).Name(route.Name)
	}

	router.Use(recoveryMiddleware(opts.Logger), loggingMiddleware(opts.Logger))

	// bearer tokens travel in a header, so cookies and credentialed requests stay disabled
	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept-Language"},
	})
	return c.Handler(router)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// withSessionID extracts the session id from the path and injects it into the context
func withSessionID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		if id == "" {
			http.Error(w, "Session id required", http.StatusBadRequest)
			return
		}
		next(w, req.WithContext(auth.WithSessionID(req.Context(), id)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unknown"
			if cur := mux.CurrentRoute(r); cur != nil && cur.GetName() != "" {
				route = cur.GetName()
			}
			logger.Info("request",
				zap.String("route", route),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

func recoveryMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("handler panicked", zap.Any("panic", p), zap.String("path", r.URL.Path), zap.Stack("stack"))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
