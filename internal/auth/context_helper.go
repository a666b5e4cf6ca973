package auth

import "context"

type contextKey string

const (
	OperatorKey  contextKey = "operator"
	SessionIDKey contextKey = "sessionID"
)

// WithOperator stores the authenticated operator name
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, OperatorKey, operator)
}

// OperatorFromContext returns the operator set by JWTMiddleware
func OperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(OperatorKey).(string)
	return operator, ok && operator != ""
}

// WithSessionID stores the edit session addressed by the request path
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}
