package auth

// TokenIssuer is what the login handler needs from a JWTManager.
type TokenIssuer interface {
	Generate(operator string) (string, error)
}

// TokenVerifier is what the middleware needs from a JWTManager.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}
