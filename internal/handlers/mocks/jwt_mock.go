package mocks

import "resourceEditorAPI/internal/auth"

// MockJWTManager implements auth.TokenIssuer and auth.TokenVerifier for tests.
type MockJWTManager struct {
	Token       string
	GenerateErr error
	VerifyErr   error
	Claims      *auth.Claims

	// last operator a token was generated for
	Operator string
}

func (m *MockJWTManager) Generate(operator string) (string, error) {
	m.Operator = operator
	return m.Token, m.GenerateErr
}

func (m *MockJWTManager) Verify(token string) (*auth.Claims, error) {
	return m.Claims, m.VerifyErr
}
