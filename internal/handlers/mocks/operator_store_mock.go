package mocks

import (
	"fmt"

	"resourceEditorAPI/internal/k8s"
)

// MockOperatorStore implements the k8s.OperatorStore interface for tests.
type MockOperatorStore struct {
	// call flags for assertions
	CreateCalled bool
	GetCalled    bool
	UpdateCalled bool
	DeleteCalled bool

	// forceable errors (set in tests)
	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error

	// Key - operator name, value - password hash
	Hashes map[string]string
}

func NewMockOperatorStore() *MockOperatorStore {
	return &MockOperatorStore{Hashes: make(map[string]string)}
}

func (m *MockOperatorStore) CreateOperator(name, passwordHash string) error {
	m.CreateCalled = true
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.Hashes[name]; ok {
		return fmt.Errorf("%w: %s", k8s.ErrOperatorExists, name)
	}
	m.Hashes[name] = passwordHash
	return nil
}

func (m *MockOperatorStore) OperatorPasswordHash(name string) (string, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return "", m.GetErr
	}
	hash, ok := m.Hashes[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", k8s.ErrOperatorNotFound, name)
	}
	return hash, nil
}

func (m *MockOperatorStore) UpdateOperatorPassword(name, passwordHash string) error {
	m.UpdateCalled = true
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Hashes[name]; !ok {
		return fmt.Errorf("%w: %s", k8s.ErrOperatorNotFound, name)
	}
	m.Hashes[name] = passwordHash
	return nil
}

func (m *MockOperatorStore) DeleteOperator(name string) error {
	m.DeleteCalled = true
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Hashes[name]; !ok {
		return fmt.Errorf("%w: %s", k8s.ErrOperatorNotFound, name)
	}
	delete(m.Hashes, name)
	return nil
}
