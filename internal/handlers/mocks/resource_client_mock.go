package mocks

import (
	"context"
	"fmt"
	"sync"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/models"
)

// MockResourceClient implements the k8s.ResourceClient interface for tests.
type MockResourceClient struct {
	mu sync.Mutex

	// call flags for assertions
	FetchCalled  bool
	CreateCalled bool
	UpdateCalled bool

	// forceable errors (set in tests)
	FetchErr  error
	CreateErr error
	UpdateErr error

	// Key - kind/namespace/name
	Resources map[string]codec.Resource
	// last resource passed to Create or Update
	Submitted codec.Resource
}

func NewMockResourceClient() *MockResourceClient {
	return &MockResourceClient{Resources: make(map[string]codec.Resource)}
}

func makeKey(kind, namespace, name string) string {
	return fmt.Sprintf("%s/%s/%s", kind, namespace, name)
}

// Put stores r under id for later fetches.
func (m *MockResourceClient) Put(id models.Identity, r codec.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resources[makeKey(id.Kind, id.Namespace, id.Name)] = r
}

func (m *MockResourceClient) Fetch(_ context.Context, id models.Identity) (codec.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalled = true
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	r, ok := m.Resources[makeKey(id.Kind, id.Namespace, id.Name)]
	if !ok {
		return nil, fmt.Errorf("%s not found", id)
	}
	return r, nil
}

func (m *MockResourceClient) Create(_ context.Context, r codec.Resource) (codec.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalled = true
	m.Submitted = r
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return r, nil
}

func (m *MockResourceClient) Update(_ context.Context, id models.Identity, r codec.Resource) (codec.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalled = true
	m.Submitted = r
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.Resources[makeKey(id.Kind, id.Namespace, id.Name)] = r
	return r, nil
}
