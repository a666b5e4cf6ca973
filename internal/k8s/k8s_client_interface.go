package k8s

import (
	"context"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/models"
)

// OperatorStore keeps operator credentials so handlers can be tested without a cluster.
type OperatorStore interface {
	CreateOperator(name, passwordHash string) error
	OperatorPasswordHash(name string) (string, error)
	UpdateOperatorPassword(name, passwordHash string) error
	DeleteOperator(name string) error
}

// ResourceClient loads and submits edited resources.
type ResourceClient interface {
	Fetch(ctx context.Context, id models.Identity) (codec.Resource, error)
	Create(ctx context.Context, r codec.Resource) (codec.Resource, error)
	Update(ctx context.Context, id models.Identity, r codec.Resource) (codec.Resource, error)
}

var (
	_ OperatorStore  = (*Client)(nil)
	_ ResourceClient = (*Client)(nil)
)
