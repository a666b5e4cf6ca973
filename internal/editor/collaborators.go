package editor

import (
	"context"
	"errors"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/models"
)

// Fetcher loads an existing resource for the update flow.
type Fetcher interface {
	Fetch(ctx context.Context, id models.Identity) (codec.Resource, error)
}

// Submitter persists the edited resource.
type Submitter interface {
	Create(ctx context.Context, r codec.Resource) (codec.Resource, error)
	Update(ctx context.Context, id models.Identity, r codec.Resource) (codec.Resource, error)
}

// SampleProvider returns the create-flow template of a kind, namespace placeholder untouched.
type SampleProvider interface {
	Sample(kind string) (string, error)
}

// SubmitError is a failed create or update as shown to the user.
type SubmitError struct {
	Title   string
	Content string
	Err     error
}

func (e *SubmitError) Error() string {
	return e.Title + ": " + e.Content
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// newSubmitError shows the API server message as returned, without the wrapping added on the way up.
func newSubmitError(title string, err error) *SubmitError {
	var serr *SubmitError
	if errors.As(err, &serr) {
		return &SubmitError{Title: title, Content: serr.Content, Err: err}
	}
	var status apierrors.APIStatus
	if errors.As(err, &status) && status.Status().Message != "" {
		return &SubmitError{Title: title, Content: status.Status().Message, Err: err}
	}
	return &SubmitError{Title: title, Content: err.Error(), Err: err}
}
