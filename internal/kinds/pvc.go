package kinds

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"resourceEditorAPI/internal/codec"
)

// PVCForm lifts the commonly edited claim fields out of the resource.
type PVCForm struct {
	Object       codec.Resource `json:"object"`
	Storage      string         `json:"storage"`
	AccessModes  []string       `json:"accessModes"`
	StorageClass string         `json:"storageClass,omitempty"`
}

var (
	storagePath      = []string{"spec", "resources", "requests", "storage"}
	accessModesPath  = []string{"spec", "accessModes"}
	storageClassPath = []string{"spec", "storageClassName"}
)

var ErrStorageRequired = errors.New("storage request is required")

type PVCAdapter struct{}

func (PVCAdapter) AdaptResourceModel(raw codec.Resource) (PVCForm, error) {
	copied, err := jsonCopy(raw)
	if err != nil {
		return PVCForm{}, err
	}
	obj := unstructured.Unstructured{Object: copied}

	storage, _, err := unstructured.NestedString(obj.Object, storagePath...)
	if err != nil {
		return PVCForm{}, fmt.Errorf("failed to read storage request: %w", err)
	}
	modes, _, err := unstructured.NestedStringSlice(obj.Object, accessModesPath...)
	if err != nil {
		return PVCForm{}, fmt.Errorf("failed to read access modes: %w", err)
	}
	class, _, err := unstructured.NestedString(obj.Object, storageClassPath...)
	if err != nil {
		return PVCForm{}, fmt.Errorf("failed to read storage class: %w", err)
	}

	unstructured.RemoveNestedField(obj.Object, storagePath...)
	unstructured.RemoveNestedField(obj.Object, accessModesPath...)
	unstructured.RemoveNestedField(obj.Object, storageClassPath...)

	return PVCForm{Object: obj.Object, Storage: storage, AccessModes: modes, StorageClass: class}, nil
}

func (PVCAdapter) AdaptFormModel(form PVCForm) (codec.Resource, error) {
	out, err := jsonCopy(form.Object)
	if err != nil {
		return nil, err
	}

	if form.Storage != "" {
		if err := unstructured.SetNestedField(out, form.Storage, storagePath...); err != nil {
			return nil, fmt.Errorf("failed to set storage request: %w", err)
		}
	}
	if form.AccessModes != nil {
		if err := unstructured.SetNestedStringSlice(out, form.AccessModes, accessModesPath...); err != nil {
			return nil, fmt.Errorf("failed to set access modes: %w", err)
		}
	}
	if form.StorageClass != "" {
		if err := unstructured.SetNestedField(out, form.StorageClass, storageClassPath...); err != nil {
			return nil, fmt.Errorf("failed to set storage class: %w", err)
		}
	}
	return out, nil
}

func (PVCAdapter) Validate(form PVCForm) error {
	if form.Storage == "" {
		return ErrStorageRequired
	}
	if _, err := resource.ParseQuantity(form.Storage); err != nil {
		return fmt.Errorf("invalid storage request %q: %w", form.Storage, err)
	}
	return nil
}

// jsonCopy returns a deep copy of r holding JSON types only, as the unstructured helpers expect.
func jsonCopy(r codec.Resource) (codec.Resource, error) {
	v, err := codec.Normalize(r)
	if err != nil {
		return nil, fmt.Errorf("failed to copy resource: %w", err)
	}
	out, ok := v.(codec.Resource)
	if !ok {
		return codec.Resource{}, nil
	}
	return out, nil
}
