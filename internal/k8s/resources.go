package k8s

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/models"
)

var ErrUnsupportedKind = errors.New("unsupported kind")

// Fetch loads a Secret, ConfigMap or PersistentVolumeClaim as a generic resource.
func (c *Client) Fetch(ctx context.Context, id models.Identity) (codec.Resource, error) {
	core := c.ClientSet.CoreV1()

	var (
		obj runtime.Object
		err error
	)
	kind := models.CanonicalKind(id.Kind)
	switch kind {
	case "Secret":
		obj, err = core.Secrets(id.Namespace).Get(ctx, id.Name, metav1.GetOptions{})
	case "ConfigMap":
		obj, err = core.ConfigMaps(id.Namespace).Get(ctx, id.Name, metav1.GetOptions{})
	case "PersistentVolumeClaim":
		obj, err = core.PersistentVolumeClaims(id.Namespace).Get(ctx, id.Name, metav1.GetOptions{})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, id.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", id, err)
	}

	return toResource(obj, kind)
}

// Create submits a new resource. Kind and namespace are read from the resource itself.
func (c *Client) Create(ctx context.Context, r codec.Resource) (codec.Resource, error) {
	kind, _ := r["kind"].(string)
	core := c.ClientSet.CoreV1()

	var (
		obj runtime.Object
		err error
	)
	switch models.CanonicalKind(kind) {
	case "Secret":
		var s v1.Secret
		if err := fromResource(r, &s); err != nil {
			return nil, err
		}
		obj, err = core.Secrets(s.Namespace).Create(ctx, &s, metav1.CreateOptions{})
	case "ConfigMap":
		var cm v1.ConfigMap
		if err := fromResource(r, &cm); err != nil {
			return nil, err
		}
		obj, err = core.ConfigMaps(cm.Namespace).Create(ctx, &cm, metav1.CreateOptions{})
	case "PersistentVolumeClaim":
		var pvc v1.PersistentVolumeClaim
		if err := fromResource(r, &pvc); err != nil {
			return nil, err
		}
		obj, err = core.PersistentVolumeClaims(pvc.Namespace).Create(ctx, &pvc, metav1.CreateOptions{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	c.Logger.Info("resource created", zap.String("kind", kind))
	return toResource(obj, models.CanonicalKind(kind))
}

// Update replaces the resource named by id. Name and namespace of id win over the resource's own.
func (c *Client) Update(ctx context.Context, id models.Identity, r codec.Resource) (codec.Resource, error) {
	core := c.ClientSet.CoreV1()
	kind := models.CanonicalKind(id.Kind)

	var (
		obj runtime.Object
		err error
	)
	switch kind {
	case "Secret":
		var s v1.Secret
		if err := fromResource(r, &s); err != nil {
			return nil, err
		}
		s.Name, s.Namespace = id.Name, id.Namespace
		obj, err = core.Secrets(id.Namespace).Update(ctx, &s, metav1.UpdateOptions{})
	case "ConfigMap":
		var cm v1.ConfigMap
		if err := fromResource(r, &cm); err != nil {
			return nil, err
		}
		cm.Name, cm.Namespace = id.Name, id.Namespace
		obj, err = core.ConfigMaps(id.Namespace).Update(ctx, &cm, metav1.UpdateOptions{})
	case "PersistentVolumeClaim":
		var pvc v1.PersistentVolumeClaim
		if err := fromResource(r, &pvc); err != nil {
			return nil, err
		}
		pvc.Name, pvc.Namespace = id.Name, id.Namespace
		obj, err = core.PersistentVolumeClaims(id.Namespace).Update(ctx, &pvc, metav1.UpdateOptions{})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, id.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", id, err)
	}

	c.Logger.Info("resource updated", zap.Stringer("resource", id))
	return toResource(obj, kind)
}

// toResource converts a typed object. Typed clients leave TypeMeta empty, so it is filled in.
func toResource(obj runtime.Object, kind string) (codec.Resource, error) {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", kind, err)
	}
	u["apiVersion"] = "v1"
	u["kind"] = kind

	out, err := codec.Normalize(u)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", kind, err)
	}
	res, _ := out.(codec.Resource)
	return res, nil
}

func fromResource(r codec.Resource, into any) error {
	normalized, err := codec.Normalize(r)
	if err != nil {
		return fmt.Errorf("failed to read resource: %w", err)
	}
	m, ok := normalized.(codec.Resource)
	if !ok {
		return fmt.Errorf("resource must be a mapping")
	}
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(m, into); err != nil {
		return fmt.Errorf("failed to read resource: %w", err)
	}
	return nil
}
