package k8s

import (
	"errors"
	"fmt"

	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	operatorSecretPrefix = "operator-"
	managedByLabel       = "app.kubernetes.io/managed-by"
	managedByValue       = "resource-editor"
	passwordKey          = "password"
	usernameKey          = "username"
)

var (
	ErrOperatorNotFound = errors.New("operator not found")
	ErrOperatorExists   = errors.New("operator already exists")
)

func operatorSecretName(name string) string {
	return operatorSecretPrefix + name
}

// CreateOperator stores a password hash for a new operator account.
func (c *Client) CreateOperator(name, passwordHash string) error {
	secret := &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:   operatorSecretName(name),
			Labels: map[string]string{managedByLabel: managedByValue},
		},
		Data: map[string][]byte{
			usernameKey: []byte(name),
			passwordKey: []byte(passwordHash),
		},
		Type: v1.SecretTypeOpaque,
	}

	_, err := c.ClientSet.CoreV1().Secrets(c.Namespace).Create(c.ctx(), secret, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("%w: %s", ErrOperatorExists, name)
	}
	if err != nil {
		return fmt.Errorf("failed to create operator %q: %w", name, err)
	}
	return nil
}

// OperatorPasswordHash returns the stored bcrypt hash of an operator.
func (c *Client) OperatorPasswordHash(name string) (string, error) {
	secret, err := c.ClientSet.CoreV1().Secrets(c.Namespace).Get(c.ctx(), operatorSecretName(name), metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return "", fmt.Errorf("%w: %s", ErrOperatorNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get operator %q: %w", name, err)
	}

	hash, ok := secret.Data[passwordKey]
	if !ok || len(hash) == 0 {
		return "", fmt.Errorf("operator %q has no password hash", name)
	}
	return string(hash), nil
}

// UpdateOperatorPassword replaces the stored hash, keeping the rest of the secret.
func (c *Client) UpdateOperatorPassword(name, passwordHash string) error {
	secrets := c.ClientSet.CoreV1().Secrets(c.Namespace)

	secret, err := secrets.Get(c.ctx(), operatorSecretName(name), metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrOperatorNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to get operator %q: %w", name, err)
	}

	if secret.Data == nil {
		secret.Data = map[string][]byte{}
	}
	secret.Data[passwordKey] = []byte(passwordHash)

	if _, err := secrets.Update(c.ctx(), secret, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update operator %q: %w", name, err)
	}
	return nil
}

// DeleteOperator removes an operator account. Deleting an unknown operator is an error.
func (c *Client) DeleteOperator(name string) error {
	err := c.ClientSet.CoreV1().Secrets(c.Namespace).Delete(c.ctx(), operatorSecretName(name), metav1.DeleteOptions{})
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrOperatorNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete operator %q: %w", name, err)
	}
	return nil
}
