package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestCreateOperator(t *testing.T) {
	client := newFakeClient()

	tests := []struct {
		name        string
		operator    string
		expectError error
	}{
		{name: "creates operator", operator: "alice"},
		{name: "rejects duplicate operator", operator: "alice", expectError: ErrOperatorExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.CreateOperator(tt.operator, "hash")
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)

			secret, err := client.ClientSet.CoreV1().Secrets("resource-editor").Get(context.Background(), "operator-alice", metav1.GetOptions{})
			require.NoError(t, err)
			assert.Equal(t, "hash", string(secret.Data["password"]))
			assert.Equal(t, "alice", string(secret.Data["username"]))
			assert.Equal(t, "resource-editor", secret.Labels["app.kubernetes.io/managed-by"])
		})
	}
}

func TestOperatorPasswordHash(t *testing.T) {
	client := newFakeClient()
	require.NoError(t, client.CreateOperator("bob", "$2a$10$hash"))

	tests := []struct {
		name        string
		operator    string
		expected    string
		expectError error
	}{
		{name: "existing operator", operator: "bob", expected: "$2a$10$hash"},
		{name: "unknown operator", operator: "carol", expectError: ErrOperatorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := client.OperatorPasswordHash(tt.operator)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hash)
		})
	}
}

func TestUpdateOperatorPassword(t *testing.T) {
	client := newFakeClient()
	require.NoError(t, client.CreateOperator("dave", "old"))

	require.NoError(t, client.UpdateOperatorPassword("dave", "new"))
	hash, err := client.OperatorPasswordHash("dave")
	require.NoError(t, err)
	assert.Equal(t, "new", hash)

	assert.ErrorIs(t, client.UpdateOperatorPassword("erin", "x"), ErrOperatorNotFound)
}

func TestDeleteOperator(t *testing.T) {
	client := newFakeClient()
	require.NoError(t, client.CreateOperator("frank", "hash"))

	require.NoError(t, client.DeleteOperator("frank"))
	_, err := client.OperatorPasswordHash("frank")
	assert.ErrorIs(t, err, ErrOperatorNotFound)

	assert.ErrorIs(t, client.DeleteOperator("frank"), ErrOperatorNotFound)
}
