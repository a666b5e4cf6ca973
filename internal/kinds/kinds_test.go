package kinds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/i18n"
	"resourceEditorAPI/internal/kv"
)

func TestSecretAdapter_RoundTrip(t *testing.T) {
	a := NewSecretAdapter()
	in := codec.Resource{"data": map[string]any{"k": "dmFsdWU="}}

	form, err := a.AdaptResourceModel(in)
	require.NoError(t, err)
	assert.Equal(t, kv.Rows{{Key: "k", Value: "value"}}, form.Data)
	assert.Equal(t, codec.Resource{}, form.Object)

	out, err := a.AdaptFormModel(form)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSecretAdapter_KeepsOtherFields(t *testing.T) {
	a := NewSecretAdapter()
	in := codec.Resource{
		"apiVersion": "v1",
		"kind":       "Secret",
		"metadata":   map[string]any{"name": "db", "namespace": "ns"},
		"type":       "kubernetes.io/basic-auth",
		"data": map[string]any{
			"username": "YWRtaW4=",
			"password": "czNjcjN0",
		},
	}

	form, err := a.AdaptResourceModel(in)
	require.NoError(t, err)
	assert.Equal(t, kv.Rows{
		{Key: "password", Value: "s3cr3t"},
		{Key: "username", Value: "admin"},
	}, form.Data)
	assert.Equal(t, SecretTypeBasicAuth, TypeOf(form))
	assert.NotContains(t, form.Object, "data")

	out, err := a.AdaptFormModel(form)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Contains(t, in, "data", "input must not be modified")
}

func TestSecretAdapter_BinaryValuesStayEncoded(t *testing.T) {
	a := NewSecretAdapter()
	// ff fe 00 80 is not UTF-8 and would not survive a JSON string
	in := codec.Resource{"data": map[string]any{"keystore": "//4AgA==", "user": "YWRtaW4="}}

	form, err := a.AdaptResourceModel(in)
	require.NoError(t, err)
	assert.Equal(t, kv.Rows{
		{Key: "keystore", Value: "//4AgA==", Encoding: kv.EncodingBase64},
		{Key: "user", Value: "admin"},
	}, form.Data)

	b, err := json.Marshal(form)
	require.NoError(t, err)
	var exchanged DataForm
	require.NoError(t, json.Unmarshal(b, &exchanged))

	out, err := a.AdaptFormModel(exchanged)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSecretAdapter_LastDuplicateKeepsItsEncoding(t *testing.T) {
	out, err := NewSecretAdapter().AdaptFormModel(DataForm{Data: kv.Rows{
		{Key: "k", Value: "//4AgA==", Encoding: kv.EncodingBase64},
		{Key: "k", Value: "text"},
	}})
	require.NoError(t, err)
	assert.Equal(t, codec.Resource{"data": map[string]any{"k": "dGV4dA=="}}, out)
}

func TestDataAdapter_AdaptDocumentKeepsOrder(t *testing.T) {
	text := "kind: ConfigMap\ndata:\n  zeta: \"1\"\n  alpha: \"2\"\n  mid: \"3\"\n"
	raw, doc, err := codec.New(nil, nil).DecodeDocument(text)
	require.NoError(t, err)

	form, err := NewConfigMapAdapter().AdaptDocument(raw, doc)
	require.NoError(t, err)
	assert.Equal(t, kv.Rows{
		{Key: "zeta", Value: "1"},
		{Key: "alpha", Value: "2"},
		{Key: "mid", Value: "3"},
	}, form.Data)

	// without a document the order falls back to sorted keys
	form, err = NewConfigMapAdapter().AdaptDocument(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "alpha", form.Data[0].Key)
}

func TestDataAdapter_AdaptDocumentStillRejectsNonStrings(t *testing.T) {
	raw, doc, err := codec.New(nil, nil).DecodeDocument("data:\n  nested:\n    a: b\n")
	require.NoError(t, err)

	_, err = NewConfigMapAdapter().AdaptDocument(raw, doc)
	assert.Error(t, err)
}

func TestOrderedKeys(t *testing.T) {
	entries := map[string]any{"a": "", "b": "", "c": "", "d": ""}
	assert.Equal(t, []string{"c", "a", "b", "d"}, orderedKeys(entries, []string{"c", "missing", "a", "c"}))
}

func TestSecretAdapter_AbsentData(t *testing.T) {
	a := NewSecretAdapter()
	in := codec.Resource{"kind": "Secret"}

	form, err := a.AdaptResourceModel(in)
	require.NoError(t, err)
	assert.Equal(t, kv.Rows{{}}, form.Data)

	out, err := a.AdaptFormModel(form)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	form, err = a.AdaptResourceModel(nil)
	require.NoError(t, err)
	assert.Equal(t, codec.Resource{}, form.Object)
}

func TestSecretAdapter_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   codec.Resource
	}{
		{name: "invalid base64", in: codec.Resource{"data": map[string]any{"k": "%%%"}}},
		{name: "non string value", in: codec.Resource{"data": map[string]any{"k": 1.0}}},
		{name: "data is a list", in: codec.Resource{"data": []any{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSecretAdapter().AdaptResourceModel(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestSecretAdapter_FormDropsEmptyKeys(t *testing.T) {
	out, err := NewSecretAdapter().AdaptFormModel(DataForm{
		Object: codec.Resource{"kind": "Secret"},
		Data:   kv.Rows{{Key: "a", Value: "b"}, {Key: "", Value: ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, codec.Resource{"kind": "Secret", "data": map[string]any{"a": "Yg=="}}, out)
}

func TestDataAdapter_Validate(t *testing.T) {
	a := NewConfigMapAdapter()

	assert.NoError(t, a.Validate(DataForm{Data: kv.Rows{{}}}))

	err := a.Validate(DataForm{Data: kv.Rows{{Key: "a", Value: "1"}, {Key: "a", Value: "2"}}})
	var rowErrs kv.ValidationErrors
	require.ErrorAs(t, err, &rowErrs)
	assert.True(t, rowErrs.Has(kv.DuplicateKey))
}

func TestConfigMapAdapter_RoundTrip(t *testing.T) {
	a := NewConfigMapAdapter()
	in := codec.Resource{
		"kind": "ConfigMap",
		"data": map[string]any{"app.properties": "a=1\nb=2\n", "mode": "dev"},
	}

	form, err := a.AdaptResourceModel(in)
	require.NoError(t, err)
	assert.Equal(t, kv.Rows{
		{Key: "app.properties", Value: "a=1\nb=2\n"},
		{Key: "mode", Value: "dev"},
	}, form.Data)

	out, err := a.AdaptFormModel(form)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestChangeType(t *testing.T) {
	form := DataForm{
		Object: codec.Resource{"type": "Opaque"},
		Data:   kv.Rows{{Key: "a", Value: "b"}},
	}

	changed := ChangeType(form, SecretTypeSSH)
	assert.Equal(t, SecretTypeSSH, TypeOf(changed))
	assert.Equal(t, kv.Rows{{}}, changed.Data)
	assert.Equal(t, "Opaque", form.Object["type"])
}

func TestTypeOf_Default(t *testing.T) {
	assert.Equal(t, SecretTypeOpaque, TypeOf(DataForm{}))
}

func TestTypeDisplayName(t *testing.T) {
	tr := i18n.NewCatalog("en").Translator("en")

	tests := []struct {
		in   SecretType
		want string
	}{
		{in: SecretTypeOpaque, want: "Opaque"},
		{in: SecretTypeTLS, want: "TLS"},
		{in: SecretTypeBasicAuth, want: "Username/Password"},
		{in: SecretTypeSSH, want: "SSH"},
		{in: SecretType("example.com/custom"), want: "example.com/custom"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, TypeDisplayName(tt.in, tr))
		})
	}
}

func TestPVCAdapter_RoundTrip(t *testing.T) {
	in := codec.Resource{
		"kind":     "PersistentVolumeClaim",
		"metadata": map[string]any{"name": "data"},
		"spec": map[string]any{
			"accessModes":      []any{"ReadWriteOnce"},
			"storageClassName": "standard",
			"resources": map[string]any{
				"requests": map[string]any{"storage": "5Gi"},
			},
		},
	}

	form, err := PVCAdapter{}.AdaptResourceModel(in)
	require.NoError(t, err)
	assert.Equal(t, "5Gi", form.Storage)
	assert.Equal(t, []string{"ReadWriteOnce"}, form.AccessModes)
	assert.Equal(t, "standard", form.StorageClass)
	assert.NoError(t, PVCAdapter{}.Validate(form))

	out, err := PVCAdapter{}.AdaptFormModel(form)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPVCAdapter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		storage string
		wantErr bool
	}{
		{name: "binary suffix", storage: "10Gi"},
		{name: "decimal suffix", storage: "500M"},
		{name: "empty", storage: "", wantErr: true},
		{name: "garbage", storage: "lots", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PVCAdapter{}.Validate(PVCForm{Storage: tt.storage})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPVCAdapter_EditStorage(t *testing.T) {
	form, err := PVCAdapter{}.AdaptResourceModel(codec.Resource{"kind": "PersistentVolumeClaim"})
	require.NoError(t, err)
	assert.Empty(t, form.Storage)

	form.Storage = "1Gi"
	out, err := PVCAdapter{}.AdaptFormModel(form)
	require.NoError(t, err)

	storage, ok := out["spec"].(map[string]any)["resources"].(map[string]any)["requests"].(map[string]any)["storage"]
	require.True(t, ok)
	assert.Equal(t, "1Gi", storage)
}
