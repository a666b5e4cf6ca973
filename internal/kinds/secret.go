package kinds

import (
	"encoding/base64"
	"fmt"
	"maps"
	"unicode/utf8"

	corev1 "k8s.io/api/core/v1"

	"resourceEditorAPI/internal/i18n"
	"resourceEditorAPI/internal/kv"
)

// SecretType is the "type" field of a Secret.
type SecretType string

const (
	SecretTypeOpaque       = SecretType(corev1.SecretTypeOpaque)
	SecretTypeBasicAuth    = SecretType(corev1.SecretTypeBasicAuth)
	SecretTypeSSH          = SecretType(corev1.SecretTypeSSHAuth)
	SecretTypeDockerConfig = SecretType(corev1.SecretTypeDockerConfigJson)
	SecretTypeTLS          = SecretType(corev1.SecretTypeTLS)
	SecretTypeOAuth2       = SecretType("oauth2")
)

// SecretTypes lists the types offered when creating a Secret, default first.
var SecretTypes = []SecretType{
	SecretTypeBasicAuth,
	SecretTypeOpaque,
	SecretTypeOAuth2,
	SecretTypeSSH,
	SecretTypeDockerConfig,
	SecretTypeTLS,
}

var secretTypeMessages = map[SecretType]string{
	SecretTypeBasicAuth:    "secret_type_basic_auth",
	SecretTypeSSH:          "secret_type_ssh_auth",
	SecretTypeDockerConfig: "secret_type_dockerconfigjson",
	SecretTypeOAuth2:       "secret_type_oauth2",
}

// TypeDisplayName is the label of t shown to users. Unknown types are shown as is.
func TypeDisplayName(t SecretType, tr i18n.Translator) string {
	switch t {
	case SecretTypeOpaque:
		return "Opaque"
	case SecretTypeTLS:
		return "TLS"
	}
	if key, ok := secretTypeMessages[t]; ok {
		return tr.Get(key)
	}
	return string(t)
}

// SecretAdapter shows Secret data decoded and stores it base64 encoded.
// Values that are not UTF-8 text stay base64 encoded in the form so they survive the JSON exchange.
type SecretAdapter struct {
	dataAdapter
}

func NewSecretAdapter() SecretAdapter {
	return SecretAdapter{dataAdapter{decode: decodeBase64, encode: encodeBase64}}
}

func decodeBase64(s string) (string, string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", "", fmt.Errorf("value is not valid base64: %w", err)
	}
	if !utf8.Valid(b) {
		return s, kv.EncodingBase64, nil
	}
	return string(b), "", nil
}

func encodeBase64(s, encoding string) string {
	if encoding == kv.EncodingBase64 {
		return s
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// ChangeType switches the Secret type. The data of the previous type is discarded.
func ChangeType(form DataForm, t SecretType) DataForm {
	obj := maps.Clone(form.Object)
	if obj == nil {
		obj = map[string]any{}
	}
	obj["type"] = string(t)
	return DataForm{Object: obj, Data: kv.Rows{{}}}
}

// TypeOf returns the Secret type of form, Opaque when unset.
func TypeOf(form DataForm) SecretType {
	if t, ok := form.Object["type"].(string); ok && t != "" {
		return SecretType(t)
	}
	return SecretTypeOpaque
}
