package models

import (
	"fmt"
	"strings"
)

// Identity names one resource in the cluster. An empty Name means the resource does not exist yet.
type Identity struct {
	Kind      string `json:"kind"`
	Namespace string `json:"namespace"`
	Name      string `json:"name,omitempty"`
}

// IsNew reports whether the identity belongs to a create flow
func (i Identity) IsNew() bool {
	return i.Name == ""
}

func (i Identity) String() string {
	if i.IsNew() {
		return fmt.Sprintf("%s %s/<new>", strings.ToLower(i.Kind), i.Namespace)
	}
	return fmt.Sprintf("%s %s/%s", strings.ToLower(i.Kind), i.Namespace, i.Name)
}

var kindAliases = map[string]string{
	"secret":                "Secret",
	"configmap":             "ConfigMap",
	"cm":                    "ConfigMap",
	"persistentvolumeclaim": "PersistentVolumeClaim",
	"pvc":                   "PersistentVolumeClaim",
}

// CanonicalKind maps the typed kinds, in any case or short form, to their API kind.
// Other kinds are returned unchanged.
func CanonicalKind(kind string) string {
	if k, ok := kindAliases[strings.ToLower(kind)]; ok {
		return k
	}
	return kind
}
