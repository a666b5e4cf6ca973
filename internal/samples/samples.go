// Package samples holds the YAML a create flow starts from.
package samples

import (
	"embed"
	"fmt"
	"strings"

	"resourceEditorAPI/internal/models"
)

// NamespacePlaceholder is replaced by the target namespace before a sample is decoded.
const NamespacePlaceholder = "{{namespace}}"

//go:embed templates/*.yaml
var templates embed.FS

// Get returns the sample of kind with the placeholder untouched. Kinds without a
// dedicated sample get a generic skeleton carrying the kind name.
func Get(kind string) (string, error) {
	canonical := models.CanonicalKind(kind)

	b, err := templates.ReadFile("templates/" + strings.ToLower(canonical) + ".yaml")
	if err == nil {
		return string(b), nil
	}

	b, err = templates.ReadFile("templates/generic.yaml")
	if err != nil {
		return "", fmt.Errorf("failed to read generic sample: %w", err)
	}
	return strings.Replace(string(b), `kind: ""`, "kind: "+canonical, 1), nil
}

// FeedNamespace substitutes every namespace placeholder in sample.
func FeedNamespace(sample, namespace string) string {
	return strings.ReplaceAll(sample, NamespacePlaceholder, namespace)
}

// Provider serves the embedded samples.
type Provider struct{}

func (Provider) Sample(kind string) (string, error) {
	if strings.TrimSpace(kind) == "" {
		return "", fmt.Errorf("kind is required")
	}
	return Get(kind)
}
