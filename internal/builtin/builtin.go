// Package builtin embeds the template files shipped with the binary.
package builtin

import (
	"embed"

	"github.com/conn-castle/recipegen/internal/loader"
	"github.com/conn-castle/recipegen/internal/schema"
	"github.com/conn-castle/recipegen/internal/template"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// Docs returns the shipped template documents.
func Docs() ([]schema.TemplateDoc, error) {
	return loader.LoadTemplates(templateFS, "templates")
}

// NewRegistry returns a registry pre-populated with the shipped
// templates.
func NewRegistry() (*template.Registry, error) {
	docs, err := Docs()
	if err != nil {
		return nil, err
	}
	registry := template.NewRegistry()
	if err := loader.RegisterAll(registry, docs); err != nil {
		return nil, err
	}
	return registry, nil
}
