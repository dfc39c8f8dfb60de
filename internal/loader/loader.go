// Package loader reads template YAML documents from directories.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/conn-castle/recipegen/internal/messages"
	"github.com/conn-castle/recipegen/internal/schema"
	"github.com/conn-castle/recipegen/internal/template"
)

// LoadTemplates reads every *.yaml/*.yml file directly under dir in fsys
// and returns the validated template documents, sorted by file name so
// registration order is deterministic.
func LoadTemplates(fsys fs.FS, dir string) ([]schema.TemplateDoc, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf(messages.LoaderReadDirFmt, dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	docs := make([]schema.TemplateDoc, 0, len(names))
	for _, name := range names {
		full := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, full)
		if err != nil {
			return nil, fmt.Errorf(messages.LoaderReadFileFmt, full, err)
		}
		doc, err := schema.DecodeTemplate(data)
		if err != nil {
			return nil, fmt.Errorf(messages.LoaderInvalidFmt, full, err)
		}
		if err := schema.ValidateTemplate(doc); err != nil {
			return nil, fmt.Errorf(messages.LoaderInvalidFmt, full, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadDir is a convenience wrapper over LoadTemplates for an on-disk
// directory path.
func LoadDir(dir string) ([]schema.TemplateDoc, error) {
	return LoadTemplates(os.DirFS(dir), ".")
}

// RegisterAll builds templates from docs and registers them, stopping at
// the first failure.
func RegisterAll(registry *template.Registry, docs []schema.TemplateDoc) error {
	for _, doc := range docs {
		t, err := template.New(doc)
		if err != nil {
			return err
		}
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}
