package template

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/conn-castle/recipegen/internal/messages"
)

// Registry maps template names to validated Templates. Names are
// case-insensitive. Registration must be serialized by the caller when
// shared; lookups may run concurrently once registration has quiesced.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds a template under its name. A name collision fails with
// DuplicateTemplateError; there is no silent overwrite, so a later-loaded
// template can never mask an earlier one.
func (r *Registry) Register(t *Template) error {
	if t == nil {
		return errors.New(messages.RegistryTemplateNilFmt)
	}
	name := t.Name()
	if name == "" {
		return errors.New(messages.RegistryTemplateNameReq)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[name]; exists {
		return &DuplicateTemplateError{Name: name}
	}
	r.templates[name] = t
	return nil
}

// Get retrieves a template by name.
func (r *Registry) Get(name string) (*Template, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[key]
	if !ok {
		return nil, &UnknownTemplateError{Name: name, Registered: r.listLocked()}
	}
	return t, nil
}

// Unregister removes a template by name, reporting whether it existed.
func (r *Registry) Unregister(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.templates[key]
	delete(r.templates, key)
	return ok
}

// List returns the registered template names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
