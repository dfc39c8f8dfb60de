package template

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/conn-castle/recipegen/internal/schema"
)

func registryTemplate(t *testing.T, name string) *Template {
	t.Helper()
	return newTemplate(t, schema.TemplateDoc{
		Name:   name,
		Source: &schema.MethodDoc{Instructions: []string{"make install"}, Dependencies: map[string][]string{"apt": {"make"}}},
	})
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(registryTemplate(t, "JQ")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, name := range []string{"jq", "JQ", " jq "} {
		tmpl, err := registry.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if tmpl.Name() != "jq" {
			t.Fatalf("Get(%q).Name() = %q", name, tmpl.Name())
		}
	}
}

func TestRegistryDuplicate(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(registryTemplate(t, "jq")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := registry.Register(registryTemplate(t, "JQ"))
	var duplicate *DuplicateTemplateError
	if !errors.As(err, &duplicate) {
		t.Fatalf("expected *DuplicateTemplateError, got %v", err)
	}
	if duplicate.Name != "jq" {
		t.Fatalf("Name = %q", duplicate.Name)
	}
}

func TestRegistryUnknown(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Get("jq")
	var unknown *UnknownTemplateError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownTemplateError, got %v", err)
	}
	if len(unknown.Registered) != 0 {
		t.Fatalf("Registered = %v", unknown.Registered)
	}

	if err := registry.Register(registryTemplate(t, "shellcheck")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err = registry.Get("jq")
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownTemplateError, got %v", err)
	}
	if !strings.Contains(err.Error(), `"shellcheck"`) {
		t.Fatalf("error should list registered templates: %v", err)
	}
}

func TestRegistryNilAndUnnamed(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected error for nil template")
	}
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(registryTemplate(t, "jq")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !registry.Unregister("JQ") {
		t.Fatal("Unregister should report the template existed")
	}
	if registry.Unregister("jq") {
		t.Fatal("Unregister should report a miss the second time")
	}
	if _, err := registry.Get("jq"); err == nil {
		t.Fatal("expected lookup miss after Unregister")
	}
}

func TestRegistryList(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"zsh", "jq", "shellcheck"} {
		if err := registry.Register(registryTemplate(t, name)); err != nil {
			t.Fatalf("Register(%q): %v", name, err)
		}
	}
	if got := registry.List(); !reflect.DeepEqual(got, []string{"jq", "shellcheck", "zsh"}) {
		t.Fatalf("List = %v", got)
	}
}
