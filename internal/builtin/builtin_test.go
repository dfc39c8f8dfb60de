package builtin

import (
	"reflect"
	"strings"
	"testing"

	"github.com/conn-castle/recipegen/internal/instruction"
)

func TestDocs(t *testing.T) {
	docs, err := Docs()
	if err != nil {
		t.Fatalf("Docs: %v", err)
	}
	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Name
	}
	if !reflect.DeepEqual(names, []string{"jq", "shellcheck"}) {
		t.Fatalf("unexpected shipped templates: %v", names)
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := registry.List(); !reflect.DeepEqual(got, []string{"jq", "shellcheck"}) {
		t.Fatalf("List = %v", got)
	}
}

func TestShippedJQResolves(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	jq, err := registry.Get("jq")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	resolved, err := jq.Resolve("binaries", "1.7.1", "apt", nil)
	if err != nil {
		t.Fatalf("Resolve binaries: %v", err)
	}
	if !reflect.DeepEqual(resolved.Packages, []string{"ca-certificates", "curl"}) {
		t.Fatalf("Packages = %v", resolved.Packages)
	}

	if _, err := jq.Resolve("source", "1.7.1", "yum", nil); err != nil {
		t.Fatalf("Resolve source: %v", err)
	}
}

func TestShippedShellcheckWildcard(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	sc, err := registry.Get("shellcheck")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	resolved, err := sc.Resolve("", "0.10.0", "apt", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Template-level deps come before the method-level ones.
	if !reflect.DeepEqual(resolved.Packages, []string{"ca-certificates", "curl", "xz-utils"}) {
		t.Fatalf("Packages = %v", resolved.Packages)
	}

	found := false
	for _, in := range resolved.Instructions {
		if run, ok := in.(instruction.Run); ok && strings.Contains(run.Command, "shellcheck-v0.10.0.linux.x86_64.tar.xz") {
			found = true
		}
	}
	if !found {
		t.Fatalf("wildcard url not expanded: %+v", resolved.Instructions)
	}
}
