package schema

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/conn-castle/recipegen/internal/testutil"
)

func TestDecodeTemplateValid(t *testing.T) {
	data := []byte(`
name: jq
dependencies:
  apt:
    - curl
binaries:
  urls:
    "1.6": https://example.com/jq-1.6
  env:
    PATH: /opt/jq/bin:$PATH
  instructions:
    - curl -fsSL -o /usr/local/bin/jq {{url}}
`)
	doc, err := DecodeTemplate(data)
	if err != nil {
		t.Fatalf("DecodeTemplate: %v", err)
	}
	if doc.Name != "jq" {
		t.Fatalf("unexpected name: %q", doc.Name)
	}
	if doc.Binaries == nil || doc.Binaries.URLs["1.6"] != "https://example.com/jq-1.6" {
		t.Fatalf("unexpected binaries method: %+v", doc.Binaries)
	}
	if got := doc.Dependencies["apt"]; !reflect.DeepEqual(got, []string{"curl"}) {
		t.Fatalf("unexpected dependencies: %v", got)
	}
}

func TestDecodeTemplateUnknownField(t *testing.T) {
	_, err := DecodeTemplate([]byte("name: jq\nbogus: true\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	var violation *Violation
	if !errors.As(err, &violation) {
		t.Fatalf("expected *Violation, got %T", err)
	}
}

func TestDecodeTemplateEmpty(t *testing.T) {
	_, err := DecodeTemplate(nil)
	if err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestValidateTemplate(t *testing.T) {
	valid := func() TemplateDoc {
		return TemplateDoc{
			Name: "jq",
			Binaries: &MethodDoc{
				URLs:         map[string]string{"1.6": "https://example.com/jq-1.6"},
				Instructions: []string{"curl -o /usr/local/bin/jq {{url}}"},
			},
		}
	}

	tests := []struct {
		name     string
		mutate   func(*TemplateDoc)
		wantPath string
	}{
		{
			name:   "valid",
			mutate: func(doc *TemplateDoc) {},
		},
		{
			name:     "missing name",
			mutate:   func(doc *TemplateDoc) { doc.Name = "  " },
			wantPath: "/name",
		},
		{
			name:     "no method",
			mutate:   func(doc *TemplateDoc) { doc.Binaries = nil },
			wantPath: "/",
		},
		{
			name: "unknown package manager",
			mutate: func(doc *TemplateDoc) {
				doc.Dependencies = map[string][]string{"brew": {"jq"}}
			},
			wantPath: "/dependencies/brew",
		},
		{
			name: "blank package name",
			mutate: func(doc *TemplateDoc) {
				doc.Dependencies = map[string][]string{"apt": {"curl", " "}}
			},
			wantPath: "/dependencies/apt/1",
		},
		{
			name:     "no instructions",
			mutate:   func(doc *TemplateDoc) { doc.Binaries.Instructions = nil },
			wantPath: "/binaries/instructions",
		},
		{
			name: "blank instruction line",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries.Instructions = []string{"echo ok", "   "}
			},
			wantPath: "/binaries/instructions/1",
		},
		{
			name:     "binaries without urls",
			mutate:   func(doc *TemplateDoc) { doc.Binaries.URLs = nil },
			wantPath: "/binaries/urls",
		},
		{
			name: "empty url",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries.URLs = map[string]string{"1.6": " "}
			},
			wantPath: "/binaries/urls",
		},
		{
			name: "wildcard url without version placeholder",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries.URLs = map[string]string{"*": "https://example.com/latest"}
			},
			wantPath: "/binaries/urls/*",
		},
		{
			name: "source with urls",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries = nil
				doc.Source = &MethodDoc{
					URLs:         map[string]string{"1.6": "https://example.com"},
					Instructions: []string{"make install"},
				}
			},
			wantPath: "/source/urls",
		},
		{
			name: "argument shadows reserved name",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries.Arguments = map[string]*string{"version": nil}
			},
			wantPath: "/binaries/arguments/version",
		},
		{
			name: "undeclared placeholder in instruction",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries.Instructions = []string{"echo {{prefix}}"}
			},
			wantPath: "/binaries/instructions/0",
		},
		{
			name: "undeclared placeholder in env",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries.Env = map[string]string{"PATH": "{{prefix}}/bin"}
			},
			wantPath: "/binaries/env/PATH",
		},
		{
			name: "url placeholder reserved for binaries only",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries = nil
				doc.Source = &MethodDoc{Instructions: []string{"curl {{url}}"}}
			},
			wantPath: "/source/instructions/0",
		},
		{
			name: "declared argument placeholder ok",
			mutate: func(doc *TemplateDoc) {
				doc.Binaries.Arguments = map[string]*string{"prefix": testutil.StrPtr("/usr/local")}
				doc.Binaries.Instructions = []string{"install -m755 jq {{prefix}}/bin"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid()
			tt.mutate(&doc)
			err := ValidateTemplate(doc)
			if tt.wantPath == "" {
				if err != nil {
					t.Fatalf("ValidateTemplate: %v", err)
				}
				return
			}
			var violation *Violation
			if !errors.As(err, &violation) {
				t.Fatalf("expected *Violation, got %v", err)
			}
			if violation.Path != tt.wantPath {
				t.Fatalf("path = %q, want %q", violation.Path, tt.wantPath)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("curl {{ url }} -o jq-{{version}} # {{url}} again")
	if !reflect.DeepEqual(got, []string{"url", "version"}) {
		t.Fatalf("Placeholders = %v", got)
	}
	if Placeholders("no refs here") != nil {
		t.Fatal("expected nil for text without placeholders")
	}
}

func TestViolationMessage(t *testing.T) {
	err := ValidateTemplate(TemplateDoc{})
	if err == nil || !strings.HasPrefix(err.Error(), "/name: ") {
		t.Fatalf("unexpected error: %v", err)
	}
}
