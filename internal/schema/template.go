package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conn-castle/recipegen/internal/messages"
)

// Install method names.
const (
	MethodBinaries = "binaries"
	MethodSource   = "source"
)

// Reserved variable names that may appear in instruction text without
// being declared in a method's arguments.
const (
	VarVersion    = "version"
	VarPkgManager = "pkg_manager"
	// VarURL is bound to the resolved download URL; binaries methods only.
	VarURL = "url"
)

// WildcardVersion is the urls key whose value acts as a URL template for
// versions without an exact entry.
const WildcardVersion = "*"

// PlaceholderPattern matches {{name}} variable references in instruction
// and environment text. The submatch is the variable name.
var PlaceholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Placeholders returns the variable names referenced by s, in order of
// first appearance.
func Placeholders(s string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, match := range PlaceholderPattern.FindAllStringSubmatch(s, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// TemplateDoc is the on-disk shape of one installation template.
type TemplateDoc struct {
	Name string `yaml:"name"`
	// Dependencies maps a package manager to packages required by every
	// install method. Method-level dependencies are appended to these at
	// resolution time.
	Dependencies map[string][]string `yaml:"dependencies,omitempty"`
	Binaries     *MethodDoc          `yaml:"binaries,omitempty"`
	Source       *MethodDoc          `yaml:"source,omitempty"`
}

// MethodDoc describes one install method. URLs is only meaningful for the
// binaries method and is forbidden on source methods.
type MethodDoc struct {
	URLs         map[string]string   `yaml:"urls,omitempty"`
	Env          map[string]string   `yaml:"env,omitempty"`
	Instructions []string            `yaml:"instructions"`
	Arguments    map[string]*string  `yaml:"arguments,omitempty"`
	Dependencies map[string][]string `yaml:"dependencies,omitempty"`
}

// DecodeTemplate parses a template document, rejecting unknown fields.
func DecodeTemplate(data []byte) (TemplateDoc, error) {
	var doc TemplateDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return TemplateDoc{}, violationf("/", messages.SchemaDecodeFmt, "document is empty")
		}
		return TemplateDoc{}, violationf("/", messages.SchemaDecodeFmt, err)
	}
	return doc, nil
}

// ValidateTemplate checks a template document against the template schema.
// The first problem found is returned as a *Violation.
func ValidateTemplate(doc TemplateDoc) error {
	if strings.TrimSpace(doc.Name) == "" {
		return violationf("/name", messages.SchemaNameRequired)
	}
	if doc.Binaries == nil && doc.Source == nil {
		return violationf("/", messages.SchemaMethodRequired)
	}
	if err := validateDependencies(doc.Dependencies, "/dependencies"); err != nil {
		return err
	}
	if doc.Binaries != nil {
		if err := validateMethod(*doc.Binaries, MethodBinaries, "/"+MethodBinaries); err != nil {
			return err
		}
	}
	if doc.Source != nil {
		if err := validateMethod(*doc.Source, MethodSource, "/"+MethodSource); err != nil {
			return err
		}
	}
	return nil
}

func validateMethod(m MethodDoc, method, path string) error {
	if len(m.Instructions) == 0 {
		return violationf(path+"/instructions", messages.SchemaInstructionsEmpty)
	}
	for i, line := range m.Instructions {
		if strings.TrimSpace(line) == "" {
			return violationf(fmt.Sprintf("%s/instructions/%d", path, i), messages.SchemaInstructionBlankFmt)
		}
	}

	switch method {
	case MethodBinaries:
		if len(m.URLs) == 0 {
			return violationf(path+"/urls", messages.SchemaURLsRequired)
		}
		for version, url := range m.URLs {
			if strings.TrimSpace(url) == "" {
				return violationf(path+"/urls", messages.SchemaURLEmptyFmt, version)
			}
		}
		if url, ok := m.URLs[WildcardVersion]; ok {
			if !referencesVariable(url, VarVersion) {
				return violationf(path+"/urls/"+WildcardVersion, messages.SchemaWildcardURLFmt, url)
			}
		}
	case MethodSource:
		if len(m.URLs) != 0 {
			return violationf(path+"/urls", messages.SchemaURLsForbidden)
		}
	}

	if err := validateDependencies(m.Dependencies, path+"/dependencies"); err != nil {
		return err
	}

	reserved := reservedVars(method)
	for name := range m.Arguments {
		if _, ok := reserved[name]; ok {
			return violationf(path+"/arguments/"+name, messages.SchemaArgumentReservedFmt, name)
		}
	}

	declared := declaredVars(m, reserved)
	for i, line := range m.Instructions {
		if err := checkPlaceholders(line, declared, fmt.Sprintf("%s/instructions/%d", path, i)); err != nil {
			return err
		}
	}
	envKeys := make([]string, 0, len(m.Env))
	for key := range m.Env {
		envKeys = append(envKeys, key)
	}
	sort.Strings(envKeys)
	for _, key := range envKeys {
		if err := checkPlaceholders(m.Env[key], declared, path+"/env/"+key); err != nil {
			return err
		}
	}
	return nil
}

func validateDependencies(deps map[string][]string, path string) error {
	for manager, pkgs := range deps {
		if !KnownPackageManager(manager) {
			return violationf(path+"/"+manager, messages.SchemaPkgManagerFmt, manager, quoteList(PackageManagers()))
		}
		for i, pkg := range pkgs {
			if strings.TrimSpace(pkg) == "" {
				return violationf(fmt.Sprintf("%s/%s/%d", path, manager, i), messages.SchemaPackageEmptyFmt)
			}
		}
	}
	return nil
}

func reservedVars(method string) map[string]struct{} {
	reserved := map[string]struct{}{
		VarVersion:    {},
		VarPkgManager: {},
	}
	if method == MethodBinaries {
		reserved[VarURL] = struct{}{}
	}
	return reserved
}

func declaredVars(m MethodDoc, reserved map[string]struct{}) map[string]struct{} {
	declared := make(map[string]struct{}, len(m.Arguments)+len(reserved))
	for name := range reserved {
		declared[name] = struct{}{}
	}
	for name := range m.Arguments {
		declared[name] = struct{}{}
	}
	return declared
}

func checkPlaceholders(text string, declared map[string]struct{}, path string) error {
	for _, name := range Placeholders(text) {
		if _, ok := declared[name]; !ok {
			reserved := []string{VarVersion, VarPkgManager, VarURL}
			return violationf(path, messages.SchemaVariableFmt, name, quoteList(reserved))
		}
	}
	return nil
}

func referencesVariable(text, name string) bool {
	for _, ref := range Placeholders(text) {
		if ref == name {
			return true
		}
	}
	return false
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
