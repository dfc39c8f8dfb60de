// Package template holds validated installation templates and resolves
// them into concrete instruction sequences.
package template

import (
	"sort"
	"strings"

	"github.com/conn-castle/recipegen/internal/instruction"
	"github.com/conn-castle/recipegen/internal/schema"
)

// Template is a validated, in-memory description of how to install one
// software package. Templates are immutable after construction.
type Template struct {
	doc     schema.TemplateDoc
	name    string
	deps    map[string][]string
	methods map[string]schema.MethodDoc
}

// New validates doc and builds a Template from it.
func New(doc schema.TemplateDoc) (*Template, error) {
	if err := schema.ValidateTemplate(doc); err != nil {
		return nil, err
	}
	t := &Template{
		doc:     doc,
		name:    strings.ToLower(strings.TrimSpace(doc.Name)),
		deps:    doc.Dependencies,
		methods: make(map[string]schema.MethodDoc, 2),
	}
	if doc.Binaries != nil {
		t.methods[schema.MethodBinaries] = *doc.Binaries
	}
	if doc.Source != nil {
		t.methods[schema.MethodSource] = *doc.Source
	}
	return t, nil
}

// Name returns the template's registry name (lower-case).
func (t *Template) Name() string { return t.name }

// Doc returns the validated source document.
func (t *Template) Doc() schema.TemplateDoc { return t.doc }

// Methods returns the defined install method names, sorted.
func (t *Template) Methods() []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMethod returns the preferred install method: binaries when
// defined, source otherwise.
func (t *Template) DefaultMethod() string {
	if _, ok := t.methods[schema.MethodBinaries]; ok {
		return schema.MethodBinaries
	}
	return schema.MethodSource
}

// ResolvedInstallation is the ephemeral output of one Resolve call: the
// deduplicated dependency packages and the ordered instruction sequence
// that installs the software.
type ResolvedInstallation struct {
	Template     string
	Method       string
	Version      string
	Packages     []string
	Instructions []instruction.Instruction
}

// Resolve expands an install method into a concrete instruction sequence
// for the given version and package manager. An empty method selects
// DefaultMethod. vars supplies values for the method's declared
// arguments; unknown names are rejected.
func (t *Template) Resolve(method, version, pkgManager string, vars map[string]string) (*ResolvedInstallation, error) {
	if method == "" {
		method = t.DefaultMethod()
	}
	m, ok := t.methods[method]
	if !ok {
		return nil, &UnknownMethodError{Template: t.name, Method: method, Methods: t.Methods()}
	}

	if !schema.KnownPackageManager(pkgManager) {
		return nil, &UnsupportedPackageManagerError{Template: t.name, PkgManager: pkgManager}
	}
	templateDeps, inTemplate := t.deps[pkgManager]
	methodDeps, inMethod := m.Dependencies[pkgManager]
	if !inTemplate && !inMethod {
		return nil, &UnsupportedPackageManagerError{Template: t.name, PkgManager: pkgManager}
	}
	packages := mergeDeps(templateDeps, methodDeps)

	values, err := t.bindVariables(m, method, version, pkgManager, vars)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedInstallation{
		Template: t.name,
		Method:   method,
		Version:  version,
		Packages: packages,
	}

	envKeys := make([]string, 0, len(m.Env))
	for key := range m.Env {
		envKeys = append(envKeys, key)
	}
	sort.Strings(envKeys)
	for _, key := range envKeys {
		value, err := substitute(m.Env[key], t.name, method, values)
		if err != nil {
			return nil, err
		}
		resolved.Instructions = append(resolved.Instructions, instruction.Env{Key: key, Value: value})
	}

	if len(packages) > 0 {
		lines := installLines(pkgManager, packages)
		resolved.Instructions = append(resolved.Instructions, instruction.Run{Command: strings.Join(lines, "\n")})
	}

	for _, line := range m.Instructions {
		command, err := substitute(line, t.name, method, values)
		if err != nil {
			return nil, err
		}
		resolved.Instructions = append(resolved.Instructions, instruction.Run{Command: command})
	}

	return resolved, nil
}

// bindVariables assembles the substitution values: reserved names first,
// then declared defaults, then caller-supplied overrides.
func (t *Template) bindVariables(m schema.MethodDoc, method, version, pkgManager string, vars map[string]string) (map[string]string, error) {
	for name := range vars {
		if _, declared := m.Arguments[name]; !declared {
			return nil, &UndeclaredVariableError{Template: t.name, Method: method, Name: name}
		}
	}

	values := map[string]string{
		schema.VarVersion:    version,
		schema.VarPkgManager: pkgManager,
	}
	for name, def := range m.Arguments {
		if def != nil {
			values[name] = *def
		}
	}
	for name, value := range vars {
		values[name] = value
	}

	if method == schema.MethodBinaries {
		url, err := t.resolveURL(m, method, version, values)
		if err != nil {
			return nil, err
		}
		values[schema.VarURL] = url
	}
	return values, nil
}

// resolveURL picks the download URL by exact version match, falling back
// to the wildcard URL template.
func (t *Template) resolveURL(m schema.MethodDoc, method, version string, values map[string]string) (string, error) {
	if url, ok := m.URLs[version]; ok {
		return url, nil
	}
	if pattern, ok := m.URLs[schema.WildcardVersion]; ok {
		return substitute(pattern, t.name, method, values)
	}
	versions := make([]string, 0, len(m.URLs))
	for v := range m.URLs {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return "", &UnknownVersionError{Template: t.name, Method: method, Version: version, Versions: versions}
}
