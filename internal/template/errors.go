package template

import (
	"fmt"
	"strings"

	"github.com/conn-castle/recipegen/internal/messages"
)

// UnknownTemplateError reports a registry lookup miss.
type UnknownTemplateError struct {
	Name       string
	Registered []string
}

// Error implements error.
func (e *UnknownTemplateError) Error() string {
	if len(e.Registered) == 0 {
		return fmt.Sprintf(messages.TemplateNoneRegistered, e.Name)
	}
	return fmt.Sprintf(messages.TemplateUnknownFmt, e.Name, quoteList(e.Registered))
}

// DuplicateTemplateError reports a registration collision.
type DuplicateTemplateError struct {
	Name string
}

// Error implements error.
func (e *DuplicateTemplateError) Error() string {
	return fmt.Sprintf(messages.TemplateDuplicateFmt, e.Name)
}

// UnknownMethodError reports an install method absent from a template.
type UnknownMethodError struct {
	Template string
	Method   string
	Methods  []string
}

// Error implements error.
func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf(messages.TemplateUnknownMethFmt, e.Method, e.Template, quoteList(e.Methods))
}

// UnknownVersionError reports a version with no exact URL entry and no
// wildcard URL template.
type UnknownVersionError struct {
	Template string
	Method   string
	Version  string
	Versions []string
}

// Error implements error.
func (e *UnknownVersionError) Error() string {
	if len(e.Versions) == 0 {
		return fmt.Sprintf(messages.TemplateAnyVersionFmt, e.Version, e.Template, e.Method)
	}
	return fmt.Sprintf(messages.TemplateUnknownVerFmt, e.Version, e.Template, e.Method, quoteList(e.Versions))
}

// UnsupportedPackageManagerError reports a package manager that is either
// unrecognized or absent from both the template-level and method-level
// dependency mappings.
type UnsupportedPackageManagerError struct {
	Template   string
	PkgManager string
}

// Error implements error.
func (e *UnsupportedPackageManagerError) Error() string {
	return fmt.Sprintf(messages.TemplatePkgManagerFmt, e.PkgManager, e.Template)
}

// UndeclaredVariableError reports a placeholder with no binding, or a
// caller-supplied variable the template does not declare.
type UndeclaredVariableError struct {
	Template string
	Method   string
	Name     string
}

// Error implements error.
func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf(messages.TemplateUndeclaredFmt, e.Name, e.Template, e.Method)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
