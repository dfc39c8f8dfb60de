// Package schema validates template documents and build spec documents.
// Validation is all-or-nothing: a document is either accepted in full or
// rejected with a Violation naming the offending path.
package schema

import (
	"fmt"

	"github.com/conn-castle/recipegen/internal/messages"
)

// Violation reports a malformed document. Path is a JSON-pointer-style
// location of the offending value, e.g. "/binaries/instructions/2".
type Violation struct {
	Path    string
	Message string
}

// Error implements error.
func (v *Violation) Error() string {
	return fmt.Sprintf(messages.SchemaViolationFmt, v.Path, v.Message)
}

func violationf(path, format string, args ...any) *Violation {
	return &Violation{Path: path, Message: fmt.Sprintf(format, args...)}
}
