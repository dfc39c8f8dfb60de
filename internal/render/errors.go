package render

import (
	"fmt"

	"github.com/conn-castle/recipegen/internal/instruction"
	"github.com/conn-castle/recipegen/internal/messages"
)

// NoBaseImageError reports an instruction issued before the base image
// was set.
type NoBaseImageError struct {
	Kind instruction.Kind
}

// Error implements error.
func (e *NoBaseImageError) Error() string {
	return fmt.Sprintf(messages.RenderNoBaseImageFmt, string(e.Kind))
}

// UnsupportedInstructionError reports an instruction kind the target
// dialect cannot express.
type UnsupportedInstructionError struct {
	Dialect string
	Kind    instruction.Kind
}

// Error implements error.
func (e *UnsupportedInstructionError) Error() string {
	return fmt.Sprintf(messages.RenderUnsupportedFmt, e.Dialect, string(e.Kind))
}

// BootstrapAgentError reports a Singularity base image reference with an
// unrecognized URI scheme.
type BootstrapAgentError struct {
	Ref string
}

// Error implements error.
func (e *BootstrapAgentError) Error() string {
	return fmt.Sprintf(messages.RenderBootstrapFmt, e.Ref)
}
