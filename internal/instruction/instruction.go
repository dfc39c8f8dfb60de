// Package instruction defines the closed set of primitive container build
// instructions. Template resolution produces them and renderers accumulate
// them; the dialect-specific serialization lives in the render package.
package instruction

import "reflect"

// Kind identifies an instruction variant. The values double as the step
// keys in build spec documents.
type Kind string

// Instruction kinds.
const (
	KindFrom       Kind = "from_"
	KindRun        Kind = "run"
	KindEnv        Kind = "env"
	KindCopy       Kind = "copy"
	KindWorkdir    Kind = "workdir"
	KindUser       Kind = "user"
	KindLabel      Kind = "label"
	KindArg        Kind = "arg"
	KindEntrypoint Kind = "entrypoint"
)

// Instruction is one primitive build step. Implementations are immutable
// value types; compare them with Equal.
type Instruction interface {
	Kind() Kind
}

// From sets the base image.
type From struct {
	Image string
}

// Run executes a shell command. Command may span multiple lines; renderers
// decide how the lines are joined.
type Run struct {
	Command string
}

// Env sets a single environment variable.
type Env struct {
	Key   string
	Value string
}

// Copy copies files from the build context into the image.
type Copy struct {
	Sources     []string
	Destination string
}

// Workdir sets the working directory.
type Workdir struct {
	Path string
}

// User switches the active user.
type User struct {
	Name string
}

// Label attaches a single metadata label.
type Label struct {
	Key   string
	Value string
}

// Arg declares a build argument with an optional default.
type Arg struct {
	Name    string
	Default string
}

// Entrypoint sets the container entrypoint.
type Entrypoint struct {
	Args []string
}

// Kind implements Instruction.
func (From) Kind() Kind { return KindFrom }

// Kind implements Instruction.
func (Run) Kind() Kind { return KindRun }

// Kind implements Instruction.
func (Env) Kind() Kind { return KindEnv }

// Kind implements Instruction.
func (Copy) Kind() Kind { return KindCopy }

// Kind implements Instruction.
func (Workdir) Kind() Kind { return KindWorkdir }

// Kind implements Instruction.
func (User) Kind() Kind { return KindUser }

// Kind implements Instruction.
func (Label) Kind() Kind { return KindLabel }

// Kind implements Instruction.
func (Arg) Kind() Kind { return KindArg }

// Kind implements Instruction.
func (Entrypoint) Kind() Kind { return KindEntrypoint }

// Equal reports structural equality of two instructions.
func Equal(a, b Instruction) bool {
	return reflect.DeepEqual(a, b)
}
