// Package render accumulates build instructions and serializes them to
// Dockerfile or Singularity definition-file text. A renderer is a plain
// mutable accumulator: not safe for concurrent mutation, reusable after
// Render, and bound to one package manager and one template registry for
// its lifetime.
package render

import (
	"errors"

	"github.com/conn-castle/recipegen/internal/instruction"
	"github.com/conn-castle/recipegen/internal/messages"
	"github.com/conn-castle/recipegen/internal/schema"
	"github.com/conn-castle/recipegen/internal/template"
)

// Renderer is the mutator surface shared by the Docker and Singularity
// renderers. All append methods other than FromImage fail with
// NoBaseImageError until a base image is set. Render is a pure read of
// the accumulated state and may be called repeatedly; instructions
// appended afterwards show up in the next Render.
type Renderer interface {
	FromImage(ref string) error
	Run(command string) error
	Env(key, value string) error
	Copy(sources []string, destination string) error
	Workdir(path string) error
	User(name string) error
	Label(key, value string) error
	Arg(name, defaultValue string) error
	Entrypoint(args []string) error
	Install(name, method, version string, vars map[string]string) error
	Instructions() []instruction.Instruction
	Render() string
}

// core is the dialect-independent accumulator embedded by both renderers.
type core struct {
	registry   *template.Registry
	pkgManager string
	baseSet    bool
	instrs     []instruction.Instruction
}

func newCore(registry *template.Registry, pkgManager string) (core, error) {
	if registry == nil {
		return core{}, errors.New(messages.RenderRegistryRequired)
	}
	if !schema.KnownPackageManager(pkgManager) {
		return core{}, &template.UnsupportedPackageManagerError{PkgManager: pkgManager}
	}
	return core{
		registry:   registry,
		pkgManager: pkgManager,
	}, nil
}

// append guards the Empty -> BaseImageSet transition and records the
// instruction. Merging of consecutive Run/Env instructions happens at
// render time so the recorded sequence stays faithful to the calls made.
func (c *core) append(in instruction.Instruction) error {
	if !c.baseSet {
		return &NoBaseImageError{Kind: in.Kind()}
	}
	c.instrs = append(c.instrs, in)
	return nil
}

// FromImage sets the base image. It must be the first instruction.
func (c *core) FromImage(ref string) error {
	c.baseSet = true
	c.instrs = append(c.instrs, instruction.From{Image: ref})
	return nil
}

// Run appends a shell command.
func (c *core) Run(command string) error {
	return c.append(instruction.Run{Command: command})
}

// Env appends an environment variable assignment.
func (c *core) Env(key, value string) error {
	return c.append(instruction.Env{Key: key, Value: value})
}

// Copy appends a file copy from the build context.
func (c *core) Copy(sources []string, destination string) error {
	srcs := make([]string, len(sources))
	copy(srcs, sources)
	return c.append(instruction.Copy{Sources: srcs, Destination: destination})
}

// Workdir appends a working directory change.
func (c *core) Workdir(path string) error {
	return c.append(instruction.Workdir{Path: path})
}

// User switches the active user. Rendering emits an account-creating Run
// before the first switch to a user the build has not seen.
func (c *core) User(name string) error {
	return c.append(instruction.User{Name: name})
}

// Label appends a metadata label.
func (c *core) Label(key, value string) error {
	return c.append(instruction.Label{Key: key, Value: value})
}

// Arg declares a build argument.
func (c *core) Arg(name, defaultValue string) error {
	return c.append(instruction.Arg{Name: name, Default: defaultValue})
}

// Entrypoint sets the container entrypoint.
func (c *core) Entrypoint(args []string) error {
	copied := make([]string, len(args))
	copy(copied, args)
	return c.append(instruction.Entrypoint{Args: copied})
}

// Install resolves a registered template and appends every resulting
// instruction in order, each subject to the same merge rules as if issued
// individually.
func (c *core) Install(name, method, version string, vars map[string]string) error {
	if !c.baseSet {
		return &NoBaseImageError{Kind: instruction.Kind(schema.StepKindInstall)}
	}
	t, err := c.registry.Get(name)
	if err != nil {
		return err
	}
	resolved, err := t.Resolve(method, version, c.pkgManager, vars)
	if err != nil {
		return err
	}
	for _, in := range resolved.Instructions {
		if err := c.append(in); err != nil {
			return err
		}
	}
	return nil
}

// Instructions returns a copy of the accumulated instruction sequence.
func (c *core) Instructions() []instruction.Instruction {
	out := make([]instruction.Instruction, len(c.instrs))
	copy(out, c.instrs)
	return out
}

// PkgManager returns the package manager the renderer resolves
// dependencies with.
func (c *core) PkgManager() string { return c.pkgManager }

// createUserCommand is the shell line that creates a user account on its
// first appearance in a build. "root" always exists and never needs one.
func createUserCommand(name string) string {
	return `test "$(getent passwd ` + name + `)" || useradd --no-user-group --create-home --shell /bin/bash ` + name
}
