package render

import (
	"fmt"
	"strings"

	"github.com/conn-castle/recipegen/internal/instruction"
	"github.com/conn-castle/recipegen/internal/template"
)

const singularityDialect = "singularity"

// Singularity renders the accumulated instructions as a Singularity
// definition file. Instructions are grouped into sections at render time:
// Run, Workdir, and User land in %post, Env in %environment, Copy in
// %files, Label in %labels, and Entrypoint becomes %runscript.
type Singularity struct {
	core
}

// NewSingularity creates a Singularity renderer bound to registry and
// pkgManager.
func NewSingularity(registry *template.Registry, pkgManager string) (*Singularity, error) {
	c, err := newCore(registry, pkgManager)
	if err != nil {
		return nil, err
	}
	return &Singularity{core: c}, nil
}

// FromImage sets the base image. The reference chooses the bootstrap
// agent: a bare image name or docker:// prefix bootstraps from Docker
// Hub, library:// from a container library.
func (s *Singularity) FromImage(ref string) error {
	if _, _, err := splitBootstrap(ref); err != nil {
		return err
	}
	return s.core.FromImage(ref)
}

// Arg is unsupported: Singularity definition files have no build-argument
// equivalent.
func (s *Singularity) Arg(name, defaultValue string) error {
	return &UnsupportedInstructionError{Dialect: singularityDialect, Kind: instruction.KindArg}
}

func splitBootstrap(ref string) (bootstrap, image string, err error) {
	switch {
	case !strings.Contains(ref, "://"):
		return "docker", ref, nil
	case strings.HasPrefix(ref, "docker://"):
		return "docker", strings.TrimPrefix(ref, "docker://"), nil
	case strings.HasPrefix(ref, "library://"):
		return "library", strings.TrimPrefix(ref, "library://"), nil
	default:
		return "", "", &BootstrapAgentError{Ref: ref}
	}
}

// Render serializes the instruction sequence as definition-file text with
// the section order header, %files, %environment, %post, %runscript,
// %labels. Consecutive Run instructions merge into one %post block.
func (s *Singularity) Render() string {
	var header string
	var files []string
	var environment []instruction.Env
	var post []string
	var runscript string
	var labels []instruction.Label

	users := map[string]struct{}{"root": {}}
	instrs := s.instrs
	for i := 0; i < len(instrs); {
		switch in := instrs[i].(type) {
		case instruction.From:
			bootstrap, image, _ := splitBootstrap(in.Image)
			header = fmt.Sprintf("Bootstrap: %s\nFrom: %s", bootstrap, image)
			i++
		case instruction.Run:
			var commands []string
			for i < len(instrs) {
				run, ok := instrs[i].(instruction.Run)
				if !ok {
					break
				}
				commands = append(commands, run.Command)
				i++
			}
			post = append(post, strings.Join(commands, "\n"))
		case instruction.Env:
			environment = append(environment, in)
			i++
		case instruction.Copy:
			for _, src := range in.Sources {
				files = append(files, src+" "+in.Destination)
			}
			i++
		case instruction.Workdir:
			post = append(post, "mkdir -p "+in.Path+"\ncd "+in.Path)
			i++
		case instruction.User:
			if _, seen := users[in.Name]; !seen {
				post = append(post, createUserCommand(in.Name))
				users[in.Name] = struct{}{}
			}
			post = append(post, "su - "+in.Name)
			i++
		case instruction.Label:
			labels = append(labels, in)
			i++
		case instruction.Entrypoint:
			runscript = strings.Join(in.Args, " ")
			i++
		default:
			i++
		}
	}

	var sections []string
	if header != "" {
		sections = append(sections, header)
	}
	if len(files) > 0 {
		sections = append(sections, "%files\n"+strings.Join(files, "\n"))
	}
	if len(environment) > 0 {
		lines := make([]string, len(environment))
		for i, env := range environment {
			lines[i] = fmt.Sprintf("export %s=%q", env.Key, env.Value)
		}
		sections = append(sections, "%environment\n"+strings.Join(lines, "\n"))
	}
	if len(post) > 0 {
		sections = append(sections, "%post\n"+strings.Join(post, "\n\n"))
	}
	if runscript != "" {
		sections = append(sections, "%runscript\n"+runscript)
	}
	if len(labels) > 0 {
		lines := make([]string, len(labels))
		for i, label := range labels {
			lines[i] = label.Key + " " + label.Value
		}
		sections = append(sections, "%labels\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n") + "\n"
}
