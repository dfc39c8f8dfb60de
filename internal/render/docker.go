package render

import (
	"fmt"
	"strings"

	"github.com/conn-castle/recipegen/internal/instruction"
	"github.com/conn-castle/recipegen/internal/template"
)

// Docker renders the accumulated instructions as Dockerfile text.
type Docker struct {
	core
}

// NewDocker creates a Docker renderer bound to registry and pkgManager.
func NewDocker(registry *template.Registry, pkgManager string) (*Docker, error) {
	c, err := newCore(registry, pkgManager)
	if err != nil {
		return nil, err
	}
	return &Docker{core: c}, nil
}

// Render serializes the instruction sequence to Dockerfile text.
// Consecutive Run instructions collapse into one RUN joined with the
// shell && idiom; consecutive Env instructions collapse into one ENV.
func (d *Docker) Render() string {
	var parts []string
	users := map[string]struct{}{"root": {}}
	instrs := d.instrs
	for i := 0; i < len(instrs); {
		switch in := instrs[i].(type) {
		case instruction.From:
			parts = append(parts, "FROM "+in.Image)
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
			parts = append(parts, dockerRun(strings.Join(commands, "\n")))
		case instruction.Env:
			var pairs []instruction.Env
			for i < len(instrs) {
				env, ok := instrs[i].(instruction.Env)
				if !ok {
					break
				}
				pairs = append(pairs, env)
				i++
			}
			parts = append(parts, dockerEnv(pairs))
		case instruction.Copy:
			parts = append(parts, dockerCopy(in))
			i++
		case instruction.Workdir:
			parts = append(parts, "WORKDIR "+in.Path)
			i++
		case instruction.User:
			if _, seen := users[in.Name]; !seen {
				parts = append(parts, dockerRun(createUserCommand(in.Name)))
				users[in.Name] = struct{}{}
			}
			parts = append(parts, "USER "+in.Name)
			i++
		case instruction.Label:
			parts = append(parts, fmt.Sprintf("LABEL %s=%q", in.Key, in.Value))
			i++
		case instruction.Arg:
			if in.Default == "" {
				parts = append(parts, "ARG "+in.Name)
			} else {
				parts = append(parts, fmt.Sprintf("ARG %s=%s", in.Name, in.Default))
			}
			i++
		case instruction.Entrypoint:
			quoted := make([]string, len(in.Args))
			for j, arg := range in.Args {
				quoted[j] = fmt.Sprintf("%q", arg)
			}
			parts = append(parts, "ENTRYPOINT ["+strings.Join(quoted, ", ")+"]")
			i++
		default:
			i++
		}
	}
	return strings.Join(parts, "\n") + "\n"
}

// dockerRun formats a possibly multi-line command as a single RUN
// instruction with backslash continuations, chaining lines with && unless
// a line already continues the previous one.
func dockerRun(command string) string {
	lines := strings.Split(command, "\n")
	var b strings.Builder
	b.WriteString("RUN ")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		if i > 0 {
			b.WriteString(" \\\n    ")
			if !continuesShell(line) {
				b.WriteString("&& ")
			}
		}
		b.WriteString(line)
	}
	return b.String()
}

// continuesShell reports whether a line already chains onto the previous
// shell line and must not get an && prefix.
func continuesShell(line string) bool {
	for _, prefix := range []string{"&&", "&", "||", "|", "fi", "then", "else", "do", "done"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func dockerEnv(pairs []instruction.Env) string {
	assignments := make([]string, len(pairs))
	for i, pair := range pairs {
		assignments[i] = fmt.Sprintf("%s=%q", pair.Key, pair.Value)
	}
	return "ENV " + strings.Join(assignments, " \\\n    ")
}

func dockerCopy(cp instruction.Copy) string {
	items := make([]string, 0, len(cp.Sources)+1)
	items = append(items, cp.Sources...)
	items = append(items, cp.Destination)
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "COPY [" + strings.Join(quoted, ", ") + "]"
}
