package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conn-castle/recipegen/internal/messages"
)

// StepKindInstall expands a registered template; the remaining kinds map
// one-to-one onto primitive instructions.
const StepKindInstall = "install"

var stepKinds = []string{
	"from_", "run", "env", "copy", "workdir", "user", "label", "arg",
	"entrypoint", StepKindInstall,
}

// Step is one validated entry of a build spec document. Exactly one of
// the payload fields matching Kind is set.
type Step struct {
	Kind       string
	From       *FromStep
	Run        *RunStep
	Env        map[string]string
	Copy       *CopyStep
	Workdir    *WorkdirStep
	User       *UserStep
	Label      map[string]string
	Arg        *ArgStep
	Entrypoint *EntrypointStep
	Install    *InstallStep
}

// FromStep sets the base image.
type FromStep struct {
	Image string `yaml:"image"`
}

// RunStep runs a shell command.
type RunStep struct {
	Command string `yaml:"command"`
}

// CopyStep copies files into the image.
type CopyStep struct {
	Source      []string `yaml:"source"`
	Destination string   `yaml:"destination"`
}

// WorkdirStep sets the working directory.
type WorkdirStep struct {
	Path string `yaml:"path"`
}

// UserStep switches the active user.
type UserStep struct {
	Name string `yaml:"name"`
}

// ArgStep declares a build argument.
type ArgStep struct {
	Name    string `yaml:"name"`
	Default string `yaml:"default,omitempty"`
}

// EntrypointStep sets the container entrypoint.
type EntrypointStep struct {
	Args []string `yaml:"args"`
}

// InstallStep references a registered template. Method may be empty, in
// which case resolution prefers binaries and falls back to source.
type InstallStep struct {
	Name    string            `yaml:"name"`
	Method  string            `yaml:"method,omitempty"`
	Version string            `yaml:"version"`
	Vars    map[string]string `yaml:"vars,omitempty"`
}

// DecodeSteps parses and validates a build spec document: an ordered list
// of single-key step objects. Scalar shorthand is accepted for from_,
// run, workdir, and user (e.g. "- run: echo hi").
func DecodeSteps(data []byte) ([]Step, error) {
	var raw []map[string]yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, violationf("/", messages.SchemaStepsEmpty)
		}
		return nil, violationf("/", messages.SchemaDecodeFmt, err)
	}
	if len(raw) == 0 {
		return nil, violationf("/", messages.SchemaStepsEmpty)
	}

	steps := make([]Step, 0, len(raw))
	for i, entry := range raw {
		if len(entry) != 1 {
			return nil, violationf(fmt.Sprintf("/%d", i), messages.SchemaStepSingleKeyFmt, len(entry))
		}
		var kind string
		var node yaml.Node
		for key, value := range entry {
			kind, node = key, value
		}
		step, err := decodeStep(kind, &node, fmt.Sprintf("/%d/%s", i, kind))
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func decodeStep(kind string, node *yaml.Node, path string) (Step, error) {
	step := Step{Kind: kind}
	switch kind {
	case "from_":
		from := &FromStep{}
		if node.Kind == yaml.ScalarNode {
			from.Image = node.Value
		} else if err := decodeStrict(node, from, path); err != nil {
			return Step{}, err
		}
		if strings.TrimSpace(from.Image) == "" {
			return Step{}, violationf(path+"/image", messages.SchemaStepImageRequired)
		}
		step.From = from
	case "run":
		run := &RunStep{}
		if node.Kind == yaml.ScalarNode {
			run.Command = node.Value
		} else if err := decodeStrict(node, run, path); err != nil {
			return Step{}, err
		}
		if strings.TrimSpace(run.Command) == "" {
			return Step{}, violationf(path+"/command", messages.SchemaStepCommandEmpty)
		}
		step.Run = run
	case "env":
		env := map[string]string{}
		if err := decodeStrict(node, &env, path); err != nil {
			return Step{}, err
		}
		if len(env) == 0 {
			return Step{}, violationf(path, messages.SchemaStepEnvEmpty)
		}
		step.Env = env
	case "copy":
		cp := &CopyStep{}
		if err := decodeStrict(node, cp, path); err != nil {
			return Step{}, err
		}
		if len(cp.Source) == 0 {
			return Step{}, violationf(path+"/source", messages.SchemaStepCopySource)
		}
		if strings.TrimSpace(cp.Destination) == "" {
			return Step{}, violationf(path+"/destination", messages.SchemaStepCopyDest)
		}
		step.Copy = cp
	case "workdir":
		wd := &WorkdirStep{}
		if node.Kind == yaml.ScalarNode {
			wd.Path = node.Value
		} else if err := decodeStrict(node, wd, path); err != nil {
			return Step{}, err
		}
		if strings.TrimSpace(wd.Path) == "" {
			return Step{}, violationf(path+"/path", messages.SchemaStepPathRequired)
		}
		step.Workdir = wd
	case "user":
		user := &UserStep{}
		if node.Kind == yaml.ScalarNode {
			user.Name = node.Value
		} else if err := decodeStrict(node, user, path); err != nil {
			return Step{}, err
		}
		if strings.TrimSpace(user.Name) == "" {
			return Step{}, violationf(path+"/name", messages.SchemaStepUserRequired)
		}
		step.User = user
	case "label":
		label := map[string]string{}
		if err := decodeStrict(node, &label, path); err != nil {
			return Step{}, err
		}
		if len(label) == 0 {
			return Step{}, violationf(path, messages.SchemaStepLabelEmpty)
		}
		step.Label = label
	case "arg":
		arg := &ArgStep{}
		if node.Kind == yaml.ScalarNode {
			arg.Name = node.Value
		} else if err := decodeStrict(node, arg, path); err != nil {
			return Step{}, err
		}
		if strings.TrimSpace(arg.Name) == "" {
			return Step{}, violationf(path+"/name", messages.SchemaStepArgName)
		}
		step.Arg = arg
	case "entrypoint":
		ep := &EntrypointStep{}
		if node.Kind == yaml.SequenceNode {
			if err := node.Decode(&ep.Args); err != nil {
				return Step{}, violationf(path, messages.SchemaDecodeFmt, err)
			}
		} else if err := decodeStrict(node, ep, path); err != nil {
			return Step{}, err
		}
		if len(ep.Args) == 0 {
			return Step{}, violationf(path+"/args", messages.SchemaStepEntrypoint)
		}
		step.Entrypoint = ep
	case StepKindInstall:
		install := &InstallStep{}
		if err := decodeStrict(node, install, path); err != nil {
			return Step{}, err
		}
		if strings.TrimSpace(install.Name) == "" {
			return Step{}, violationf(path+"/name", messages.SchemaStepInstallName)
		}
		if install.Method != "" && install.Method != MethodBinaries && install.Method != MethodSource {
			return Step{}, violationf(path+"/method", messages.SchemaStepMethodFmt, install.Method)
		}
		if strings.TrimSpace(install.Version) == "" {
			return Step{}, violationf(path+"/version", messages.SchemaStepVersion)
		}
		step.Install = install
	default:
		return Step{}, violationf(strings.TrimSuffix(path, "/"+kind), messages.SchemaStepUnknownFmt, kind, quoteList(stepKinds))
	}
	return step, nil
}

// decodeStrict re-decodes a YAML node into out, rejecting unknown fields.
// yaml.Node.Decode has no strict mode, so the node is round-tripped
// through a strict decoder.
func decodeStrict(node *yaml.Node, out any, path string) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return violationf(path, messages.SchemaDecodeFmt, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return violationf(path, messages.SchemaDecodeFmt, err)
	}
	return nil
}

// MarshalSteps serializes steps back into build spec YAML. It is the
// inverse of DecodeSteps for documents written in the canonical (mapping)
// form.
func MarshalSteps(steps []Step) ([]byte, error) {
	docs := make([]map[string]any, 0, len(steps))
	for _, step := range steps {
		var payload any
		switch step.Kind {
		case "from_":
			payload = step.From
		case "run":
			payload = step.Run
		case "env":
			payload = sortedStringMap(step.Env)
		case "copy":
			payload = step.Copy
		case "workdir":
			payload = step.Workdir
		case "user":
			payload = step.User
		case "label":
			payload = sortedStringMap(step.Label)
		case "arg":
			payload = step.Arg
		case "entrypoint":
			payload = step.Entrypoint
		case StepKindInstall:
			payload = step.Install
		}
		docs = append(docs, map[string]any{step.Kind: payload})
	}
	return yaml.Marshal(docs)
}

func sortedStringMap(m map[string]string) map[string]string {
	// yaml.v3 already sorts map keys on marshal; copy to detach from the
	// caller's map.
	out := make(map[string]string, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}
