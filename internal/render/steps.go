package render

import (
	"fmt"
	"sort"

	"github.com/conn-castle/recipegen/internal/instruction"
	"github.com/conn-castle/recipegen/internal/messages"
	"github.com/conn-castle/recipegen/internal/schema"
)

// FromSteps replays a validated build spec through the renderer in list
// order. It is the inverse of Steps and enables serialize, store, reload,
// re-render round trips. The first failing step aborts the replay.
func FromSteps(r Renderer, steps []schema.Step) error {
	for i, step := range steps {
		if err := applyStep(r, step); err != nil {
			return fmt.Errorf(messages.RenderStepFmt, i, step.Kind, err)
		}
	}
	return nil
}

func applyStep(r Renderer, step schema.Step) error {
	switch step.Kind {
	case string(instruction.KindFrom):
		return r.FromImage(step.From.Image)
	case string(instruction.KindRun):
		return r.Run(step.Run.Command)
	case string(instruction.KindEnv):
		for _, key := range sortedKeys(step.Env) {
			if err := r.Env(key, step.Env[key]); err != nil {
				return err
			}
		}
		return nil
	case string(instruction.KindCopy):
		return r.Copy(step.Copy.Source, step.Copy.Destination)
	case string(instruction.KindWorkdir):
		return r.Workdir(step.Workdir.Path)
	case string(instruction.KindUser):
		return r.User(step.User.Name)
	case string(instruction.KindLabel):
		for _, key := range sortedKeys(step.Label) {
			if err := r.Label(key, step.Label[key]); err != nil {
				return err
			}
		}
		return nil
	case string(instruction.KindArg):
		return r.Arg(step.Arg.Name, step.Arg.Default)
	case string(instruction.KindEntrypoint):
		return r.Entrypoint(step.Entrypoint.Args)
	case schema.StepKindInstall:
		return r.Install(step.Install.Name, step.Install.Method, step.Install.Version, step.Install.Vars)
	}
	return nil
}

// Steps returns the structured form of the renderer's accumulated state:
// one primitive step per instruction. Install steps expand at append
// time, so the structured form of a rendered state never re-resolves
// templates.
func Steps(r Renderer) []schema.Step {
	instrs := r.Instructions()
	steps := make([]schema.Step, 0, len(instrs))
	for _, in := range instrs {
		switch in := in.(type) {
		case instruction.From:
			steps = append(steps, schema.Step{Kind: string(instruction.KindFrom), From: &schema.FromStep{Image: in.Image}})
		case instruction.Run:
			steps = append(steps, schema.Step{Kind: string(instruction.KindRun), Run: &schema.RunStep{Command: in.Command}})
		case instruction.Env:
			steps = append(steps, schema.Step{Kind: string(instruction.KindEnv), Env: map[string]string{in.Key: in.Value}})
		case instruction.Copy:
			steps = append(steps, schema.Step{Kind: string(instruction.KindCopy), Copy: &schema.CopyStep{Source: in.Sources, Destination: in.Destination}})
		case instruction.Workdir:
			steps = append(steps, schema.Step{Kind: string(instruction.KindWorkdir), Workdir: &schema.WorkdirStep{Path: in.Path}})
		case instruction.User:
			steps = append(steps, schema.Step{Kind: string(instruction.KindUser), User: &schema.UserStep{Name: in.Name}})
		case instruction.Label:
			steps = append(steps, schema.Step{Kind: string(instruction.KindLabel), Label: map[string]string{in.Key: in.Value}})
		case instruction.Arg:
			steps = append(steps, schema.Step{Kind: string(instruction.KindArg), Arg: &schema.ArgStep{Name: in.Name, Default: in.Default}})
		case instruction.Entrypoint:
			steps = append(steps, schema.Step{Kind: string(instruction.KindEntrypoint), Entrypoint: &schema.EntrypointStep{Args: in.Args}})
		}
	}
	return steps
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
