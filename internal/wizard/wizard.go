// Package wizard composes a build spec interactively.
package wizard

import (
	"errors"
	"strings"

	"github.com/conn-castle/recipegen/internal/messages"
	"github.com/conn-castle/recipegen/internal/schema"
	"github.com/conn-castle/recipegen/internal/template"
)

// Output dialects offered by the wizard.
const (
	DialectDocker      = "docker"
	DialectSingularity = "singularity"
)

// Result is the build spec composed by a wizard session.
type Result struct {
	Dialect    string
	PkgManager string
	BaseImage  string
	Steps      []schema.Step
	// Render reports whether the user asked to render immediately.
	Render bool
}

// Run drives a wizard session against ui. Templates offered by the
// install action come from registry.
func Run(ui UI, registry *template.Registry) (*Result, error) {
	result := &Result{Dialect: DialectDocker, PkgManager: schema.Apt}

	if err := ui.Select(messages.WizardDialectTitle, []string{DialectDocker, DialectSingularity}, &result.Dialect); err != nil {
		return nil, err
	}
	if err := ui.Input(messages.WizardBaseImageTitle, &result.BaseImage); err != nil {
		return nil, err
	}
	result.BaseImage = strings.TrimSpace(result.BaseImage)
	if result.BaseImage == "" {
		return nil, errors.New(messages.WizardBaseImageRequired)
	}
	if err := ui.Select(messages.WizardPkgManagerTitle, schema.PackageManagers(), &result.PkgManager); err != nil {
		return nil, err
	}
	result.Steps = append(result.Steps, schema.Step{
		Kind: "from_",
		From: &schema.FromStep{Image: result.BaseImage},
	})

	for {
		step, done, err := nextStep(ui, registry, result.Dialect)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		result.Steps = append(result.Steps, step)
	}

	result.Render = true
	if err := ui.Confirm(messages.WizardDoneConfirm, &result.Render); err != nil {
		return nil, err
	}
	return result, nil
}

func actionOptions(registry *template.Registry) []string {
	actions := make([]string, 0, 8)
	if len(registry.List()) > 0 {
		actions = append(actions, messages.WizardActionInstall)
	}
	return append(actions,
		messages.WizardActionRun,
		messages.WizardActionEnv,
		messages.WizardActionLabel,
		messages.WizardActionWorkdir,
		messages.WizardActionUser,
		messages.WizardActionEntrypoint,
		messages.WizardActionDone,
	)
}

// nextStep prompts for one action and its inputs. done is true when the
// user picked the final action.
func nextStep(ui UI, registry *template.Registry, dialect string) (schema.Step, bool, error) {
	action := messages.WizardActionDone
	if err := ui.Select(messages.WizardActionTitle, actionOptions(registry), &action); err != nil {
		return schema.Step{}, false, err
	}

	switch action {
	case messages.WizardActionInstall:
		step, err := installStep(ui, registry)
		return step, false, err
	case messages.WizardActionRun:
		var command string
		if err := ui.Input(messages.WizardCommandTitle, &command); err != nil {
			return schema.Step{}, false, err
		}
		return schema.Step{Kind: "run", Run: &schema.RunStep{Command: command}}, false, nil
	case messages.WizardActionEnv:
		key, value, err := pair(ui, messages.WizardEnvKeyTitle, messages.WizardEnvValueTitle)
		if err != nil {
			return schema.Step{}, false, err
		}
		return schema.Step{Kind: "env", Env: map[string]string{key: value}}, false, nil
	case messages.WizardActionLabel:
		key, value, err := pair(ui, messages.WizardLabelKeyTitle, messages.WizardLabelValueTitle)
		if err != nil {
			return schema.Step{}, false, err
		}
		return schema.Step{Kind: "label", Label: map[string]string{key: value}}, false, nil
	case messages.WizardActionWorkdir:
		var path string
		if err := ui.Input(messages.WizardWorkdirTitle, &path); err != nil {
			return schema.Step{}, false, err
		}
		return schema.Step{Kind: "workdir", Workdir: &schema.WorkdirStep{Path: path}}, false, nil
	case messages.WizardActionUser:
		var name string
		if err := ui.Input(messages.WizardUserTitle, &name); err != nil {
			return schema.Step{}, false, err
		}
		return schema.Step{Kind: "user", User: &schema.UserStep{Name: name}}, false, nil
	case messages.WizardActionEntrypoint:
		var line string
		if err := ui.Input(messages.WizardEntrypointTitle, &line); err != nil {
			return schema.Step{}, false, err
		}
		return schema.Step{Kind: "entrypoint", Entrypoint: &schema.EntrypointStep{Args: strings.Fields(line)}}, false, nil
	default:
		return schema.Step{}, true, nil
	}
}

func pair(ui UI, keyTitle, valueTitle string) (string, string, error) {
	var key, value string
	if err := ui.Input(keyTitle, &key); err != nil {
		return "", "", err
	}
	if err := ui.Input(valueTitle, &value); err != nil {
		return "", "", err
	}
	return key, value, nil
}

func installStep(ui UI, registry *template.Registry) (schema.Step, error) {
	names := registry.List()
	if len(names) == 0 {
		return schema.Step{}, errors.New(messages.WizardNoTemplates)
	}
	name := names[0]
	if err := ui.Select(messages.WizardTemplateTitle, names, &name); err != nil {
		return schema.Step{}, err
	}
	t, err := registry.Get(name)
	if err != nil {
		return schema.Step{}, err
	}

	method := t.DefaultMethod()
	if methods := t.Methods(); len(methods) > 1 {
		if err := ui.Select(messages.WizardMethodTitle, methods, &method); err != nil {
			return schema.Step{}, err
		}
	}

	var version string
	if err := ui.Input(messages.WizardVersionTitle, &version); err != nil {
		return schema.Step{}, err
	}

	return schema.Step{
		Kind: schema.StepKindInstall,
		Install: &schema.InstallStep{
			Name:    name,
			Method:  method,
			Version: strings.TrimSpace(version),
		},
	}, nil
}
