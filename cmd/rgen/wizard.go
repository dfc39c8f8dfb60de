package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/recipegen/internal/config"
	"github.com/conn-castle/recipegen/internal/messages"
	"github.com/conn-castle/recipegen/internal/render"
	"github.com/conn-castle/recipegen/internal/schema"
	"github.com/conn-castle/recipegen/internal/terminal"
	"github.com/conn-castle/recipegen/internal/wizard"
)

var isInteractiveFunc = terminal.IsInteractive
var runWizardFunc = wizard.Run

func newWizardCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var specOut string
	cmd := &cobra.Command{
		Use:   messages.WizardUse,
		Short: messages.WizardShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractiveFunc() {
				return errors.New(messages.WizardNotInteractive)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cfg.TemplateDirs)
			if err != nil {
				return err
			}

			result, err := runWizardFunc(wizard.NewHuhUI(), registry)
			if err != nil {
				return err
			}

			if specOut != "" {
				data, err := schema.MarshalSteps(result.Steps)
				if err != nil {
					return err
				}
				if err := writeOutput(cmd, specOut, string(data), cfg.DiffLines); err != nil {
					return err
				}
			}
			if !result.Render {
				return nil
			}

			r, err := newRenderer(result.Dialect, registry, result.PkgManager)
			if err != nil {
				return err
			}
			if err := render.FromSteps(r, result.Steps); err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), r.Render())
			return err
		},
	}
	cmd.Flags().StringVar(&specOut, "spec-out", "", messages.WizardSpecOutFlag)
	return cmd
}
