package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conn-castle/recipegen/internal/config"
	"github.com/conn-castle/recipegen/internal/messages"
)

func newTemplateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.TemplateUse,
		Short: messages.TemplateShort,
	}
	cmd.AddCommand(newTemplateListCmd(loadConfig))
	cmd.AddCommand(newTemplateShowCmd(loadConfig))
	return cmd
}

func newTemplateListCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   messages.TemplateListUse,
		Short: messages.TemplateListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cfg.TemplateDirs)
			if err != nil {
				return err
			}
			for _, name := range registry.List() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTemplateShowCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   messages.TemplateShowUse,
		Short: messages.TemplateShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cfg.TemplateDirs)
			if err != nil {
				return err
			}
			t, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(t.Doc())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
