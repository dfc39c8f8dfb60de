package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/recipegen/internal/config"
	"github.com/conn-castle/recipegen/internal/messages"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", messages.RootConfigFlag)

	loadConfig := func() (*config.Config, error) {
		if configPath != "" {
			return config.Load(configPath)
		}
		return config.LoadDefault()
	}

	cmd.AddCommand(newGenerateCmd(loadConfig))
	cmd.AddCommand(newTemplateCmd(loadConfig))
	cmd.AddCommand(newWizardCmd(loadConfig))
	return cmd
}
