package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conn-castle/recipegen/internal/builtin"
	"github.com/conn-castle/recipegen/internal/config"
	"github.com/conn-castle/recipegen/internal/loader"
	"github.com/conn-castle/recipegen/internal/messages"
	"github.com/conn-castle/recipegen/internal/output"
	"github.com/conn-castle/recipegen/internal/render"
	"github.com/conn-castle/recipegen/internal/schema"
	"github.com/conn-castle/recipegen/internal/template"
)

// generateOptions are the flags shared by the generate subcommands.
type generateOptions struct {
	specPath     string
	pkgManager   string
	outputPath   string
	templateDirs []string
	diffLines    int
}

func newGenerateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.GenerateUse,
		Short: messages.GenerateShort,
	}
	cmd.AddCommand(newGenerateDialectCmd(loadConfig, messages.GenerateDockerUse, messages.GenerateDockerShort))
	cmd.AddCommand(newGenerateDialectCmd(loadConfig, messages.GenerateSingularityUse, messages.GenerateSingularityShort))
	return cmd
}

func newGenerateDialectCmd(loadConfig func() (*config.Config, error), use, short string) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runGenerate(cmd, use, cfg, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.specPath, "spec", "s", "", messages.GenerateSpecFlag)
	cmd.Flags().StringVarP(&opts.pkgManager, "pkg-manager", "p", "", messages.GeneratePkgManagerFlag)
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", messages.GenerateOutputFlag)
	cmd.Flags().StringArrayVar(&opts.templateDirs, "template-dir", nil, messages.GenerateTemplateDirFlag)
	cmd.Flags().IntVar(&opts.diffLines, "diff-lines", 0, messages.GenerateDiffLinesFlag)
	return cmd
}

func runGenerate(cmd *cobra.Command, dialect string, cfg *config.Config, opts *generateOptions) error {
	if opts.specPath == "" {
		return errors.New(messages.GenerateSpecRequired)
	}
	steps, err := readSpec(cmd.InOrStdin(), opts.specPath)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(append(cfg.TemplateDirs, opts.templateDirs...))
	if err != nil {
		return err
	}
	pkgManager := cfg.PkgManager
	if opts.pkgManager != "" {
		pkgManager = opts.pkgManager
	}

	r, err := newRenderer(dialect, registry, pkgManager)
	if err != nil {
		return err
	}
	if err := render.FromSteps(r, steps); err != nil {
		return err
	}
	text := r.Render()

	if opts.outputPath == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	return writeOutput(cmd, opts.outputPath, text, diffLines(cfg, opts))
}

func diffLines(cfg *config.Config, opts *generateOptions) int {
	if opts.diffLines > 0 {
		return opts.diffLines
	}
	return cfg.DiffLines
}

func newRenderer(dialect string, registry *template.Registry, pkgManager string) (render.Renderer, error) {
	if dialect == messages.GenerateSingularityUse {
		return render.NewSingularity(registry, pkgManager)
	}
	return render.NewDocker(registry, pkgManager)
}

// buildRegistry returns the shipped templates plus any from the extra
// directories, loaded in order so later directories may not shadow
// earlier names.
func buildRegistry(dirs []string) (*template.Registry, error) {
	registry, err := builtin.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		docs, err := loader.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		if err := loader.RegisterAll(registry, docs); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// readSpec reads and decodes the build spec; "-" reads from stdin.
func readSpec(stdin io.Reader, path string) ([]schema.Step, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf(messages.GenerateReadSpecFmt, path, err)
	}
	return schema.DecodeSteps(data)
}

func writeOutput(cmd *cobra.Command, path, text string, diffLines int) error {
	writer, err := output.NewWriter(output.RealSystem{}, diffLines)
	if err != nil {
		return err
	}
	result, err := writer.Write(path, []byte(text))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case result.Created:
		_, _ = fmt.Fprintf(out, messages.GenerateWroteFmt, result.Path)
	case result.Changed:
		_, _ = fmt.Fprintf(out, messages.GenerateOverwroteFmt, result.Path)
		output.FprintDiff(out, result.Diff)
	default:
		_, _ = fmt.Fprintf(out, messages.GenerateUnchangedFmt, result.Path)
	}
	return nil
}
