package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "rgen"
	// RootShort is the short description for the root command.
	RootShort = "Generate container build recipes from installation templates"
	RootLong  = "rgen resolves reusable software-installation templates into\n" +
		"Dockerfile or Singularity definition-file text."
	RootConfigFlag = "Path to a recipegen.toml config file"

	VersionTemplate = "{{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"

	GenerateUse   = "generate"
	GenerateShort = "Generate build instructions from a build spec"

	GenerateDockerUse        = "docker"
	GenerateDockerShort      = "Generate a Dockerfile"
	GenerateSingularityUse   = "singularity"
	GenerateSingularityShort = "Generate a Singularity definition file"

	GenerateSpecFlag        = "Path to the build spec YAML file ('-' for stdin)"
	GeneratePkgManagerFlag  = "System package manager used for template dependencies (apt or yum)"
	GenerateOutputFlag      = "Write the rendered text to this file instead of stdout"
	GenerateTemplateDirFlag = "Additional directory of template YAML files (repeatable)"
	GenerateDiffLinesFlag   = "Maximum number of diff lines shown when overwriting a file"
	GenerateSpecRequired    = "a build spec is required; pass --spec FILE"
	GenerateReadSpecFmt     = "read build spec %s: %w"
	GenerateWroteFmt        = "wrote %s\n"
	GenerateUnchangedFmt    = "%s is up to date\n"
	GenerateOverwroteFmt    = "updated %s:\n"

	TemplateUse       = "template"
	TemplateShort     = "Inspect registered installation templates"
	TemplateListUse   = "list"
	TemplateListShort = "List registered template names"
	TemplateShowUse   = "show NAME"
	TemplateShowShort = "Print a template document as YAML"

	WizardUse            = "wizard"
	WizardShort          = "Compose a build spec interactively"
	WizardNotInteractive = "the wizard requires an interactive terminal"
	WizardSpecOutFlag    = "Also write the composed build spec YAML to this file"

	WizardDialectTitle    = "Output format"
	WizardBaseImageTitle  = "Base image"
	WizardPkgManagerTitle = "Package manager"
	WizardActionTitle     = "Add a step"
	WizardTemplateTitle   = "Template"
	WizardMethodTitle     = "Install method"
	WizardVersionTitle    = "Version"
	WizardCommandTitle    = "Shell command"
	WizardEnvKeyTitle     = "Environment variable name"
	WizardEnvValueTitle   = "Environment variable value"
	WizardLabelKeyTitle   = "Label key"
	WizardLabelValueTitle = "Label value"
	WizardWorkdirTitle    = "Working directory"
	WizardUserTitle       = "User"
	WizardEntrypointTitle = "Entrypoint (space-separated)"
	WizardDoneConfirm     = "Render the spec now?"

	WizardActionInstall    = "Install a template"
	WizardActionRun        = "Run a command"
	WizardActionEnv        = "Set an environment variable"
	WizardActionLabel      = "Set a label"
	WizardActionWorkdir    = "Set the working directory"
	WizardActionUser       = "Switch user"
	WizardActionEntrypoint = "Set the entrypoint"
	WizardActionDone       = "Done"

	WizardBaseImageRequired = "base image is required"
	WizardNoTemplates       = "no templates are registered"

	ConfigReadFmt       = "read config %s: %w"
	ConfigDecodeFmt     = "invalid config %s: %v"
	ConfigUnknownKeyFmt = "unrecognized keys in config %s: %v"
	ConfigPkgManagerFmt = "config %s: unknown package manager %q"
	ConfigDiffLinesFmt  = "config %s: diff_lines must be positive, got %d"
	ConfigTemplateDir   = "config %s: template_dirs entries must not be empty"
	ConfigHomeDirFmt    = "resolve home directory: %w"

	LoaderReadDirFmt  = "read template directory %s: %w"
	LoaderReadFileFmt = "read template %s: %w"
	LoaderInvalidFmt  = "template %s: %w"

	OutputSystemRequired   = "output system is required"
	OutputMkdirFmt         = "create directory %s: %w"
	OutputWriteFmt         = "write %s: %w"
	OutputReadFmt          = "read %s: %w"
	OutputDiffTruncatedFmt = "... (truncated to %d lines; rerun with --diff-lines <n> to see more)"
)
