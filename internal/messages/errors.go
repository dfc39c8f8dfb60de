package messages

// Error formats for the core packages. The core returns typed errors whose
// messages are built from these constants; it never logs or exits.
const (
	// SchemaViolationFmt formats a schema violation as "path: message".
	SchemaViolationFmt = "%s: %s"

	SchemaNameRequired        = "template name is required"
	SchemaMethodRequired      = "template must define at least one install method ('binaries' or 'source')"
	SchemaInstructionsEmpty   = "install method must declare at least one instruction line"
	SchemaInstructionBlankFmt = "instruction line must not be blank"
	SchemaURLsRequired        = "binaries method requires a non-empty 'urls' mapping"
	SchemaURLsForbidden       = "source method must not declare 'urls'"
	SchemaURLEmptyFmt         = "url for version %q must not be empty"
	SchemaWildcardURLFmt      = "wildcard url must reference {{version}}, got %q"
	SchemaPkgManagerFmt       = "unknown package manager %q; recognized managers are %s"
	SchemaPackageEmptyFmt     = "dependency package name must not be empty"
	SchemaVariableFmt         = "variable %q is not declared in 'arguments' and is not a reserved name (%s)"
	SchemaArgumentReservedFmt = "argument %q collides with a reserved name"
	SchemaDecodeFmt           = "invalid document: %v"

	SchemaStepsEmpty        = "build spec must be a non-empty list of steps"
	SchemaStepSingleKeyFmt  = "step must have exactly one key, got %d"
	SchemaStepUnknownFmt    = "unknown step kind %q; valid kinds are %s"
	SchemaStepImageRequired = "base image reference is required"
	SchemaStepCommandEmpty  = "command must not be empty"
	SchemaStepEnvEmpty      = "env step requires at least one key/value pair"
	SchemaStepCopySource    = "copy step requires at least one source"
	SchemaStepCopyDest      = "copy step requires a destination"
	SchemaStepPathRequired  = "path is required"
	SchemaStepUserRequired  = "user name is required"
	SchemaStepLabelEmpty    = "label step requires at least one key/value pair"
	SchemaStepArgName       = "build argument name is required"
	SchemaStepEntrypoint    = "entrypoint requires at least one argument"
	SchemaStepInstallName   = "install step requires a template name"
	SchemaStepVersion       = "install step requires a version"
	SchemaStepMethodFmt     = "unknown install method %q; valid methods are 'binaries', 'source'"

	// TemplateUnknownFmt names the missing template and the registered ones.
	TemplateUnknownFmt      = "unknown template %q; registered templates are %s"
	TemplateNoneRegistered  = "unknown template %q; no templates are registered"
	TemplateDuplicateFmt    = "template %q is already registered"
	TemplateUnknownMethFmt  = "install method %q is not defined for template %q; options are %s"
	TemplateUnknownVerFmt   = "unknown version %q for template %q method %q; known versions are %s"
	TemplateAnyVersionFmt   = "unknown version %q for template %q method %q"
	TemplatePkgManagerFmt   = "package manager %q is not supported by template %q"
	TemplateUndeclaredFmt   = "variable %q has no binding in template %q method %q"
	TemplateNilDocFmt       = "template is required"
	RegistryTemplateNilFmt  = "template is required"
	RegistryTemplateNameReq = "template name is required"

	// RenderNoBaseImageFmt names the instruction issued before the base image.
	RenderNoBaseImageFmt   = "cannot add %q instruction before the base image is set"
	RenderUnsupportedFmt   = "%s does not support %q instructions"
	RenderBootstrapFmt     = "unknown bootstrap agent in base image %q; supported prefixes are docker:// and library://"
	RenderRegistryRequired = "template registry is required"
	RenderStepFmt          = "step %d (%s): %w"
)
