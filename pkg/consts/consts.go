package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the name of the stencil configuration file
	ConfigFile = "stencil.yaml"

	// ManifestFile is the name of the manifest file at the root of a template
	// tree. It describes the template and is never part of generated output.
	ManifestFile = "manifest.yaml"

	// TemplateSuffix marks files whose contents are rendered as templates.
	// The suffix is stripped from the generated file name.
	TemplateSuffix = ".tmpl"

	// DefaultTemplate is the name of the built-in template used when no
	// template is specified.
	DefaultTemplate = "default"
)
