// Package templates provides the project templates that ship with stencil.
//
// Built-in templates are compiled into the binary, so generating a project
// from one works without any template directories on disk. Template files
// live under a {{.project_name}} directory, which the generator renders and
// strips so the files land directly in the destination directory.
package templates

import (
	_ "embed"
	"io/fs"
	"testing/fstest"

	"github.com/pseudomuto/stencil/pkg/consts"
)

var (
	//go:embed embed/default/manifest.yaml
	defaultManifest []byte

	//go:embed embed/default/README.md.tmpl
	defaultReadme []byte

	//go:embed embed/default/go.mod.tmpl
	defaultGoMod []byte

	//go:embed embed/default/main.go.tmpl
	defaultMainGo []byte

	//go:embed embed/default/env.sample.tmpl
	defaultEnvSample []byte

	//go:embed embed/default/gitignore
	defaultGitignore []byte

	defaultImage = fstest.MapFS{
		"manifest.yaml":                      {Data: defaultManifest},
		"{{.project_name}}/README.md.tmpl":   {Data: defaultReadme},
		"{{.project_name}}/go.mod.tmpl":      {Data: defaultGoMod},
		"{{.project_name}}/main.go.tmpl":     {Data: defaultMainGo},
		"{{.project_name}}/.env.sample.tmpl": {Data: defaultEnvSample},
		"{{.project_name}}/.gitignore":       {Data: defaultGitignore},
	}
)

// Default returns the built-in default template.
func Default() fs.FS {
	return defaultImage
}

// Lookup returns the built-in template with the given name. The second
// return value reports whether a built-in template by that name exists.
func Lookup(name string) (fs.FS, bool) {
	if name == consts.DefaultTemplate {
		return defaultImage, true
	}

	return nil, false
}

// Names returns the names of all built-in templates.
func Names() []string {
	return []string{consts.DefaultTemplate}
}
