package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/stencil/pkg/consts"
	"github.com/pseudomuto/stencil/pkg/templates"
)

// gitPrefixes are specifier prefixes that always denote a git repository.
var gitPrefixes = []string{"git@", "git://", "ssh://", "http://", "https://", "file://"}

// Resolver maps template specifiers to Sources. A specifier is resolved in
// order:
//
//  1. An empty specifier means the built-in default template.
//  2. Git URLs (or anything ending in .git) clone the repository.
//  3. Anything containing a path separator, or starting with a dot, names a
//     template directory on disk.
//  4. A bare name is looked up in the configured search paths, first match
//     wins.
//  5. Finally, bare names fall back to the built-in templates.
type Resolver struct {
	paths []string
}

// NewResolver creates a Resolver that searches the given paths for templates
// referenced by bare name.
func NewResolver(paths ...string) *Resolver {
	return &Resolver{paths: paths}
}

// Resolve returns the Source for spec. The caller owns the returned Source
// and must Close it after use.
func (r *Resolver) Resolve(spec string) (Source, error) {
	if spec == "" {
		spec = consts.DefaultTemplate
	}

	if isGitSpec(spec) {
		return NewGit(spec), nil
	}

	if strings.ContainsAny(spec, `/\`) || strings.HasPrefix(spec, ".") {
		return NewDir(spec), nil
	}

	for _, p := range r.paths {
		candidate := filepath.Join(p, spec)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return NewDir(candidate), nil
		}
	}

	if fsys, ok := templates.Lookup(spec); ok {
		return NewFS(spec, fsys), nil
	}

	if len(r.paths) > 0 {
		return nil, errors.Errorf("unknown template: %s (searched %s)", spec, strings.Join(r.paths, ", "))
	}

	return nil, errors.Errorf("unknown template: %s", spec)
}

func isGitSpec(spec string) bool {
	for _, prefix := range gitPrefixes {
		if strings.HasPrefix(spec, prefix) {
			return true
		}
	}

	return strings.HasSuffix(spec, ".git")
}
