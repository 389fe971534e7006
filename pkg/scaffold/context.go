package scaffold

import (
	"regexp"

	"github.com/pkg/errors"
)

// Reserved substitution variable names. These are always derived from the
// Context fields and override any extra variables with the same name.
const (
	VarProjectName      = "project_name"
	VarProjectDirectory = "project_directory"
)

// namePattern matches project names that are safe to use as directory names
// and path segments.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Context describes a single generation run: the project being generated,
// the destination directory that receives it, and any additional substitution
// variables. A Context is fully populated before generation begins and is
// never mutated by the generator.
type Context struct {
	// ProjectName is the name of the project being generated. Templates see
	// it as the project_name variable, and rendered paths that begin with a
	// directory segment equal to it have that segment stripped.
	ProjectName string

	// ProjectDirectory is the destination directory for the generated tree.
	// Templates see it as the project_directory variable.
	ProjectDirectory string

	// Extra holds additional string substitution variables (version strings,
	// author names, and so on). Reserved variable names win over entries here.
	Extra map[string]string
}

// NewContext builds a Context for one generation run. The extra map is copied
// so later changes by the caller don't leak into an in-flight run.
func NewContext(name, directory string, extra map[string]string) Context {
	vars := make(map[string]string, len(extra))
	for k, v := range extra {
		vars[k] = v
	}

	return Context{
		ProjectName:      name,
		ProjectDirectory: directory,
		Extra:            vars,
	}
}

// Validate reports whether the Context can drive a generation run.
func (c Context) Validate() error {
	if c.ProjectName == "" {
		return errors.New("project name is required")
	}

	if !namePattern.MatchString(c.ProjectName) {
		return errors.Errorf("invalid project name: %s", c.ProjectName)
	}

	if c.ProjectDirectory == "" {
		return errors.New("project directory is required")
	}

	return nil
}

// Vars returns the merged substitution variable set for the run: every Extra
// entry plus the reserved project_name and project_directory variables.
func (c Context) Vars() map[string]string {
	vars := make(map[string]string, len(c.Extra)+2)
	for k, v := range c.Extra {
		vars[k] = v
	}

	vars[VarProjectName] = c.ProjectName
	vars[VarProjectDirectory] = c.ProjectDirectory

	return vars
}
