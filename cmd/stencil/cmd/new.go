package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/stencil/pkg/manifest"
	"github.com/pseudomuto/stencil/pkg/postprocess"
	"github.com/pseudomuto/stencil/pkg/scaffold"
	"github.com/pseudomuto/stencil/pkg/source"
	"github.com/urfave/cli/v3"
)

// newCmd returns the CLI command group for generating things from templates.
// Currently the only generator is "project".
func newCmd() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Generate something from a template",
		Commands: []*cli.Command{
			newProject(),
		},
	}
}

// newProject returns a CLI command that generates a new project from a
// template. The project name is the only required argument; everything else
// has a sensible default.
//
// The generation process:
//  1. Resolves the template (flag, then config default, then built-in)
//  2. Loads the template manifest for variable defaults
//  3. Merges variables: manifest, then config, then --var flags
//  4. Renders the template into a staging directory
//  5. Copies the staged tree into the destination directory
//
// If the destination directory already contains files, the command asks for
// confirmation before generating into it. Existing files that collide with
// generated ones are overwritten. Pass --force to skip the confirmation.
//
// Example usage:
//
//	# Generate ./demo from the default template
//	stencil new project demo
//
//	# Generate from a named template into a specific directory
//	stencil new project demo --template web --directory /srv/demo
//
//	# Generate from a git repository, overriding a template variable
//	stencil new project demo --template https://github.com/example/tmpl --var author=me
//
// The command prints the destination directory on success and returns an
// error if template resolution, rendering, or the final copy fails.
func newProject() *cli.Command {
	return &cli.Command{
		Name:      "project",
		Usage:     "Generate a new project from a template",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "directory",
				Aliases:     []string{"d"},
				Usage:       "the destination directory",
				DefaultText: "./NAME",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "the template to generate from (name, directory, or git URL)",
			},
			&cli.StringSliceFlag{
				Name:  "var",
				Usage: "set a template variable (key=value, repeatable)",
			},
			&cli.StringFlag{
				Name:        "go",
				Usage:       "Go version for the go_version variable",
				DefaultText: "current Go version",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "generate into a non-empty directory without asking",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New("project name is required")
			}

			dir := cmd.String("directory")
			if dir == "" {
				dir = name
			}

			dir, err := filepath.Abs(dir)
			if err != nil {
				return errors.Wrapf(err, "failed to resolve directory: %s", cmd.String("directory"))
			}

			if !cmd.Bool("force") && !confirmNonEmpty(cmd, dir) {
				return errors.New("aborted")
			}

			conf := activeConfig()

			spec := cmd.String("template")
			if spec == "" {
				spec = conf.Templates.Default
			}

			src, err := source.NewResolver(conf.Templates.Paths...).Resolve(spec)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			fsys, err := src.Open(ctx)
			if err != nil {
				return err
			}

			vars, err := mergeVars(cmd, fsys, conf.Vars)
			if err != nil {
				return err
			}

			gen := scaffold.New(scaffold.GeneratorParams{
				Templates:      fsys,
				Name:           src.Name(),
				Logger:         logger,
				PostProcessors: postprocess.NewChain(postprocess.NewGoImports()),
			})

			if err := gen.Generate(scaffold.NewContext(name, dir, vars)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "✓ Created project %s in %s\n", name, dir)
			return nil
		},
	}
}

// mergeVars assembles the substitution variables for a run. Manifest defaults
// are overridden by config vars, which are overridden by --var flags. The
// go_version variable additionally falls back to the running toolchain's
// version unless something already set it.
func mergeVars(cmd *cli.Command, fsys fs.FS, configVars map[string]string) (map[string]string, error) {
	m, err := manifest.LoadFS(fsys)
	if err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(m.Vars)+len(configVars))
	for k, v := range m.Vars {
		vars[k] = v
	}
	for k, v := range configVars {
		vars[k] = v
	}

	for _, kv := range cmd.StringSlice("var") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("invalid variable %q (expected key=value)", kv)
		}

		vars[k] = v
	}

	if cmd.IsSet("go") {
		vars["go_version"] = cmd.String("go")
	} else if _, ok := vars["go_version"]; !ok {
		vars["go_version"] = strings.TrimPrefix(runtime.Version(), "go")
	}

	return vars, nil
}

// confirmNonEmpty asks whether to continue when the destination directory
// already contains files. Generating into a missing or empty directory never
// prompts.
func confirmNonEmpty(cmd *cli.Command, dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return true
	}

	fmt.Fprintf(cmd.Root().Writer, "Directory %s is not empty. Continue? [y/N]: ", dir)

	return readYes(cmd.Root().Reader)
}

// readYes reads a single line and reports whether it is an affirmative
// answer.
func readYes(r io.Reader) bool {
	if r == nil {
		return false
	}

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))

	return answer == "y" || answer == "yes"
}
