package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pseudomuto/stencil/pkg/manifest"
	"github.com/pseudomuto/stencil/pkg/templates"
	"github.com/urfave/cli/v3"
)

// templatesCmd returns a CLI command that lists every template a project can
// be generated from: the built-in templates followed by templates found in
// the configured search paths.
//
// Example usage:
//
//	# List available templates
//	stencil templates
//
// Each line shows the template name, where it comes from, and the
// description from its manifest (when it has one).
func templatesCmd() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List available templates",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION")

			for _, name := range templates.Names() {
				fsys, _ := templates.Lookup(name)
				fmt.Fprintf(w, "%s\tbuilt-in\t%s\n", name, describe(fsys))
			}

			for _, path := range activeConfig().Templates.Paths {
				entries, err := os.ReadDir(path)
				if err != nil {
					continue
				}

				for _, entry := range entries {
					if !entry.IsDir() {
						continue
					}

					dir := filepath.Join(path, entry.Name())
					fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Name(), path, describe(os.DirFS(dir)))
				}
			}

			return w.Flush()
		},
	}
}

// describe returns the description from a template's manifest, or an empty
// string when the template has no manifest.
func describe(fsys fs.FS) string {
	m, err := manifest.LoadFS(fsys)
	if err != nil {
		return ""
	}

	return m.Description
}
