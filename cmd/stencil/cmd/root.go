package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/pseudomuto/stencil/pkg/config"
	"github.com/pseudomuto/stencil/pkg/consts"
	"github.com/pseudomuto/stencil/pkg/plugin"
	"github.com/urfave/cli/v3"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// Run creates and executes the main stencil CLI application with the given
// version and command-line arguments. This function serves as the main entry
// point for all CLI operations and handles global configuration.
//
// The function creates a CLI application with:
//   - Global --config flag for specifying the stencil config file
//   - Global --verbose flag for debug logging
//   - Command registration and routing, including registered plugins
//   - Context propagation for cancellation support
//
// Global Flags:
//   - --config, -c: Config file path (defaults to stencil.yaml, or the
//     STENCIL_CONFIG environment variable)
//   - --verbose: Enable debug logging
//
// The application loads stencil.yaml from the configured path if it exists.
// A missing config file is not an error; built-in defaults are used instead.
//
// Example usage:
//
//	# Generate a project from the default template
//	err := Run(ctx, "v1.0.0", []string{"stencil", "new", "project", "demo"})
//
//	# Generate from a named template into a specific directory
//	err := Run(ctx, "v1.0.0", []string{"stencil", "new", "project", "demo", "--template", "web", "--directory", "/tmp/demo"})
//
// Returns an error if command execution fails.
func Run(ctx context.Context, version string, args []string) error {
	return app(version).Run(ctx, args)
}

// app assembles the root command. Split out from Run so tests can attach
// their own readers and writers before executing it.
func app(version string) *cli.Command {
	return &cli.Command{
		Name:  "stencil",
		Usage: "A tool for generating projects from templates",
		Description: `stencil generates new projects from templates. A template is a directory
tree whose file paths and contents are rendered against a set of variables
and copied into the destination directory. Templates can be built in, live
on disk, or be cloned from git repositories.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the stencil config file",
				Sources: cli.EnvVars("STENCIL_CONFIG"),
				Value:   consts.ConfigFile,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("verbose") {
				level = slog.LevelDebug
			}

			logger = slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{
				Level: level,
			}))

			path := cmd.String("config")
			if _, err := os.Stat(path); os.IsNotExist(err) {
				cfg = config.Default()
				return ctx, nil
			}

			loaded, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, err
			}

			cfg = loaded
			return ctx, nil
		},
		Commands: append([]*cli.Command{
			newCmd(),
			templatesCmd(),
		}, plugin.Commands()...),
	}
}

// activeConfig returns the configuration loaded by the root command, falling
// back to defaults when a command is executed outside the root app.
func activeConfig() *config.Config {
	if cfg != nil {
		return cfg
	}

	return config.Default()
}
