// Package cmd provides CLI commands for the stencil tool.
//
// This package implements the command-line interface for stencil, providing
// commands for generating projects from templates and inspecting the
// templates available to the current configuration.
//
// # Available Commands
//
// The cmd package currently provides:
//   - new project: Generate a new project from a template
//   - templates: List available templates
//
// Plugins registered through the plugin package appear as additional
// top-level commands.
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. Commands are designed
// to be composable and testable, with proper error handling and
// comprehensive help text.
//
// # Global Options
//
// All commands support global flags:
//   - --config, -c: Specify the stencil config file (defaults to stencil.yaml)
//   - --verbose: Enable debug logging
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
// Commands are registered in the main application and can be invoked from
// the command line:
//
//	stencil new project demo                            # Generate ./demo
//	stencil new project demo --template web             # Use a named template
//	stencil new project demo --var author=pseudomuto    # Override a variable
//	stencil templates                                   # List templates
package cmd
