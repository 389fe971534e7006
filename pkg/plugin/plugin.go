// Package plugin extends the stencil CLI with additional commands.
//
// Plugins are Go packages that register a command factory from an init
// function and are compiled into the binary with a blank import:
//
//	import _ "github.com/example/stencil-deploy"
//
// Every registered command appears as a top-level command of the CLI,
// alongside the built-in ones.
package plugin

import (
	"sort"
	"sync"

	"github.com/urfave/cli/v3"
)

// Factory creates a plugin's top-level command. It is invoked once per CLI
// run, so returned commands must not be shared between calls.
type Factory func() *cli.Command

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes a plugin's command available under the given name. It is
// intended to be called from a plugin package's init function, and panics if
// the name is already taken or the factory is nil.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if factory == nil {
		panic("plugin: Register factory is nil")
	}

	if _, dup := factories[name]; dup {
		panic("plugin: Register called twice for plugin " + name)
	}

	factories[name] = factory
}

// Commands builds the commands of all registered plugins, sorted by name.
func Commands() []*cli.Command {
	mu.RLock()
	defer mu.RUnlock()

	commands := make([]*cli.Command, 0, len(factories))
	for _, name := range sortedNames() {
		commands = append(commands, factories[name]())
	}

	return commands
}

// Names returns the names of all registered plugins, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	return sortedNames()
}

// sortedNames returns registered plugin names in sorted order. Callers must
// hold mu.
func sortedNames() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
