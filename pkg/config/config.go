package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/stencil/pkg/consts"
	"gopkg.in/yaml.v3"
)

type (
	// Templates represents template lookup configuration.
	//
	// This struct controls which template is used when none is named on the
	// command line and where templates referenced by bare name are searched
	// for on disk.
	Templates struct {
		// Default specifies the template used when no --template flag is given.
		// If empty, the built-in default template is used.
		Default string `yaml:"default,omitempty"`

		// Paths lists directories searched, in order, for templates referenced
		// by bare name. Each template is a subdirectory named after it.
		Paths []string `yaml:"paths,omitempty"`
	}

	// Config represents the stencil project generation configuration.
	Config struct {
		// Templates contains template lookup configuration
		Templates Templates `yaml:"templates"`

		// Vars holds substitution variables applied to every generated project.
		// Manifest defaults are overridden by these, and --var flags override
		// both.
		Vars map[string]string `yaml:"vars,omitempty"`
	}
)

// LoadConfig parses a stencil configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data naming the default
// template, the template search paths, and any always-applied substitution
// variables. If no default template is specified, the built-in default is
// used.
//
// Example:
//
//	import (
//		"strings"
//		"github.com/pseudomuto/stencil/pkg/config"
//	)
//
//	yamlData := `
//	templates:
//	  default: web
//	  paths:
//	    - ~/.stencil/templates
//	vars:
//	  author: pseudomuto
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Default template: %s\n", cfg.Templates.Default)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal stencil config")
	}

	if cfg.Templates.Default == "" {
		cfg.Templates.Default = consts.DefaultTemplate
	}

	return &cfg, nil
}

// LoadConfigFile loads a stencil configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("stencil.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Default returns the configuration used when no config file exists: the
// built-in default template, no search paths, and no variables.
func Default() *Config {
	return &Config{
		Templates: Templates{Default: consts.DefaultTemplate},
	}
}
