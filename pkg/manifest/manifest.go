// Package manifest loads template manifests.
//
// A manifest is an optional manifest.yaml file at the root of a template
// tree. It names and describes the template and declares default values for
// template variables. The manifest itself is metadata for the generator and
// is never copied into generated projects.
package manifest

import (
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/stencil/pkg/consts"
	"gopkg.in/yaml.v3"
)

// Manifest describes a template tree.
type Manifest struct {
	// Name is the template's display name.
	Name string `yaml:"name,omitempty"`

	// Description is a short human readable summary shown in template
	// listings.
	Description string `yaml:"description,omitempty"`

	// Vars holds default values for template variables. Values supplied by
	// configuration or on the command line take precedence over these.
	Vars map[string]string `yaml:"vars,omitempty"`
}

// Load parses a manifest from r.
func Load(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal template manifest")
	}

	return &m, nil
}

// LoadFS loads the manifest from the root of a template tree. Templates
// aren't required to carry a manifest, so a missing manifest.yaml yields an
// empty manifest rather than an error.
func LoadFS(fsys fs.FS) (*Manifest, error) {
	f, err := fsys.Open(consts.ManifestFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}

		return nil, errors.Wrapf(err, "failed to open %s", consts.ManifestFile)
	}
	defer f.Close()

	return Load(f)
}
