// Package source locates template trees and presents them as filesystems.
//
// A template can live in several places: compiled into the binary, in a
// directory on disk, in a configured search path, or in a remote git
// repository. Each location is a Source that yields an fs.FS for the
// generator to render from. The Resolver maps user-supplied template
// specifiers to the right kind of Source.
package source

import (
	"context"
	"io/fs"
	"os"
)

// Source is a location that can produce a template tree. Sources that
// materialize anything on disk clean it up in Close; Close is safe to call
// whether or not Open succeeded.
type Source interface {
	// Name identifies the source in errors and log output.
	Name() string

	// Open produces the template tree.
	Open(ctx context.Context) (fs.FS, error)

	// Close releases anything Open materialized.
	Close() error
}

// Dir is a Source backed by a directory on disk. Opening a Dir never fails;
// a missing directory surfaces when the generator first reads the tree.
type Dir struct {
	path string
}

// NewDir creates a Source for the template tree rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Name implements Source.
func (d *Dir) Name() string { return d.path }

// Open implements Source.
func (d *Dir) Open(_ context.Context) (fs.FS, error) {
	return os.DirFS(d.path), nil
}

// Close implements Source.
func (d *Dir) Close() error { return nil }

// FS is a Source backed by an existing filesystem, typically one of the
// built-in templates.
type FS struct {
	name string
	fsys fs.FS
}

// NewFS creates a Source that serves fsys under the given name.
func NewFS(name string, fsys fs.FS) *FS {
	return &FS{name: name, fsys: fsys}
}

// Name implements Source.
func (f *FS) Name() string { return f.name }

// Open implements Source.
func (f *FS) Open(_ context.Context) (fs.FS, error) {
	return f.fsys, nil
}

// Close implements Source.
func (f *FS) Close() error { return nil }
