package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
)

// Git is a Source backed by a remote git repository. Open performs a shallow
// clone into a temporary directory, which Close removes.
type Git struct {
	url string
	dir string
}

// NewGit creates a Source for the template repository at url. Anything
// go-git can clone works: https, ssh, git, and file URLs.
func NewGit(url string) *Git {
	return &Git{url: url}
}

// Name implements Source.
func (g *Git) Name() string { return g.url }

// Open implements Source.
func (g *Git) Open(ctx context.Context) (fs.FS, error) {
	dir, err := os.MkdirTemp("", "stencil-clone-")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create clone directory")
	}
	g.dir = dir

	if _, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   g.url,
		Depth: 1,
	}); err != nil {
		_ = g.Close()
		return nil, errors.Wrapf(err, "failed to clone template repository: %s", g.url)
	}

	// The clone's history is not part of the template tree.
	if err := os.RemoveAll(filepath.Join(dir, git.GitDirName)); err != nil {
		_ = g.Close()
		return nil, errors.Wrap(err, "failed to prune clone metadata")
	}

	return os.DirFS(dir), nil
}

// Close implements Source.
func (g *Git) Close() error {
	if g.dir == "" {
		return nil
	}

	dir := g.dir
	g.dir = ""

	return os.RemoveAll(dir)
}
