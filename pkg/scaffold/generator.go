package scaffold

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pseudomuto/stencil/pkg/consts"
	"github.com/pseudomuto/stencil/pkg/postprocess"
)

// copyChunkSize is the buffer size used when streaming file contents. Copies
// never buffer a whole file, so peak memory stays bounded regardless of file
// size.
const copyChunkSize = 1024

type (
	// GeneratorParams contains the collaborators required to construct a
	// Generator. Only Templates is mandatory.
	GeneratorParams struct {
		// Templates is the template tree to generate from. Use os.DirFS for
		// on-disk trees or an embedded filesystem for built-in templates.
		Templates fs.FS

		// Name identifies the template tree in errors and log output,
		// typically the source path or template name.
		Name string

		// Logger receives generation diagnostics. Defaults to slog.Default().
		Logger *slog.Logger

		// PostProcessors is applied to each rendered file after staging.
		// Optional.
		PostProcessors *postprocess.Chain
	}

	// Generator renders a template tree into a destination directory. All
	// output is assembled in a private staging directory first and copied to
	// the destination only after every file rendered successfully, so a
	// failed run never leaves a partially rendered project behind.
	//
	// A Generator holds no per-run state; concurrent Generate calls against
	// distinct destinations are independent.
	Generator struct {
		templates fs.FS
		name      string
		logger    *slog.Logger
		post      *postprocess.Chain
		funcs     template.FuncMap
	}
)

// New creates a Generator for the given template tree.
//
// Example:
//
//	gen := scaffold.New(scaffold.GeneratorParams{
//		Templates: os.DirFS("/path/to/templates"),
//		Name:      "/path/to/templates",
//		Logger:    logger,
//	})
//
//	err := gen.Generate(scaffold.NewContext("demo", "/tmp/demo", map[string]string{
//		"go_version": "1.24",
//	}))
func New(p GeneratorParams) *Generator {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	post := p.PostProcessors
	if post == nil {
		post = postprocess.NewChain()
	}

	return &Generator{
		templates: p.Templates,
		name:      p.Name,
		logger:    logger,
		post:      post,
		funcs:     Funcs(),
	}
}

// Generate renders the template tree for the given Context into
// c.ProjectDirectory.
//
// Every file under the template root is processed: its relative path is
// rendered as a template against the merged variable set, files carrying the
// template suffix additionally have their contents rendered (and the suffix
// stripped), and all other files are copied byte-for-byte. A rendered path
// that still begins with the project name has that leading segment dropped,
// since the destination directory itself represents the project root. The
// root-level manifest file is template metadata and never part of the output.
//
// If the template tree does not exist, Generate returns a
// *TemplatesNotFoundError before touching the filesystem at all. Rendering
// and filesystem errors abort the run before the destination is written. The
// staging directory is removed on every exit path. The final copy into the
// destination is file-by-file with no rollback: existing files are silently
// overwritten, and a mid-copy failure (for example, disk full) leaves the
// files copied so far in place.
func (g *Generator) Generate(c Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if g.templates == nil {
		return &TemplatesNotFoundError{Root: g.name}
	}

	if _, err := fs.Stat(g.templates, "."); err != nil {
		if os.IsNotExist(err) {
			return &TemplatesNotFoundError{Root: g.name}
		}

		return errors.Wrapf(err, "failed to read templates: %s", g.name)
	}

	logger := g.logger.With("run", uuid.NewString(), "template", g.name)

	staging, err := os.MkdirTemp("", "stencil-")
	if err != nil {
		return errors.Wrap(err, "failed to create staging directory")
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Warn("failed to remove staging directory", "dir", staging, "err", err)
		}
	}()

	logger.Debug("rendering templates into staging directory", "dir", staging)

	vars := c.Vars()

	err = fs.WalkDir(g.templates, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if p == consts.ManifestFile {
			return nil
		}

		return g.stageFile(logger, staging, p, c, vars)
	})
	if err != nil {
		return err
	}

	logger.Debug("copying staged tree to destination", "dir", c.ProjectDirectory)

	return g.copyTree(logger, staging, c.ProjectDirectory)
}

// stageFile renders a single template file into the staging directory.
func (g *Generator) stageFile(logger *slog.Logger, staging, src string, c Context, vars map[string]string) error {
	target, err := g.targetPath(src, c, vars)
	if err != nil {
		return err
	}

	dest := filepath.Join(staging, filepath.FromSlash(target))
	if err := os.MkdirAll(filepath.Dir(dest), consts.ModeDir); err != nil {
		return errors.Wrapf(err, "failed to create staging directory for %s", target)
	}

	if strings.HasSuffix(src, consts.TemplateSuffix) {
		if err := g.renderFile(logger, src, dest, vars); err != nil {
			return err
		}
	} else {
		if err := g.stageRaw(src, dest); err != nil {
			return err
		}
	}

	logger.Debug("rendered", "source", src, "target", target)

	return nil
}

// targetPath renders the slash-relative template path against the variable
// set, strips the template suffix, and drops a leading project-name segment.
// The staging directory itself represents the project root, so a project-name
// prefix found inside template paths is redundant.
func (g *Generator) targetPath(src string, c Context, vars map[string]string) (string, error) {
	rendered, err := g.renderString(src, vars)
	if err != nil {
		return "", errors.Wrapf(err, "failed to render path: %s", src)
	}

	target := strings.TrimSuffix(rendered, consts.TemplateSuffix)
	target = strings.TrimPrefix(target, c.ProjectName+"/")

	if !fs.ValidPath(target) || target == "." {
		return "", errors.Errorf("rendered path is not relative to the project root: %s", rendered)
	}

	return target, nil
}

// renderString renders a one-off template string, typically a file path.
func (g *Generator) renderString(text string, vars map[string]string) (string, error) {
	tmpl, err := template.New(text).Funcs(g.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, vars); err != nil {
		return "", err
	}

	return b.String(), nil
}

// renderFile streams the rendered contents of src into the staged file at
// dest, then runs the post-processor chain over the result.
func (g *Generator) renderFile(logger *slog.Logger, src, dest string, vars map[string]string) error {
	content, err := fs.ReadFile(g.templates, src)
	if err != nil {
		return errors.Wrapf(err, "failed to read template: %s", src)
	}

	tmpl, err := template.New(path.Base(src)).Funcs(g.funcs).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return errors.Wrapf(err, "failed to parse template: %s", src)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, consts.ModeFile)
	if err != nil {
		return errors.Wrapf(err, "failed to create staged file: %s", dest)
	}

	if err := tmpl.Execute(out, vars); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "failed to render template: %s", src)
	}

	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "failed to write staged file: %s", dest)
	}

	return g.postProcess(logger, dest)
}

// postProcess rewrites a staged file through the processor chain. A failing
// processor keeps the rendered content as-is; generation never aborts because
// a formatter rejected its input.
func (g *Generator) postProcess(logger *slog.Logger, dest string) error {
	if !g.post.HasProcessors() {
		return nil
	}

	content, err := os.ReadFile(dest)
	if err != nil {
		return errors.Wrapf(err, "failed to read staged file: %s", dest)
	}

	processed, err := g.post.Process(dest, content)
	if err != nil {
		logger.Warn("post-processing failed", "file", dest, "err", err)
		return nil
	}

	if err := os.WriteFile(dest, processed, consts.ModeFile); err != nil {
		return errors.Wrapf(err, "failed to write staged file: %s", dest)
	}

	return nil
}

// stageRaw copies a non-template file into the staging directory unchanged.
func (g *Generator) stageRaw(src, dest string) error {
	in, err := g.templates.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open template file: %s", src)
	}
	defer func() { _ = in.Close() }()

	return writeChunked(in, dest)
}

// copyTree copies every entry under src into dest, creating destination
// directories as needed. Only names and contents are copied; file metadata is
// not preserved. Existing destination files are overwritten.
func (g *Generator) copyTree(logger *slog.Logger, src, dest string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve staged path: %s", p)
		}

		target := filepath.Join(dest, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "failed to create directory: %s", target)
			}

			return nil
		}

		logger.Debug("copying file", "source", rel, "target", target)

		in, err := os.Open(p)
		if err != nil {
			return errors.Wrapf(err, "failed to open staged file: %s", p)
		}
		defer func() { _ = in.Close() }()

		return writeChunked(in, target)
	})
}

// writeChunked streams r into a file at dest in fixed-size chunks. Created
// files get the standard mode; existing files are truncated and keep theirs.
func writeChunked(r io.Reader, dest string) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, consts.ModeFile)
	if err != nil {
		return errors.Wrapf(err, "failed to create file: %s", dest)
	}

	buf := make([]byte, copyChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				_ = out.Close()
				return errors.Wrapf(werr, "failed to write file: %s", dest)
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			_ = out.Close()
			return errors.Wrapf(err, "failed to read while writing: %s", dest)
		}
	}

	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "failed to close file: %s", dest)
	}

	return nil
}
