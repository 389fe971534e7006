package scaffold_test

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/stencil/pkg/postprocess"
	. "github.com/pseudomuto/stencil/pkg/scaffold"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("renders paths and contents", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"manifest.yaml":                       "name: web\n",
			"{{.project_name}}/README.md.tmpl":    "# {{.project_name}}\n",
			"{{.project_name}}/app.go.tmpl":       "package main\n\n// {{.project_name}} listens on {{.port}}.\n",
			"{{.project_name}}/cfg/cfg.yaml.tmpl": "dir: {{.project_directory}}\n",
			"{{.project_name}}.env.sample.tmpl":   "NAME={{.project_name}}\n",
			"static/app.css":                      ".body { margin: 0; }\n",
		})

		dir := t.TempDir()
		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root})

		err := gen.Generate(NewContext("demo", dir, map[string]string{"port": "8080"}))
		require.NoError(t, err)

		require.Equal(t, map[string]string{
			"README.md":       "# demo\n",
			"app.go":          "package main\n\n// demo listens on 8080.\n",
			"cfg/cfg.yaml":    "dir: " + dir + "\n",
			"demo.env.sample": "NAME=demo\n",
			"static/app.css":  ".body { margin: 0; }\n",
		}, readTree(t, dir))
	})

	t.Run("case functions in paths and contents", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"{{snake .project_name}}/settings.yaml.tmpl": "slug: {{kebab .project_name}}\nenv: {{screamingSnake .project_name}}\n",
		})

		dir := t.TempDir()
		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root})

		require.NoError(t, gen.Generate(NewContext("MyApp", dir, nil)))

		require.Equal(t, map[string]string{
			"my_app/settings.yaml": "slug: my-app\nenv: MY_APP\n",
		}, readTree(t, dir))
	})

	t.Run("copies binary files byte for byte", func(t *testing.T) {
		logo := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff, 0xfe}

		// Larger than one copy chunk and deliberately not chunk-aligned.
		blob := make([]byte, 10*1024+3)
		for i := range blob {
			blob[i] = byte(i % 251)
		}

		templates := fstest.MapFS{
			"{{.project_name}}/static/logo.png": {Data: logo},
			"{{.project_name}}/data.bin":        {Data: blob},
		}

		dir := t.TempDir()
		gen := New(GeneratorParams{Templates: templates, Name: "binary"})

		require.NoError(t, gen.Generate(NewContext("demo", dir, nil)))

		got, err := os.ReadFile(filepath.Join(dir, "static", "logo.png"))
		require.NoError(t, err)
		require.Equal(t, logo, got)

		got, err = os.ReadFile(filepath.Join(dir, "data.bin"))
		require.NoError(t, err)
		require.Equal(t, blob, got)
	})

	t.Run("overwrites existing files", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"README.md.tmpl": "# {{.project_name}}\n",
		})

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("old content\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "NOTES.md"), []byte("keep me\n"), 0o644))

		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root})
		require.NoError(t, gen.Generate(NewContext("demo", dir, nil)))

		require.Equal(t, map[string]string{
			"README.md": "# demo\n",
			"NOTES.md":  "keep me\n",
		}, readTree(t, dir))
	})

	t.Run("applies standard modes to created files", func(t *testing.T) {
		// A permissive umask must not leak into generated output.
		old := syscall.Umask(0o002)
		defer syscall.Umask(old)

		root := writeTree(t, map[string]string{
			"README.md.tmpl": "# {{.project_name}}\n",
			"static/app.css": "body {}\n",
		})

		dir := t.TempDir()
		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root})
		require.NoError(t, gen.Generate(NewContext("demo", dir, nil)))

		for _, name := range []string{"README.md", "static/app.css"} {
			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0o644), info.Mode().Perm(), name)
		}

		info, err := os.Stat(filepath.Join(dir, "static"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	})

	t.Run("output is deterministic", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"{{.project_name}}/README.md.tmpl": "# {{.project_name}} ({{.release}})\n",
			"{{.project_name}}/main.go.tmpl":   "package main\n",
			"static/logo.svg":                  "<svg/>\n",
		})

		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root})

		first, second := t.TempDir(), t.TempDir()
		require.NoError(t, gen.Generate(NewContext("demo", first, map[string]string{"release": "v1"})))
		require.NoError(t, gen.Generate(NewContext("demo", second, map[string]string{"release": "v1"})))

		require.Equal(t, readTree(t, first), readTree(t, second))
	})
}

func TestGenerateMissingTemplates(t *testing.T) {
	t.Run("missing template directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		dest := filepath.Join(t.TempDir(), "out")

		gen := New(GeneratorParams{Templates: os.DirFS(missing), Name: missing})
		err := gen.Generate(NewContext("demo", dest, nil))

		var notFound *TemplatesNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, missing, notFound.Root)
		require.Contains(t, err.Error(), "templates directory not found")

		// Nothing may be created before the template tree is verified.
		_, err = os.Stat(dest)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("nil template tree", func(t *testing.T) {
		gen := New(GeneratorParams{Name: "missing"})
		err := gen.Generate(NewContext("demo", t.TempDir(), nil))

		var notFound *TemplatesNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "missing", notFound.Root)
	})
}

func TestGenerateErrors(t *testing.T) {
	t.Run("invalid context", func(t *testing.T) {
		gen := New(GeneratorParams{Templates: fstest.MapFS{}, Name: "empty"})

		err := gen.Generate(NewContext("", t.TempDir(), nil))
		require.Error(t, err)
		require.Contains(t, err.Error(), "project name is required")
	})

	t.Run("undefined content variable", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"app.go.tmpl": "package {{.nope}}\n",
		})

		dest := filepath.Join(t.TempDir(), "out")
		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root})

		err := gen.Generate(NewContext("demo", dest, nil))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to render template")

		// The failed run must not have touched the destination.
		_, err = os.Stat(dest)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("undefined path variable", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"{{.nope}}.txt.tmpl": "hello\n",
		})

		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root})

		err := gen.Generate(NewContext("demo", t.TempDir(), nil))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to render path")
	})

	t.Run("rendered path escaping the project root", func(t *testing.T) {
		templates := fstest.MapFS{
			"{{.up}}.txt.tmpl": {Data: []byte("hello\n")},
		}

		gen := New(GeneratorParams{Templates: templates, Name: "escape"})

		err := gen.Generate(NewContext("demo", t.TempDir(), map[string]string{"up": "../evil"}))
		require.Error(t, err)
		require.Contains(t, err.Error(), "not relative to the project root")
	})
}

func TestGenerateStagingCleanup(t *testing.T) {
	// Generate stages into a fresh directory under the system temp dir.
	// Pointing TMPDIR at a private directory makes leftovers observable. The
	// template trees are written before the override so they don't land there.
	goodRoot := writeTree(t, map[string]string{
		"README.md.tmpl": "# {{.project_name}}\n",
	})
	badRoot := writeTree(t, map[string]string{
		"ok.txt.tmpl":  "fine\n",
		"bad.txt.tmpl": "{{.nope}}\n",
	})

	dest := t.TempDir()
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	t.Run("after success", func(t *testing.T) {
		gen := New(GeneratorParams{Templates: os.DirFS(goodRoot), Name: goodRoot})
		require.NoError(t, gen.Generate(NewContext("demo", dest, nil)))

		entries, err := os.ReadDir(tmp)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("after failure", func(t *testing.T) {
		gen := New(GeneratorParams{Templates: os.DirFS(badRoot), Name: badRoot})
		require.Error(t, gen.Generate(NewContext("demo", dest, nil)))

		entries, err := os.ReadDir(tmp)
		require.NoError(t, err)
		require.Empty(t, entries)
	})
}

func TestGeneratePostProcess(t *testing.T) {
	t.Run("applies processors to rendered files", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"greeting.txt.tmpl": "hello {{.project_name}}\n",
			"raw.txt":           "hello raw\n",
		})

		chain := postprocess.NewChain(postprocess.ProcessorFunc(
			func(path string, content []byte) ([]byte, error) {
				return bytes.ToUpper(content), nil
			},
		))

		dir := t.TempDir()
		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root, PostProcessors: chain})

		require.NoError(t, gen.Generate(NewContext("demo", dir, nil)))

		// Processors see rendered templates only; raw files pass through.
		require.Equal(t, map[string]string{
			"greeting.txt": "HELLO DEMO\n",
			"raw.txt":      "hello raw\n",
		}, readTree(t, dir))
	})

	t.Run("formats generated go sources", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"main.go.tmpl": "package main\nimport \"fmt\"\nfunc main() {\nfmt.Println(\"{{.project_name}}\")\n}\n",
		})

		chain := postprocess.NewChain(postprocess.NewGoImports())

		dir := t.TempDir()
		gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root, PostProcessors: chain})

		require.NoError(t, gen.Generate(NewContext("demo", dir, nil)))

		main, err := os.ReadFile(filepath.Join(dir, "main.go"))
		require.NoError(t, err)
		require.Contains(t, string(main), "\tfmt.Println(\"demo\")")
	})

	t.Run("keeps rendered content when a processor fails", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"greeting.txt.tmpl": "hello {{.project_name}}\n",
		})

		chain := postprocess.NewChain(postprocess.ProcessorFunc(
			func(path string, content []byte) ([]byte, error) {
				return nil, errors.New("boom")
			},
		))

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		dir := t.TempDir()
		gen := New(GeneratorParams{
			Templates:      os.DirFS(root),
			Name:           root,
			Logger:         logger,
			PostProcessors: chain,
		})

		require.NoError(t, gen.Generate(NewContext("demo", dir, nil)))

		got, err := os.ReadFile(filepath.Join(dir, "greeting.txt"))
		require.NoError(t, err)
		require.Equal(t, "hello demo\n", string(got))
		require.Contains(t, buf.String(), "post-processing failed")
	})
}

func TestGenerateLogging(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md.tmpl": "# {{.project_name}}\n",
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	gen := New(GeneratorParams{Templates: os.DirFS(root), Name: root, Logger: logger})
	require.NoError(t, gen.Generate(NewContext("demo", t.TempDir(), nil)))

	out := buf.String()
	require.Contains(t, out, "rendering templates into staging directory")
	require.Contains(t, out, "copying staged tree to destination")
	require.Contains(t, out, "template="+root)
}

func TestTemplatesNotFoundError(t *testing.T) {
	err := &TemplatesNotFoundError{Root: "/tmp/templates"}
	require.Equal(t, "templates directory not found: /tmp/templates", err.Error())
}

// writeTree materializes files (keyed by slash path, values are contents)
// under a fresh temp directory and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	return root
}

// readTree returns every file under root keyed by slash-relative path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	found := make(map[string]string)
	require.NoError(t, filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		found[filepath.ToSlash(rel)] = string(data)
		return nil
	}))

	return found
}
