package postprocess

import (
	"go/format"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

// GoImports formats Go source files and fixes up their import blocks the way
// the goimports tool does. Non-Go files pass through untouched.
type GoImports struct{}

// NewGoImports creates a GoImports processor.
func NewGoImports() *GoImports {
	return &GoImports{}
}

// ProcessContent implements Processor.
func (g *GoImports) ProcessContent(path string, content []byte) ([]byte, error) {
	if filepath.Ext(path) != ".go" {
		return content, nil
	}

	formatted, err := imports.Process(path, content, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err == nil {
		return formatted, nil
	}

	// goimports needs resolvable packages to do its job. Fall back to plain
	// formatting so generated code outside a module still comes out gofmted.
	formatted, fmtErr := format.Source(content)
	if fmtErr != nil {
		return nil, errors.Wrapf(err, "failed to format %s with goimports and gofmt (%v)", path, fmtErr)
	}

	return formatted, nil
}
