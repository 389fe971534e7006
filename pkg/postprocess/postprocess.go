// Package postprocess transforms rendered file contents before they are
// committed to a generated project.
//
// Processors run after template rendering and before the staged tree is
// copied to its destination, which makes them the place for file-type
// specific cleanups such as formatting generated Go sources. Processors are
// applied in registration order and receive the eventual output path of the
// file so they can decide whether they apply at all.
package postprocess

import "github.com/pkg/errors"

// Processor transforms the content of a single rendered file. The path
// parameter is the file's output path; processors that don't apply to the
// file type must return the content unchanged. Implementations are stateless
// and safe for concurrent use.
type Processor interface {
	ProcessContent(path string, content []byte) ([]byte, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(path string, content []byte) ([]byte, error)

// ProcessContent implements Processor.
func (f ProcessorFunc) ProcessContent(path string, content []byte) ([]byte, error) {
	return f(path, content)
}

// Chain runs multiple processors in sequence, feeding each one the output of
// the previous.
type Chain struct {
	processors []Processor
}

// NewChain creates a processor chain containing the given processors.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Add appends a processor to the end of the chain.
func (c *Chain) Add(p Processor) {
	c.processors = append(c.processors, p)
}

// AddFunc appends a plain function to the end of the chain.
func (c *Chain) AddFunc(fn func(path string, content []byte) ([]byte, error)) {
	c.processors = append(c.processors, ProcessorFunc(fn))
}

// Process runs the chain over content. The first failing processor aborts
// the chain.
func (c *Chain) Process(path string, content []byte) ([]byte, error) {
	result := content
	for i, p := range c.processors {
		processed, err := p.ProcessContent(path, result)
		if err != nil {
			return nil, errors.Wrapf(err, "processor %d failed for %s", i, path)
		}

		result = processed
	}

	return result, nil
}

// HasProcessors reports whether the chain contains any processors.
func (c *Chain) HasProcessors() bool {
	return len(c.processors) > 0
}

// Len returns the number of processors in the chain.
func (c *Chain) Len() int {
	return len(c.processors)
}
