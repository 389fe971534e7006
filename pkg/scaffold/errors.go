package scaffold

import "fmt"

// TemplatesNotFoundError reports a generator whose template tree does not
// exist. It is returned before any filesystem mutation takes place, so a
// caller that sees it can be certain the destination was left untouched.
type TemplatesNotFoundError struct {
	// Root identifies the missing template tree, typically the source path
	// or template name the generator was constructed with.
	Root string
}

func (e *TemplatesNotFoundError) Error() string {
	return fmt.Sprintf("templates directory not found: %s", e.Root)
}
