package mock

import "github.com/fwojciec/bugspotter"

// Compile-time interface verification.
var _ bugspotter.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of bugspotter.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
