// Package clipboard provides clipboard operations via the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/bugspotter"
)

// Ensure System implements the Clipboard interface.
var _ bugspotter.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: no clipboard utility available")

// System implements Clipboard using the platform clipboard
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Supported reports whether a clipboard utility was found.
func (s *System) Supported() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	return nil
}
