// Package glamour renders review markdown for the terminal using glamour.
package glamour

import (
	"strings"
	"sync"

	glamourlib "github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/fwojciec/bugspotter"
)

// Compile-time interface verification.
var _ bugspotter.MarkdownRenderer = (*Renderer)(nil)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 80

// Renderer implements bugspotter.MarkdownRenderer with glamour.
// Term renderers are cached per width and rebuilt when the style changes.
type Renderer struct {
	mu    sync.Mutex
	style string
	width int
	term  *glamourlib.TermRenderer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle sets the glamour standard style ("dark", "light", "notty", ...).
func WithStyle(name string) Option {
	return func(r *Renderer) {
		r.style = name
	}
}

// NewRenderer creates a Renderer using the dark style by default.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{style: styles.DarkStyle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetDark switches between the dark and light standard styles.
func (r *Renderer) SetDark(dark bool) {
	style := styles.LightStyle
	if dark {
		style = styles.DarkStyle
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.style != style {
		r.style = style
		r.term = nil
	}
}

// Render renders markdown wrapped to width. Rendering errors fall back to
// the raw markdown.
func (r *Renderer) Render(markdown string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term == nil || r.width != width {
		term, err := glamourlib.NewTermRenderer(
			glamourlib.WithStandardStyle(r.style),
			glamourlib.WithWordWrap(width),
		)
		if err != nil {
			return markdown
		}
		r.term = term
		r.width = width
	}

	out, err := r.term.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.Trim(out, "\n")
}
