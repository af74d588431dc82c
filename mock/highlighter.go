package mock

import "github.com/fwojciec/bugspotter"

// Compile-time interface verification.
var (
	_ bugspotter.Highlighter      = (*Highlighter)(nil)
	_ bugspotter.MarkdownRenderer = (*MarkdownRenderer)(nil)
	_ bugspotter.LanguageDetector = (*LanguageDetector)(nil)
)

// Highlighter is a mock implementation of bugspotter.Highlighter.
type Highlighter struct {
	HighlightFn func(text, languageID string) [][]bugspotter.Token
}

func (h *Highlighter) Highlight(text, languageID string) [][]bugspotter.Token {
	return h.HighlightFn(text, languageID)
}

// MarkdownRenderer is a mock implementation of bugspotter.MarkdownRenderer.
type MarkdownRenderer struct {
	RenderFn func(markdown string, width int) string
}

func (r *MarkdownRenderer) Render(markdown string, width int) string {
	return r.RenderFn(markdown, width)
}

// LanguageDetector is a mock implementation of bugspotter.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}
