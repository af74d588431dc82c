package bugspotter

// Token represents a syntax-highlighted segment of code.
type Token struct {
	Text  string // The text content of this token
	Style Style  // Visual style to apply (colors, bold, etc.)
}

// Style represents the visual styling for a token.
type Style struct {
	Foreground string // Hex color code (e.g., "#ff0000") or empty for default
	Bold       bool   // Whether the text should be bold
}

// Highlighter splits code into styled tokens, one slice per line.
type Highlighter interface {
	// Highlight tokenizes text for the language id. It never fails: unknown
	// languages fall back to a plain-text grammar, so the returned lines
	// always reconstruct the input.
	Highlight(text, languageID string) [][]Token
}

// LanguageDetector determines the programming language from a file path.
type LanguageDetector interface {
	// DetectFromPath returns the language name for the given path,
	// or an empty string if the language cannot be determined.
	DetectFromPath(path string) string
}
