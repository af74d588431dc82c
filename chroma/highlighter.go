// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/bugspotter"
)

// Compile-time interface verification.
var _ bugspotter.Highlighter = (*Highlighter)(nil)

// StyleFunc maps chroma token types to workspace styles.
type StyleFunc func(chromalib.TokenType) bugspotter.Style

// lexerAliases maps registry ids that chroma does not know by name.
var lexerAliases = map[string]string{
	"cpp":    "c++",
	"csharp": "c#",
}

// Highlighter highlights code using chroma lexers.
type Highlighter struct {
	styleFunc StyleFunc
}

// NewHighlighter creates a new chroma-based highlighter with the given style function.
// Use StyleFromPalette to create a style function from a bugspotter.Palette.
func NewHighlighter(styleFunc StyleFunc) (*Highlighter, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Highlighter{styleFunc: styleFunc}, nil
}

// Highlight tokenizes text with full context, then splits tokens by line.
// Languages without a grammar fall back to plain text. Returns an empty
// slice for empty text.
func (h *Highlighter) Highlight(text, languageID string) [][]bugspotter.Token {
	if text == "" {
		return [][]bugspotter.Token{}
	}

	// Coalesce for better performance with consecutive tokens of the same type
	lexer := chromalib.Coalesce(resolveLexer(languageID))

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return plainLines(text)
	}

	var tokens []bugspotter.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		tokens = append(tokens, bugspotter.Token{
			Text:  token.Value,
			Style: h.styleFunc(token.Type),
		})
	}

	return splitTokensByLine(tokens)
}

// resolveLexer finds a lexer by exact id, lower-cased id, then alias, and
// falls back to the plain-text lexer.
func resolveLexer(languageID string) chromalib.Lexer {
	if lexer := lexers.Get(languageID); lexer != nil {
		return lexer
	}
	lower := strings.ToLower(languageID)
	if lexer := lexers.Get(lower); lexer != nil {
		return lexer
	}
	if alias, ok := lexerAliases[lower]; ok {
		if lexer := lexers.Get(alias); lexer != nil {
			return lexer
		}
	}
	return lexers.Fallback
}

// plainLines returns one unstyled token per line.
func plainLines(text string) [][]bugspotter.Token {
	parts := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	lines := make([][]bugspotter.Token, len(parts))
	for i, part := range parts {
		if part != "" {
			lines[i] = []bugspotter.Token{{Text: part}}
		}
	}
	return lines
}

// splitTokensByLine splits a flat list of tokens into per-line token slices.
// Handles tokens that span multiple lines by splitting them at newline boundaries.
func splitTokensByLine(tokens []bugspotter.Token) [][]bugspotter.Token {
	if len(tokens) == 0 {
		return [][]bugspotter.Token{}
	}

	var result [][]bugspotter.Token
	var currentLine []bugspotter.Token

	for _, tok := range tokens {
		// Token without newlines goes directly to current line
		if !strings.Contains(tok.Text, "\n") {
			currentLine = append(currentLine, tok)
			continue
		}

		// Split the token at newline boundaries
		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			if part != "" {
				currentLine = append(currentLine, bugspotter.Token{
					Text:  part,
					Style: tok.Style,
				})
			}
			// If this isn't the last part, we hit a newline - finalize the line
			if i < len(parts)-1 {
				result = append(result, currentLine)
				currentLine = nil
			}
		}
	}

	// Don't forget the last line if it has content
	if len(currentLine) > 0 {
		result = append(result, currentLine)
	}

	return result
}
