package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/bugspotter"
	"github.com/fwojciec/bugspotter/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHighlighter(t *testing.T) *chroma.Highlighter {
	t.Helper()
	h, err := chroma.NewHighlighter(chroma.StyleFromPalette(testPalette()))
	require.NoError(t, err)
	return h
}

// lineText joins the token texts of each line.
func lineText(lines [][]bugspotter.Token) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for _, tok := range line {
			b.WriteString(tok.Text)
		}
		out[i] = b.String()
	}
	return out
}

func TestNewHighlighter(t *testing.T) {
	t.Parallel()

	_, err := chroma.NewHighlighter(nil)

	require.Error(t, err)
}

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("tokenizes go code with keyword style", func(t *testing.T) {
		t.Parallel()

		h := newHighlighter(t)
		lines := h.Highlight("package main\n\nfunc main() {}", "go")

		require.Len(t, lines, 3)
		require.NotEmpty(t, lines[0])
		assert.Equal(t, "package", lines[0][0].Text)
		assert.Equal(t, "#ff00ff", lines[0][0].Style.Foreground)
		assert.Empty(t, lines[1])
	})

	t.Run("reconstructs the input text", func(t *testing.T) {
		t.Parallel()

		h := newHighlighter(t)
		code := "def add(a, b):\n    \"\"\"Sum.\"\"\"\n    return a + b"
		lines := h.Highlight(code, "python")

		assert.Equal(t, code, strings.Join(lineText(lines), "\n"))
	})

	t.Run("splits multi-line tokens", func(t *testing.T) {
		t.Parallel()

		h := newHighlighter(t)
		code := "/* first\nsecond */\nint x;"
		lines := h.Highlight(code, "c")

		require.Len(t, lines, 3)
		assert.Equal(t, "/* first", lineText(lines)[0])
		assert.Equal(t, "#888888", lines[0][0].Style.Foreground)
		assert.Equal(t, "#888888", lines[1][0].Style.Foreground)
	})

	t.Run("resolves registry ids through aliases", func(t *testing.T) {
		t.Parallel()

		h := newHighlighter(t)
		cpp := h.Highlight("namespace app {}", "cpp")
		csharp := h.Highlight("public class A {}", "csharp")

		require.NotEmpty(t, cpp)
		assert.True(t, cpp[0][0].Style.Bold, "keyword should be styled")
		require.NotEmpty(t, csharp)
		assert.True(t, csharp[0][0].Style.Bold, "keyword should be styled")
	})

	t.Run("unknown language falls back to plain text", func(t *testing.T) {
		t.Parallel()

		h := newHighlighter(t)
		code := "some words\nmore words"
		lines := h.Highlight(code, "not-a-real-language")

		require.NotNil(t, lines)
		assert.Equal(t, []string{"some words", "more words"}, lineText(lines))
	})

	t.Run("empty input returns empty lines", func(t *testing.T) {
		t.Parallel()

		h := newHighlighter(t)
		lines := h.Highlight("", "go")

		assert.NotNil(t, lines)
		assert.Empty(t, lines)
	})
}
