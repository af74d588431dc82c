package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bugspotter"
)

// minGutterWidth is the minimum width of the line number column.
const minGutterWidth = 3

// codeConfig holds the parameters for renderCode.
type codeConfig struct {
	lines    [][]bugspotter.Token
	styles   bugspotter.Styles
	renderer *lipgloss.Renderer
	width    int
	wrap     bool
}

// renderCode renders highlighted lines with a line number gutter. Lines
// longer than the width are wrapped onto continuation rows (blank gutter)
// or truncated, depending on cfg.wrap. Tabs are expanded to spaces.
func renderCode(cfg codeConfig) string {
	gutterWidth := max(digitWidth(len(cfg.lines)), minGutterWidth)
	avail := cfg.width - gutterWidth - 1
	if avail < 1 {
		avail = 1
	}

	lineNumStyle := styleFromColorPair(cfg.styles.LineNumber, cfg.renderer)
	blankGutter := lineNumStyle.Render(strings.Repeat(" ", gutterWidth+1))

	var rows []string
	for i, tokens := range cfg.lines {
		gutter := lineNumStyle.Render(fmt.Sprintf("%*d ", gutterWidth, i+1))

		var row strings.Builder
		row.WriteString(gutter)
		col := 0
		truncated := false

		for _, tok := range tokens {
			if truncated {
				break
			}
			style := tokenStyle(tok.Style, cfg.renderer)
			var seg strings.Builder
			for _, r := range ExpandTabs(tok.Text, col) {
				w := lipgloss.Width(string(r))
				if col+w > avail {
					if !cfg.wrap {
						truncated = true
						break
					}
					row.WriteString(style.Render(seg.String()))
					seg.Reset()
					rows = append(rows, row.String())
					row.Reset()
					row.WriteString(blankGutter)
					col = 0
				}
				seg.WriteRune(r)
				col += w
			}
			if seg.Len() > 0 {
				row.WriteString(style.Render(seg.String()))
			}
		}
		rows = append(rows, row.String())
	}

	return strings.Join(rows, "\n")
}

// plainTokens splits text into one unstyled token per line.
func plainTokens(text string) [][]bugspotter.Token {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	lines := make([][]bugspotter.Token, len(parts))
	for i, p := range parts {
		if p != "" {
			lines[i] = []bugspotter.Token{{Text: p}}
		}
	}
	return lines
}

// tokenStyle creates a lipgloss style for a syntax token.
func tokenStyle(s bugspotter.Style, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	return style
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp bugspotter.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

func newStyle(renderer *lipgloss.Renderer) lipgloss.Style {
	if renderer != nil {
		return renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// padLine pads a line with spaces to the specified display width.
// Uses lipgloss.Width() to correctly handle multi-byte Unicode characters.
// If the line is already wider, it is returned unchanged.
func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

// fitBlock forces content into exactly width columns and height rows,
// padding short rows and truncating overflow.
func fitBlock(content string, width, height int, renderer *lipgloss.Renderer) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	clip := newStyle(renderer).MaxWidth(width)
	for i, line := range lines {
		lines[i] = padLine(clip.Render(line), width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
