package bugspotter

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of the workspace.
type Styles struct {
	Navbar         ColorPair // Top bar with brand and key hints
	Brand          ColorPair // Application name in the navbar
	Pill           ColorPair // Selected language badge
	PaneHeader     ColorPair // Pane titles
	LineNumber     ColorPair // Gutter in the code view
	Divider        ColorPair // Resize handle between panes
	DividerActive  ColorPair // Resize handle while dragging
	Placeholder    ColorPair // Idle hint in the result pane
	Error          ColorPair // Failed review message
	Spinner        ColorPair // Pending indicator
	StatusBar      ColorPair // Bottom line with notices
	FocusedBorder  ColorPair // Border of the focused pane
	InactiveBorder ColorPair // Border of the other pane
}

// Color is a hex color string such as "#cdd6f4".
type Color string

// Palette defines the semantic colors of a theme.
type Palette struct {
	Background Color
	Foreground Color

	// Syntax highlighting colors
	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color

	// UI colors
	UIBackground Color
	UIForeground Color
	UIAccent     Color
	Muted        Color
	Error        Color
}

// Theme provides styles for rendering the workspace.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
