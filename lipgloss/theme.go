// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bugspotter"
)

// Compile-time interface verification.
var _ bugspotter.Theme = (*Theme)(nil)

// Theme names accepted by ThemeByName.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme implements bugspotter.Theme with Lipgloss-compatible colors.
type Theme struct {
	name    string
	dark    bool
	styles  bugspotter.Styles
	palette bugspotter.Palette
}

// Name returns the theme name.
func (t *Theme) Name() string {
	return t.name
}

// Dark reports whether the theme targets dark backgrounds.
func (t *Theme) Dark() bool {
	return t.dark
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() bugspotter.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() bugspotter.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeFor returns the dark or light theme.
func ThemeFor(dark bool) *Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeByName returns the theme with the given name.
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case ThemeDark, "":
		return DarkTheme(), nil
	case ThemeLight:
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// Style converts a color pair into a lipgloss style. Empty colors are left
// unset so the terminal default shows through.
func Style(p bugspotter.ColorPair) lipgloss.Style {
	s := lipgloss.NewStyle()
	if p.Foreground != "" {
		s = s.Foreground(lipgloss.Color(p.Foreground))
	}
	if p.Background != "" {
		s = s.Background(lipgloss.Color(p.Background))
	}
	return s
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		name: ThemeDark,
		dark: true,
		styles: bugspotter.Styles{
			Navbar: bugspotter.ColorPair{
				Foreground: "#a6adc8", // Subtext
				Background: "#181825", // Mantle
			},
			Brand: bugspotter.ColorPair{
				Foreground: "#f38ba8", // Red, the bug
				Background: "#181825",
			},
			Pill: bugspotter.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#89b4fa", // Blue
			},
			PaneHeader: bugspotter.ColorPair{
				Foreground: "#f9e2af", // Yellow
				Background: "#313244", // Dark surface
			},
			LineNumber: bugspotter.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Divider: bugspotter.ColorPair{
				Foreground: "#45475a", // Muted gray (subtle)
			},
			DividerActive: bugspotter.ColorPair{
				Foreground: "#89b4fa", // Blue while dragging
			},
			Placeholder: bugspotter.ColorPair{
				Foreground: "#7f849c",
			},
			Error: bugspotter.ColorPair{
				Foreground: "#f38ba8", // Red
			},
			Spinner: bugspotter.ColorPair{
				Foreground: "#cba6f7", // Mauve
			},
			StatusBar: bugspotter.ColorPair{
				Foreground: "#a6adc8",
				Background: "#181825",
			},
			FocusedBorder: bugspotter.ColorPair{
				Foreground: "#89b4fa",
			},
			InactiveBorder: bugspotter.ColorPair{
				Foreground: "#45475a",
			},
		},
		palette: bugspotter.Palette{
			// Base colors (Catppuccin Mocha)
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			// Syntax highlighting colors
			Keyword:     "#cba6f7",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Comment:     "#6c7086",
			Operator:    "#89dceb",
			Function:    "#89b4fa",
			Type:        "#f9e2af",
			Constant:    "#fab387",
			Punctuation: "#9399b2",

			// UI colors
			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			UIAccent:     "#89b4fa",
			Muted:        "#6c7086",
			Error:        "#f38ba8",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		name: ThemeLight,
		styles: bugspotter.Styles{
			Navbar: bugspotter.ColorPair{
				Foreground: "#5c5f77",
				Background: "#e6e9ef", // Mantle
			},
			Brand: bugspotter.ColorPair{
				Foreground: "#d20f39", // Red
				Background: "#e6e9ef",
			},
			Pill: bugspotter.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#1e66f5", // Blue
			},
			PaneHeader: bugspotter.ColorPair{
				Foreground: "#df8e1d", // Yellow
				Background: "#dce0e8", // Light surface
			},
			LineNumber: bugspotter.ColorPair{
				Foreground: "#9ca0b0", // Muted gray for light theme
			},
			Divider: bugspotter.ColorPair{
				Foreground: "#bcc0cc", // Muted gray (subtle for light)
			},
			DividerActive: bugspotter.ColorPair{
				Foreground: "#1e66f5",
			},
			Placeholder: bugspotter.ColorPair{
				Foreground: "#8c8fa1",
			},
			Error: bugspotter.ColorPair{
				Foreground: "#d20f39",
			},
			Spinner: bugspotter.ColorPair{
				Foreground: "#8839ef", // Mauve
			},
			StatusBar: bugspotter.ColorPair{
				Foreground: "#5c5f77",
				Background: "#e6e9ef",
			},
			FocusedBorder: bugspotter.ColorPair{
				Foreground: "#1e66f5",
			},
			InactiveBorder: bugspotter.ColorPair{
				Foreground: "#bcc0cc",
			},
		},
		palette: bugspotter.Palette{
			// Base colors (Catppuccin Latte)
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			// Syntax highlighting colors
			Keyword:     "#8839ef",
			String:      "#40a02b",
			Number:      "#fe640b",
			Comment:     "#9ca0b0",
			Operator:    "#04a5e5",
			Function:    "#1e66f5",
			Type:        "#df8e1d",
			Constant:    "#fe640b",
			Punctuation: "#6c6f85",

			// UI colors
			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			UIAccent:     "#1e66f5",
			Muted:        "#9ca0b0",
			Error:        "#d20f39",
		},
	}
}
