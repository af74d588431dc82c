package lipgloss_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/bugspotter"
	"github.com/fwojciec/bugspotter/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("implements Theme interface", func(t *testing.T) {
		t.Parallel()

		var _ bugspotter.Theme = lipgloss.DefaultTheme()
	})

	t.Run("returns same styles as DarkTheme", func(t *testing.T) {
		t.Parallel()

		defaultStyles := lipgloss.DefaultTheme().Styles()
		darkStyles := lipgloss.DarkTheme().Styles()

		assert.Equal(t, darkStyles, defaultStyles)
	})
}

func TestThemes(t *testing.T) {
	t.Parallel()

	for _, theme := range []*lipgloss.Theme{lipgloss.DarkTheme(), lipgloss.LightTheme()} {
		t.Run(theme.Name(), func(t *testing.T) {
			t.Parallel()

			styles := theme.Styles()
			assert.NotEmpty(t, styles.Brand.Foreground)
			assert.NotEmpty(t, styles.Pill.Background)
			assert.NotEmpty(t, styles.PaneHeader.Foreground)
			assert.NotEmpty(t, styles.Divider.Foreground)
			assert.NotEqual(t, styles.Divider, styles.DividerActive, "drag state should be visible")
			assert.NotEmpty(t, styles.Error.Foreground)

			palette := theme.Palette()
			assert.NotEmpty(t, palette.Keyword)
			assert.NotEmpty(t, palette.Comment)
			assert.NotEqual(t, palette.Background, palette.Foreground)
		})
	}
}

func TestThemeFor(t *testing.T) {
	t.Parallel()

	assert.True(t, lipgloss.ThemeFor(true).Dark())
	assert.False(t, lipgloss.ThemeFor(false).Dark())
	assert.Equal(t, lipgloss.LightTheme().Palette(), lipgloss.ThemeFor(false).Palette())
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	t.Run("resolves known names", func(t *testing.T) {
		t.Parallel()

		dark, err := lipgloss.ThemeByName("dark")
		require.NoError(t, err)
		assert.True(t, dark.Dark())

		light, err := lipgloss.ThemeByName("light")
		require.NoError(t, err)
		assert.False(t, light.Dark())
	})

	t.Run("empty name selects the default", func(t *testing.T) {
		t.Parallel()

		theme, err := lipgloss.ThemeByName("")
		require.NoError(t, err)
		assert.Equal(t, lipgloss.ThemeDark, theme.Name())
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()

		_, err := lipgloss.ThemeByName("solarized")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "solarized")
	})
}

func TestStyle(t *testing.T) {
	t.Parallel()

	t.Run("applies both colors", func(t *testing.T) {
		t.Parallel()

		s := lipgloss.Style(bugspotter.ColorPair{Foreground: "#ff0000", Background: "#000000"})

		assert.Equal(t, "#ff0000", fmt.Sprint(s.GetForeground()))
		assert.Equal(t, "#000000", fmt.Sprint(s.GetBackground()))
	})

	t.Run("leaves empty colors unset", func(t *testing.T) {
		t.Parallel()

		s := lipgloss.Style(bugspotter.ColorPair{})

		assert.Equal(t, "hello", s.Render("hello"))
	})
}
