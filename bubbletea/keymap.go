package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the review workspace.
// Submit, Browse and ForceQuit are honoured while editing; the rest only
// apply in browse focus so they never steal keystrokes from the editor.
type KeyMap struct {
	Submit       key.Binding
	Review       key.Binding
	Edit         key.Binding
	Browse       key.Binding
	NextLanguage key.Binding
	PrevLanguage key.Binding
	ToggleTheme  key.Binding
	ToggleWrap   key.Binding
	CopyCode     key.Binding
	CopyReview   key.Binding
	Clear        key.Binding
	Shrink       key.Binding
	Grow         key.Binding
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+s"),
			key.WithHelp("alt+enter/ctrl+s", "review"),
		),
		Review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "review"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i", "edit"),
		),
		Browse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing"),
		),
		NextLanguage: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next language"),
		),
		PrevLanguage: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "previous language"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wrap"),
		),
		CopyCode: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy code"),
		),
		CopyReview: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy review"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear review"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "shrink editor"),
		),
		Grow: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "grow editor"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Review, k.Edit, k.NextLanguage, k.CopyReview, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Review, k.Clear, k.CopyReview},
		{k.Edit, k.Browse, k.CopyCode, k.NextLanguage, k.PrevLanguage},
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown},
		{k.ToggleTheme, k.ToggleWrap, k.Shrink, k.Grow, k.Help, k.Quit},
	}
}
