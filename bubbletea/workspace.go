// Package bubbletea provides the interactive review workspace using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bugspotter"
	"github.com/rs/zerolog"
)

// Chrome sizes and user-facing text.
const (
	navbarHeight  = 1
	headerHeight  = 1
	statusHeight  = 1
	dividerWidth  = 1
	nudgeStep     = 5.0
	idleMarkdown  = "👉 Press **r** (or **alt+enter** while editing) to see suggestions here."
	pendingText   = "Reviewing your code…"
	brandText     = "🐞 BugSpotter"
	taglineText   = "AI-powered code review"
	resultTitle   = "AI Suggestions"
	editorTitle   = "Code"
	copiedCode    = "Code copied to clipboard"
	copiedReview  = "Review copied to clipboard"
	nothingToCopy = "No review to copy yet"
	clearedNotice = "Review cleared"
	pendingNotice = "A review is in progress"
	noClipboard   = "Clipboard unavailable"
	copyFailed    = "Copy failed"
)

// maxEditorLines caps the editor and sizes its line-number gutter.
const maxEditorLines = 10000

// focus tells which element receives plain keystrokes.
type focus int

const (
	focusBrowse focus = iota
	focusEdit
)

// reviewDoneMsg carries a completed review back into the update loop.
type reviewDoneMsg struct {
	completion bugspotter.Completion
}

// Model is the Bubble Tea model for the review workspace.
type Model struct {
	ctx     context.Context
	session *bugspotter.Session
	layout  *bugspotter.Layout

	editor  textarea.Model
	code    viewport.Model
	result  viewport.Model
	spinner spinner.Model
	help    help.Model
	keymap  KeyMap

	highlighterFor func(bugspotter.Palette) bugspotter.Highlighter
	highlighter    bugspotter.Highlighter
	markdown       bugspotter.MarkdownRenderer
	clipboard      bugspotter.Clipboard
	themeFor       func(dark bool) bugspotter.Theme
	styles         bugspotter.Styles
	palette        bugspotter.Palette
	renderer       *lipgloss.Renderer
	logger         zerolog.Logger

	prefs    bugspotter.DisplayPrefs
	focus    focus
	width    int
	height   int
	ready    bool
	notice   string
	showHelp bool
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context passed to review calls.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithLayout sets the split layout controller.
func WithLayout(l *bugspotter.Layout) Option {
	return func(m *Model) {
		m.layout = l
	}
}

// WithHighlighter sets a factory that builds a highlighter for the active
// theme palette. It is called again when the theme changes.
func WithHighlighter(fn func(bugspotter.Palette) bugspotter.Highlighter) Option {
	return func(m *Model) {
		m.highlighterFor = fn
	}
}

// WithMarkdownRenderer sets the renderer for review results. If it also
// implements SetDark(bool), it is told about theme changes.
func WithMarkdownRenderer(r bugspotter.MarkdownRenderer) Option {
	return func(m *Model) {
		m.markdown = r
	}
}

// WithClipboard sets the clipboard sink used by the copy actions.
func WithClipboard(c bugspotter.Clipboard) Option {
	return func(m *Model) {
		m.clipboard = c
	}
}

// WithThemes sets the theme provider for the dark and light variants.
func WithThemes(fn func(dark bool) bugspotter.Theme) Option {
	return func(m *Model) {
		m.themeFor = fn
	}
}

// WithPrefs sets the initial display preferences.
func WithPrefs(p bugspotter.DisplayPrefs) Option {
	return func(m *Model) {
		m.prefs = p
	}
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithModelLogger sets the logger for workspace events.
func WithModelLogger(l zerolog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// NewModel creates the workspace model for a session.
func NewModel(session *bugspotter.Session, opts ...Option) Model {
	m := Model{
		ctx:     context.Background(),
		session: session,
		layout:  bugspotter.NewLayout(),
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		prefs:   bugspotter.DisplayPrefs{Dark: true, Wrap: true},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.editor = textarea.New()
	m.editor.ShowLineNumbers = true
	m.editor.CharLimit = 0
	m.editor.MaxHeight = maxEditorLines
	m.editor.Placeholder = "Paste or type code to review…"
	m.editor.SetValue(session.Code())

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.applyTheme()

	return m
}

// Session returns the review session driven by the model.
func (m Model) Session() *bugspotter.Session {
	return m.session
}

// Layout returns the split layout controller.
func (m Model) Layout() *bugspotter.Layout {
	return m.layout
}

// Prefs returns the current display preferences.
func (m Model) Prefs() bugspotter.DisplayPrefs {
	return m.prefs
}

// Editing reports whether the editor has focus.
func (m Model) Editing() bool {
	return m.focus == focusEdit
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case reviewDoneMsg:
		if m.session.Resolve(msg.completion) {
			m.refreshResult()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.State().Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusEdit {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	// Submit and quit are dispatched before the editor sees the key.
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	case key.Matches(msg, m.keymap.ForceQuit):
		return m, quit()
	}

	if m.focus == focusEdit {
		if key.Matches(msg, m.keymap.Browse) {
			m.focus = focusBrowse
			m.editor.Blur()
			m.refreshCode()
			return m, nil
		}
		before := m.editor.Value()
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		// The buffer only follows the editor after a real edit; the
		// textarea normalises tabs on load.
		if after := m.editor.Value(); after != before {
			m.session.SetCode(after)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, quit()
	case key.Matches(msg, m.keymap.Review):
		return m.submit()
	case key.Matches(msg, m.keymap.Edit):
		m.focus = focusEdit
		m.showHelp = false
		return m, m.editor.Focus()
	case key.Matches(msg, m.keymap.NextLanguage):
		m.selectLanguage(m.session.Registry().Next(m.session.Language().ID).ID)
	case key.Matches(msg, m.keymap.PrevLanguage):
		m.selectLanguage(m.session.Registry().Prev(m.session.Language().ID).ID)
	case key.Matches(msg, m.keymap.ToggleTheme):
		m.prefs.Dark = !m.prefs.Dark
		m.applyTheme()
		m.refreshCode()
		m.refreshResult()
	case key.Matches(msg, m.keymap.ToggleWrap):
		m.prefs.Wrap = !m.prefs.Wrap
		m.refreshCode()
	case key.Matches(msg, m.keymap.CopyCode):
		m.copyText(m.session.Code(), copiedCode)
	case key.Matches(msg, m.keymap.CopyReview):
		state := m.session.State()
		if !state.Succeeded() {
			m.notice = nothingToCopy
			break
		}
		m.copyText(state.Result, copiedReview)
	case key.Matches(msg, m.keymap.Clear):
		if err := m.session.ClearResult(); errors.Is(err, bugspotter.ErrReviewPending) {
			m.notice = pendingNotice
			break
		}
		m.notice = clearedNotice
		m.refreshResult()
	case key.Matches(msg, m.keymap.Shrink):
		if m.layout.Nudge(-nudgeStep) {
			m.resize()
		}
	case key.Matches(msg, m.keymap.Grow):
		if m.layout.Nudge(nudgeStep) {
			m.resize()
		}
	case key.Matches(msg, m.keymap.Up):
		m.result.ScrollUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.result.ScrollDown(1)
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.result.HalfPageUp()
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.result.HalfPageDown()
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	editorWidth, _ := m.paneWidths()

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.X == editorWidth && m.inBody(msg.Y) {
			m.layout.BeginDrag()
			return m, nil
		}
	case msg.Action == tea.MouseActionMotion:
		if m.layout.Move(float64(msg.X), float64(m.width)) {
			m.resize()
		}
		return m, nil
	case msg.Action == tea.MouseActionRelease:
		m.layout.EndDrag()
		return m, nil
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if msg.X < editorWidth {
			if m.focus == focusBrowse {
				var cmd tea.Cmd
				m.code, cmd = m.code.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit starts a review of the current buffer. A review already in flight
// is superseded; its completion will be discarded.
func (m Model) submit() (tea.Model, tea.Cmd) {
	wasPending := m.session.State().Pending()
	ticket := m.session.Submit()
	m.showHelp = false
	m.refreshResult()

	ctx := m.ctx
	session := m.session
	run := func() tea.Msg {
		return reviewDoneMsg{completion: session.Run(ctx, ticket)}
	}
	if wasPending {
		return m, run
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m *Model) selectLanguage(id string) {
	m.session.SetLanguage(id)
	m.editor.SetValue(m.session.Code())
	m.refreshCode()
}

// copyText sends text to the clipboard. Failures are logged and reported in
// the status line only.
func (m *Model) copyText(text, success string) {
	if m.clipboard == nil {
		m.notice = noClipboard
		return
	}
	if err := m.clipboard.Copy(text); err != nil {
		m.logger.Warn().Err(err).Msg("clipboard copy failed")
		m.notice = copyFailed
		return
	}
	m.notice = success
}

func (m *Model) applyTheme() {
	if m.themeFor != nil {
		theme := m.themeFor(m.prefs.Dark)
		m.styles = theme.Styles()
		m.palette = theme.Palette()
	}
	if m.highlighterFor != nil {
		m.highlighter = m.highlighterFor(m.palette)
	}
	if d, ok := m.markdown.(interface{ SetDark(bool) }); ok {
		d.SetDark(m.prefs.Dark)
	}
	m.spinner.Style = styleFromColorPair(m.styles.Spinner, m.renderer)
	m.help.Styles.ShortKey = styleFromColorPair(m.styles.Brand, m.renderer)
}

// paneWidths returns the editor and result pane widths.
func (m Model) paneWidths() (editor, result int) {
	return m.layout.Split(m.width - dividerWidth)
}

func (m Model) bodyHeight() int {
	return max(m.height-navbarHeight-headerHeight-statusHeight, 1)
}

func (m Model) inBody(y int) bool {
	top := navbarHeight + headerHeight
	return y >= top && y < top+m.bodyHeight()
}

// resize propagates the current split to the panes.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	editorWidth, resultWidth := m.paneWidths()
	height := m.bodyHeight()

	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(height)

	if m.code.Width == 0 && m.code.Height == 0 {
		m.code = viewport.New(editorWidth, height)
		m.result = viewport.New(resultWidth, height)
	} else {
		m.code.Width, m.code.Height = editorWidth, height
		m.result.Width, m.result.Height = resultWidth, height
	}
	m.help.Width = m.width

	m.refreshCode()
	m.refreshResult()
}

// refreshCode re-renders the highlighted read-only code view.
func (m *Model) refreshCode() {
	if !m.ready {
		return
	}
	code := m.session.Code()
	var lines [][]bugspotter.Token
	if m.highlighter != nil {
		lines = m.highlighter.Highlight(code, m.session.Language().ID)
	} else {
		lines = plainTokens(code)
	}
	m.code.SetContent(renderCode(codeConfig{
		lines:    lines,
		styles:   m.styles,
		renderer: m.renderer,
		width:    m.code.Width,
		wrap:     m.prefs.Wrap,
	}))
}

// refreshResult re-renders the result pane for the current review state.
func (m *Model) refreshResult() {
	if !m.ready {
		return
	}
	state := m.session.State()
	switch state.Status {
	case bugspotter.StatusIdle:
		placeholder := styleFromColorPair(m.styles.Placeholder, m.renderer)
		m.result.SetContent(placeholder.Render(m.renderMarkdown(idleMarkdown)))
	case bugspotter.StatusSucceeded:
		m.result.SetContent(m.renderMarkdown(state.Result))
	case bugspotter.StatusFailed:
		errStyle := styleFromColorPair(m.styles.Error, m.renderer).Width(max(m.result.Width-2, 1))
		m.result.SetContent(errStyle.Render("⚠️ " + state.Message))
	default:
		m.result.SetContent("")
	}
	m.result.GotoTop()
}

func (m Model) renderMarkdown(md string) string {
	if m.markdown == nil {
		return md
	}
	return m.markdown.Render(md, max(m.result.Width-2, 1))
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	editorWidth, resultWidth := m.paneWidths()
	height := m.bodyHeight()

	var left string
	if m.focus == focusEdit {
		left = m.editor.View()
	} else {
		left = m.code.View()
	}

	var right string
	switch {
	case m.showHelp:
		right = m.help.FullHelpView(m.keymap.FullHelp())
	case m.session.State().Pending():
		right = m.spinner.View() + " " + pendingText
	default:
		right = m.result.View()
	}

	dividerStyle := styleFromColorPair(m.styles.Divider, m.renderer)
	if m.layout.Dragging() {
		dividerStyle = styleFromColorPair(m.styles.DividerActive, m.renderer)
	}
	divider := dividerStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		fitBlock(left, editorWidth, height, m.renderer),
		divider,
		fitBlock(right, resultWidth, height, m.renderer),
	)

	return strings.Join([]string{
		m.navbarView(),
		m.headersView(editorWidth, resultWidth),
		body,
		m.statusView(),
	}, "\n")
}

func (m Model) navbarView() string {
	navStyle := styleFromColorPair(m.styles.Navbar, m.renderer)
	brand := styleFromColorPair(m.styles.Brand, m.renderer).Bold(true).Render(brandText)
	pill := styleFromColorPair(m.styles.Pill, m.renderer).Padding(0, 1).Render(m.session.Language().Label)
	left := brand + navStyle.Render("  "+taglineText+"  ") + pill

	theme := "dark"
	if !m.prefs.Dark {
		theme = "light"
	}
	wrap := "wrap"
	if !m.prefs.Wrap {
		wrap = "nowrap"
	}
	right := navStyle.Render(fmt.Sprintf("%s · %s · %.0f%% ", theme, wrap, m.layout.EditorPercent()))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return fitBlock(left, m.width, 1, m.renderer)
	}
	return left + navStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m Model) headersView(editorWidth, resultWidth int) string {
	headerStyle := styleFromColorPair(m.styles.PaneHeader, m.renderer).Bold(true)
	mode := "browse"
	if m.focus == focusEdit {
		mode = "editing"
	}
	left := headerStyle.Render(padLine(fmt.Sprintf(" %s [%s]", editorTitle, mode), editorWidth))
	right := headerStyle.Render(padLine(" "+resultTitle, resultWidth))
	divider := styleFromColorPair(m.styles.Divider, m.renderer).Render("│")
	return fitBlock(left, editorWidth, 1, m.renderer) + divider + fitBlock(right, resultWidth, 1, m.renderer)
}

func (m Model) statusView() string {
	statusStyle := styleFromColorPair(m.styles.StatusBar, m.renderer)
	text := m.notice
	if text == "" {
		if m.focus == focusEdit {
			text = m.help.ShortHelpView([]key.Binding{m.keymap.Submit, m.keymap.Browse})
		} else {
			text = m.help.ShortHelpView(m.keymap.ShortHelp())
		}
	}
	return statusStyle.Render(fitBlock(" "+text, m.width, 1, m.renderer))
}

// quit releases the mouse before ending the program.
func quit() tea.Cmd {
	return tea.Sequence(tea.DisableMouse, tea.Quit)
}

// Workspace runs the review workspace as a full-screen terminal program.
type Workspace struct {
	session *bugspotter.Session
	opts    []Option
}

// NewWorkspace creates a Workspace for the session.
func NewWorkspace(session *bugspotter.Session, opts ...Option) *Workspace {
	return &Workspace{session: session, opts: opts}
}

// Run displays the workspace and blocks until the user quits or ctx is
// cancelled. Cancelling ctx also abandons any in-flight review.
func (w *Workspace) Run(ctx context.Context) error {
	opts := append([]Option{WithContext(ctx)}, w.opts...)
	m := NewModel(w.session, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
