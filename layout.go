package bugspotter

import "math"

// Editor pane width bounds, in percent of the workspace width.
const (
	MinEditorPercent     = 25.0
	MaxEditorPercent     = 75.0
	DefaultEditorPercent = 50.0
)

// Layout tracks the resizable split between the editor and result panes.
// Only one drag gesture is modelled at a time.
type Layout struct {
	editorPercent float64
	dragging      bool
}

// NewLayout returns a layout with an even split.
func NewLayout() *Layout {
	return &Layout{editorPercent: DefaultEditorPercent}
}

// EditorPercent returns the editor pane width in percent, always within
// [MinEditorPercent, MaxEditorPercent].
func (l *Layout) EditorPercent() float64 {
	return l.editorPercent
}

// ResultPercent returns the result pane width in percent.
func (l *Layout) ResultPercent() float64 {
	return 100 - l.editorPercent
}

// Dragging reports whether a drag gesture is in progress.
func (l *Layout) Dragging() bool {
	return l.dragging
}

// BeginDrag starts a drag gesture.
func (l *Layout) BeginDrag() {
	l.dragging = true
}

// EndDrag finishes the drag gesture. It is safe to call when no drag is active.
func (l *Layout) EndDrag() {
	l.dragging = false
}

// Move updates the split from a pointer position while dragging.
// It returns true if the layout changed. Moves outside a drag, or with a
// non-positive total width, are ignored.
func (l *Layout) Move(pointerX, totalWidth float64) bool {
	if !l.dragging || totalWidth <= 0 {
		return false
	}
	return l.set(pointerX / totalWidth * 100)
}

// Nudge shifts the split by delta percentage points, clamped to bounds.
func (l *Layout) Nudge(delta float64) bool {
	return l.set(l.editorPercent + delta)
}

// Split converts the percentages into column widths that sum to total.
func (l *Layout) Split(total int) (editor, result int) {
	if total <= 0 {
		return 0, 0
	}
	editor = int(math.Round(float64(total) * l.editorPercent / 100))
	return editor, total - editor
}

func (l *Layout) set(percent float64) bool {
	next := clampPercent(percent)
	if next == l.editorPercent {
		return false
	}
	l.editorPercent = next
	return true
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return DefaultEditorPercent
	}
	return math.Min(MaxEditorPercent, math.Max(MinEditorPercent, p))
}
