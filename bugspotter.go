// Package bugspotter provides domain types for an interactive code-review workspace.
package bugspotter

import (
	"context"
	"errors"
)

// Domain errors.
var (
	// ErrLanguageNotFound is returned when a language id is not in the registry.
	ErrLanguageNotFound = errors.New("language not found")
	// ErrReviewPending is returned when an operation is not allowed while a review is in flight.
	ErrReviewPending = errors.New("review pending")
	// ErrEmptyReview is returned when a reviewer produces no text.
	ErrEmptyReview = errors.New("empty review")
)

// ReviewRequest is an immutable snapshot of the buffer taken at submit time.
type ReviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Reviewer produces a review for a snapshot of code.
type Reviewer interface {
	// Review returns the review text (typically markdown) for the request.
	Review(ctx context.Context, req ReviewRequest) (string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// MarkdownRenderer turns review markdown into displayable terminal text.
type MarkdownRenderer interface {
	// Render returns markdown rendered for the given column width.
	// Implementations degrade to plain text rather than failing.
	Render(markdown string, width int) string
}

// DisplayPrefs holds the workspace display toggles.
type DisplayPrefs struct {
	Dark bool // Dark theme when true, light otherwise
	Wrap bool // Wrap long lines in the code view instead of truncating
}
