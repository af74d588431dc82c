package bugspotter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ReviewStatus identifies the active variant of a ReviewState.
type ReviewStatus int

// Review statuses.
const (
	StatusIdle ReviewStatus = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

// String returns the lower-case status name.
func (s ReviewStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReviewState is the outcome of the latest review session.
// Result is set only when Succeeded, Message only when Failed.
type ReviewState struct {
	Status  ReviewStatus
	Result  string
	Message string
}

// Idle reports whether no review is pending or stored.
func (s ReviewState) Idle() bool { return s.Status == StatusIdle }

// Pending reports whether a review is in flight.
func (s ReviewState) Pending() bool { return s.Status == StatusPending }

// Succeeded reports whether the latest review completed.
func (s ReviewState) Succeeded() bool { return s.Status == StatusSucceeded }

// Failed reports whether the latest review failed.
func (s ReviewState) Failed() bool { return s.Status == StatusFailed }

// Ticket identifies one submitted review request.
type Ticket struct {
	Seq     uint64
	Request ReviewRequest
}

// Completion is the outcome of running a ticket.
type Completion struct {
	Seq    uint64
	Result string
	Err    error
}

// User-facing failure messages.
const (
	DefaultUnreachableMessage = "Could not fetch review. Is the review service reachable?"
	TimeoutMessage            = "Review timed out. Try again or check the review service."
	EmptyReviewMessage        = "The review service returned an empty review. Try again."
)

// Session owns the code buffer, the selected language and the review
// lifecycle. Completions are applied only for the latest submitted ticket.
// It is safe for concurrent use.
type Session struct {
	registry    *Registry
	reviewer    Reviewer
	timeout     time.Duration
	unreachable string
	logger      zerolog.Logger

	mu       sync.Mutex
	language Language
	code     string
	state    ReviewState
	seq      uint64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTimeout bounds each outbound review call. Zero disables the timeout.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithUnreachableMessage sets the message shown when the reviewer fails.
func WithUnreachableMessage(msg string) SessionOption {
	return func(s *Session) {
		if msg != "" {
			s.unreachable = msg
		}
	}
}

// WithLogger sets the logger for session events.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithLanguage selects the initial language, loading its snippet.
// Unknown ids fall back to the registry default.
func WithLanguage(id string) SessionOption {
	return func(s *Session) {
		s.language = s.registry.Resolve(id)
		s.code = s.language.Snippet
	}
}

// WithCode sets the initial buffer contents. Apply after WithLanguage to
// keep the text instead of the starter snippet.
func WithCode(code string) SessionOption {
	return func(s *Session) {
		s.code = code
	}
}

// NewSession creates an idle session using the registry default language
// and its starter snippet.
func NewSession(registry *Registry, reviewer Reviewer, opts ...SessionOption) *Session {
	s := &Session{
		registry:    registry,
		reviewer:    reviewer,
		unreachable: DefaultUnreachableMessage,
		logger:      zerolog.Nop(),
		language:    registry.Default(),
	}
	s.code = s.language.Snippet
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the language registry backing the session.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Code returns the current buffer contents.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Language returns the selected language.
func (s *Session) Language() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// State returns the current review state.
func (s *Session) State() ReviewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetCode overwrites the buffer. The review state is unchanged.
func (s *Session) SetCode(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = text
}

// SetLanguage selects a language, falling back to the default for unknown
// ids. When the language has a starter snippet it replaces the buffer,
// discarding the current text.
func (s *Session) SetLanguage(id string) Language {
	lang, err := s.registry.Lookup(id)
	if err != nil {
		s.logger.Debug().Err(err).Str("fallback", s.registry.Default().ID).Msg("unknown language")
		lang = s.registry.Default()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	if lang.HasSnippet() {
		s.code = lang.Snippet
	}
	return lang
}

// Submit snapshots the buffer and language, supersedes any in-flight
// request and moves the session to Pending. The caller must Run the
// returned ticket exactly once.
func (s *Session) Submit() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.state = ReviewState{Status: StatusPending}
	t := Ticket{
		Seq: s.seq,
		Request: ReviewRequest{
			Code:     s.code,
			Language: s.language.ID,
		},
	}
	s.logger.Debug().Uint64("seq", t.Seq).Str("language", t.Request.Language).Msg("review submitted")
	return t
}

// Run performs the outbound review call for a ticket. It does not change
// session state; pass the result to Resolve.
func (s *Session) Run(ctx context.Context, t Ticket) Completion {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.reviewer.Review(ctx, t.Request)
	if err == nil && strings.TrimSpace(result) == "" {
		err = ErrEmptyReview
	}
	return Completion{Seq: t.Seq, Result: result, Err: err}
}

// Resolve applies a completion if it belongs to the latest submitted
// ticket. Stale completions are dropped and Resolve returns false.
func (s *Session) Resolve(c Completion) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Seq != s.seq || s.state.Status != StatusPending {
		s.logger.Debug().Uint64("seq", c.Seq).Uint64("latest", s.seq).Msg("stale review discarded")
		return false
	}

	if c.Err != nil {
		s.logger.Warn().Err(c.Err).Uint64("seq", c.Seq).Msg("review failed")
		s.state = ReviewState{Status: StatusFailed, Message: s.failureMessage(c.Err)}
		return true
	}

	s.logger.Debug().Uint64("seq", c.Seq).Int("bytes", len(c.Result)).Msg("review succeeded")
	s.state = ReviewState{Status: StatusSucceeded, Result: c.Result}
	return true
}

// Review submits the buffer and blocks until the review resolves.
func (s *Session) Review(ctx context.Context) ReviewState {
	t := s.Submit()
	s.Resolve(s.Run(ctx, t))
	return s.State()
}

// ClearResult discards a stored result or error. It is rejected while a
// review is pending.
func (s *Session) ClearResult() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == StatusPending {
		return ErrReviewPending
	}
	s.state = ReviewState{}
	return nil
}

func (s *Session) failureMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return TimeoutMessage
	case errors.Is(err, ErrEmptyReview):
		return EmptyReviewMessage
	default:
		return s.unreachable
	}
}
