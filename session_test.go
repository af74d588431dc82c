package bugspotter_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/bugspotter"
	"github.com/fwojciec/bugspotter/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticReviewer returns a reviewer that always answers with result.
func staticReviewer(result string) *mock.Reviewer {
	return &mock.Reviewer{
		ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
			return result, nil
		},
	}
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	t.Run("starts idle with default language snippet", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))

		assert.True(t, s.State().Idle())
		assert.Equal(t, "javascript", s.Language().ID)
		assert.Equal(t, s.Language().Snippet, s.Code())
	})

	t.Run("initial language option loads its snippet", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"),
			bugspotter.WithLanguage("go"))

		assert.Equal(t, "go", s.Language().ID)
		assert.Contains(t, s.Code(), "package main")
	})

	t.Run("initial code option overrides snippet", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"),
			bugspotter.WithLanguage("python"),
			bugspotter.WithCode("x = 1"))

		assert.Equal(t, "python", s.Language().ID)
		assert.Equal(t, "x = 1", s.Code())
	})
}

func TestSession_SetCode(t *testing.T) {
	t.Parallel()

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))
		for _, text := range []string{"a", "ab", "", "abc", "final text"} {
			s.SetCode(text)
		}

		assert.Equal(t, "final text", s.Code())
	})

	t.Run("does not change review state", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("Looks fine."))
		s.Review(context.Background())
		s.SetCode("changed")

		assert.True(t, s.State().Succeeded())
		assert.Equal(t, "Looks fine.", s.State().Result)
	})
}

func TestSession_SetLanguage(t *testing.T) {
	t.Parallel()

	t.Run("loads starter snippet", func(t *testing.T) {
		t.Parallel()

		registry, err := bugspotter.NewRegistry(
			bugspotter.Language{ID: "javascript", Label: "JavaScript"},
			bugspotter.Language{ID: "python", Label: "Python", Snippet: "S"},
		)
		require.NoError(t, err)
		s := bugspotter.NewSession(registry, staticReviewer("ok"))
		s.SetCode("user edits")

		lang := s.SetLanguage("python")

		assert.Equal(t, "python", lang.ID)
		assert.Equal(t, "S", s.Code())
	})

	t.Run("keeps buffer when language has no snippet", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))
		s.SetCode("user edits")

		s.SetLanguage("haskell")

		assert.Equal(t, "haskell", s.Language().ID)
		assert.Equal(t, "user edits", s.Code())
	})

	t.Run("unknown id falls back to default snippet", func(t *testing.T) {
		t.Parallel()

		registry := bugspotter.DefaultRegistry()
		s := bugspotter.NewSession(registry, staticReviewer("ok"), bugspotter.WithLanguage("rust"))

		lang := s.SetLanguage("not-a-real-language")

		assert.Equal(t, registry.Default().ID, lang.ID)
		assert.Equal(t, registry.Default().Snippet, s.Code())
	})

	t.Run("allowed while pending", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))
		s.Submit()

		s.SetLanguage("go")

		assert.Equal(t, "go", s.Language().ID)
		assert.True(t, s.State().Pending())
	})
}

func TestSession_Review(t *testing.T) {
	t.Parallel()

	t.Run("succeeds with reviewer payload", func(t *testing.T) {
		t.Parallel()

		var got bugspotter.ReviewRequest
		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				got = req
				return "Looks fine.", nil
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer,
			bugspotter.WithLanguage("python"),
			bugspotter.WithCode("a+b"))

		state := s.Review(context.Background())

		assert.Equal(t, bugspotter.ReviewRequest{Code: "a+b", Language: "python"}, got)
		assert.Equal(t, bugspotter.ReviewState{Status: bugspotter.StatusSucceeded, Result: "Looks fine."}, state)
	})

	t.Run("fails with diagnostic on network error", func(t *testing.T) {
		t.Parallel()

		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				return "", errors.New("dial tcp 127.0.0.1:3000: connect: connection refused")
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer)

		state := s.Review(context.Background())

		assert.True(t, state.Failed())
		assert.NotEmpty(t, state.Message)
		assert.NotContains(t, state.Message, "connection refused", "internal detail must not leak")
		assert.Empty(t, state.Result)
	})

	t.Run("uses custom unreachable message", func(t *testing.T) {
		t.Parallel()

		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				return "", errors.New("boom")
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer,
			bugspotter.WithUnreachableMessage("Is the backend running at http://localhost:3000 ?"))

		state := s.Review(context.Background())

		assert.Equal(t, "Is the backend running at http://localhost:3000 ?", state.Message)
	})

	t.Run("empty payload is a failure", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("   \n"))

		state := s.Review(context.Background())

		assert.True(t, state.Failed())
		assert.Equal(t, bugspotter.EmptyReviewMessage, state.Message)
	})

	t.Run("timeout is a failure", func(t *testing.T) {
		t.Parallel()

		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer,
			bugspotter.WithTimeout(10*time.Millisecond))

		state := s.Review(context.Background())

		assert.True(t, state.Failed())
		assert.Equal(t, bugspotter.TimeoutMessage, state.Message)
	})

	t.Run("no automatic retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				calls.Add(1)
				return "", errors.New("unavailable")
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer)

		s.Review(context.Background())

		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestSession_Submit(t *testing.T) {
	t.Parallel()

	t.Run("moves to pending and increments sequence", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))

		first := s.Submit()
		second := s.Submit()

		assert.True(t, s.State().Pending())
		assert.Greater(t, second.Seq, first.Seq)
	})

	t.Run("snapshot is not affected by later edits", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"),
			bugspotter.WithCode("before"))

		ticket := s.Submit()
		s.SetCode("after")
		s.SetLanguage("go")

		assert.Equal(t, "before", ticket.Request.Code)
		assert.Equal(t, "javascript", ticket.Request.Language)
	})

	t.Run("each run issues exactly one call", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				calls.Add(1)
				return "ok", nil
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer)

		a := s.Submit()
		b := s.Submit()
		s.Run(context.Background(), a)
		s.Run(context.Background(), b)

		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestSession_Supersession(t *testing.T) {
	t.Parallel()

	t.Run("older completion arriving last is discarded", func(t *testing.T) {
		t.Parallel()

		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				return "review of " + req.Code, nil
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer)

		s.SetCode("A")
		ticketA := s.Submit()
		s.SetCode("B")
		ticketB := s.Submit()

		completionA := s.Run(context.Background(), ticketA)
		completionB := s.Run(context.Background(), ticketB)

		assert.True(t, s.Resolve(completionB))
		assert.False(t, s.Resolve(completionA), "A was superseded by B")
		assert.Equal(t, "review of B", s.State().Result)
	})

	t.Run("stale failure does not overwrite newer success", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))

		ticketA := s.Submit()
		ticketB := s.Submit()

		s.Resolve(bugspotter.Completion{Seq: ticketB.Seq, Result: "B result"})
		s.Resolve(bugspotter.Completion{Seq: ticketA.Seq, Err: errors.New("A failed")})

		assert.True(t, s.State().Succeeded())
		assert.Equal(t, "B result", s.State().Result)
	})

	t.Run("stale completion while newer is pending keeps pending", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))

		ticketA := s.Submit()
		s.Submit()

		applied := s.Resolve(bugspotter.Completion{Seq: ticketA.Seq, Result: "A result"})

		assert.False(t, applied)
		assert.True(t, s.State().Pending())
	})

	t.Run("concurrent calls resolve to last issued", func(t *testing.T) {
		t.Parallel()

		gates := map[string]chan struct{}{
			"A": make(chan struct{}),
			"B": make(chan struct{}),
		}
		reviewer := &mock.Reviewer{
			ReviewFn: func(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
				<-gates[req.Code]
				return "review of " + req.Code, nil
			},
		}
		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), reviewer)

		s.SetCode("A")
		ticketA := s.Submit()
		s.SetCode("B")
		ticketB := s.Submit()

		doneA := make(chan struct{})
		doneB := make(chan struct{})
		go func() {
			s.Resolve(s.Run(context.Background(), ticketA))
			close(doneA)
		}()
		go func() {
			s.Resolve(s.Run(context.Background(), ticketB))
			close(doneB)
		}()

		close(gates["B"])
		<-doneB
		close(gates["A"])
		<-doneA

		assert.Equal(t, "review of B", s.State().Result)
	})

	t.Run("completion after ClearResult is discarded", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))

		ticket := s.Submit()
		s.Resolve(bugspotter.Completion{Seq: ticket.Seq, Result: "first"})
		require.NoError(t, s.ClearResult())

		assert.False(t, s.Resolve(bugspotter.Completion{Seq: ticket.Seq, Result: "again"}))
		assert.True(t, s.State().Idle())
	})
}

func TestSession_ClearResult(t *testing.T) {
	t.Parallel()

	t.Run("resets succeeded to idle", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))
		s.Review(context.Background())

		err := s.ClearResult()

		require.NoError(t, err)
		assert.Equal(t, bugspotter.ReviewState{}, s.State())
	})

	t.Run("resets failed to idle", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer(""))
		s.Review(context.Background())
		require.True(t, s.State().Failed())

		require.NoError(t, s.ClearResult())
		assert.True(t, s.State().Idle())
	})

	t.Run("rejected while pending", func(t *testing.T) {
		t.Parallel()

		s := bugspotter.NewSession(bugspotter.DefaultRegistry(), staticReviewer("ok"))
		s.Submit()

		err := s.ClearResult()

		require.ErrorIs(t, err, bugspotter.ErrReviewPending)
		assert.True(t, s.State().Pending())
	})
}

func TestReviewStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", bugspotter.StatusIdle.String())
	assert.Equal(t, "pending", bugspotter.StatusPending.String())
	assert.Equal(t, "succeeded", bugspotter.StatusSucceeded.String())
	assert.Equal(t, "failed", bugspotter.StatusFailed.String())
	assert.Equal(t, "unknown", bugspotter.ReviewStatus(99).String())
}
