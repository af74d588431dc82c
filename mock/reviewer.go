package mock

import (
	"context"

	"github.com/fwojciec/bugspotter"
)

// Compile-time interface verification.
var _ bugspotter.Reviewer = (*Reviewer)(nil)

// Reviewer is a mock implementation of bugspotter.Reviewer.
type Reviewer struct {
	ReviewFn func(ctx context.Context, req bugspotter.ReviewRequest) (string, error)
}

func (r *Reviewer) Review(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
	return r.ReviewFn(ctx, req)
}
