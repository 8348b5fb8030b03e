package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/benefind/ai"
	"github.com/poiesic/benefind/core"
)

// MockRanker is a test double for ai.Ranker.
// It allows custom behavior injection via a function field.
type MockRanker struct {
	// RankQueryFunc is called by RankQuery if set.
	// If nil, uses default deterministic behavior.
	RankQueryFunc func(ctx context.Context, req ai.RankRequest) (*ai.RankResult, error)

	callCount atomic.Int64
}

var _ ai.Ranker = (*MockRanker)(nil)

// NewMockRanker creates a mock ranker with default deterministic behavior:
// candidates echoed back in request order, UsedAI true.
// Note: returns the concrete type to allow call-count assertions.
func NewMockRanker() *MockRanker {
	return &MockRanker{}
}

// RankQuery returns the injected behavior, or the deterministic default.
func (m *MockRanker) RankQuery(ctx context.Context, req ai.RankRequest) (*ai.RankResult, error) {
	m.callCount.Add(1)

	if m.RankQueryFunc != nil {
		return m.RankQueryFunc(ctx, req)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := make([]core.Slug, len(req.Slugs))
	copy(ranked, req.Slugs)
	return &ai.RankResult{RankedSlugs: ranked, UsedAI: true}, nil
}

// CallCount returns how many times RankQuery has been invoked.
func (m *MockRanker) CallCount() int {
	return int(m.callCount.Load())
}
