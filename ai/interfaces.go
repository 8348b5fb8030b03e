package ai

import (
	"context"

	"github.com/poiesic/benefind/core"
)

// Ranker orders candidate programs by relevance to a natural-language query.
// Implementations must be thread-safe for concurrent use.
type Ranker interface {
	// RankQuery returns an advisory relevance ordering over the candidate
	// slugs. Slugs absent from the result carry no advisory signal; slugs in
	// the result that were not candidates are ignored by callers.
	// Implementations must respect ctx cancellation and deadlines: the
	// caller enforces the smart-search timeout through the context.
	RankQuery(ctx context.Context, req RankRequest) (*RankResult, error)
}

// RankRequest is one ranking call: the user's query and locale plus the
// candidate slugs (already narrowed by the active filters).
type RankRequest struct {
	// Query is the natural-language query text.
	Query string

	// Locale is the user's active locale; the ranker may use it to interpret
	// queries written in that language.
	Locale string

	// Slugs are the candidate program slugs, in stable catalog order.
	Slugs []core.Slug
}

// RankResult is the collaborator's advisory answer.
type RankResult struct {
	// RankedSlugs lists candidate slugs from most to least relevant.
	// It may be a subset of the request's slugs.
	RankedSlugs []core.Slug

	// UsedAI reports whether an AI model actually produced the ranking, as
	// opposed to a passthrough or heuristic. Surfaced to the UI indicator.
	UsedAI bool
}
