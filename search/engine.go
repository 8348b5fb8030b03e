package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/poiesic/benefind/ai"
	"github.com/poiesic/benefind/core"
)

const (
	// defaultSmartTimeout bounds one ranker call before keyword fallback.
	defaultSmartTimeout = 4 * time.Second

	// smartBoostMax caps the advisory boost from the ranker. Kept below the
	// name weight so AI rank alone can never displace a name hit below
	// taxonomy-only matches.
	smartBoostMax = 0.5

	// maxSuggestions caps the fallback slugs carried by no-results guidance.
	maxSuggestions = 3

	// noResultsKey is the translation key callers render for the empty state.
	noResultsKey = "search.noResults"
)

// Engine ranks candidate programs for a query, in keyword or smart mode.
// Keyword ranking is always computed; smart mode only boosts it. All methods
// are safe for concurrent use.
type Engine struct {
	ranker  ai.Ranker // nil means keyword-only
	timeout time.Duration
	logger  *slog.Logger

	smartEnabled atomic.Bool
	online       atomic.Bool
	locale       atomic.Value // string, passed to the ranker
	seq          atomic.Uint64
	state        atomic.Int32
	lastReason   atomic.Value // DegradeReason
}

// Option configures an Engine.
type Option func(*Engine) error

// WithRanker attaches the smart-search collaborator. Without one the engine
// is permanently in keyword mode.
func WithRanker(ranker ai.Ranker) Option {
	return func(e *Engine) error {
		e.ranker = ranker
		return nil
	}
}

// WithTimeout bounds one smart-search call before keyword fallback.
// Default is 4s.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) error {
		if timeout > 0 {
			e.timeout = timeout
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a search engine.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		timeout: defaultSmartTimeout,
		logger:  slog.Default().With("component", "search-engine"),
	}
	e.online.Store(true)
	e.locale.Store("en")
	e.lastReason.Store(DegradeNone)

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Result is the outcome of one search pass: the ranked programs plus the
// mode and degrade information the UI needs for its indicators.
type Result struct {
	Programs []core.Scored

	// Mode reports which strategy produced the ranking.
	Mode Mode

	// UsedAI reports whether the collaborator actually applied an AI model.
	UsedAI bool

	// Degraded is set when a configured smart collaborator did not produce
	// the ranking and keyword results were served instead; DegradeReason
	// says why (toggle off, offline, timeout, error).
	Degraded      bool
	DegradeReason DegradeReason

	// Guidance is non-nil when Programs is empty: the no-results message key
	// and fallback suggestions to render. An empty result is an outcome, not
	// an error.
	Guidance *Guidance
}

// Guidance is the defined empty-state payload.
type Guidance struct {
	MessageKey  string
	Suggestions []core.Slug
}

// SetSmartEnabled flips the smart-search toggle.
func (e *Engine) SetSmartEnabled(enabled bool) {
	e.smartEnabled.Store(enabled)
}

// SmartEnabled reports the smart-search toggle.
func (e *Engine) SmartEnabled() bool {
	return e.smartEnabled.Load()
}

// SetOnline records the client's connectivity hint. Offline clients never
// attempt smart search.
func (e *Engine) SetOnline(online bool) {
	e.online.Store(online)
}

// Online reports the connectivity hint.
func (e *Engine) Online() bool {
	return e.online.Load()
}

// SetLocale records the active locale so the ranker can interpret queries
// written in that language.
func (e *Engine) SetLocale(locale string) {
	if locale != "" {
		e.locale.Store(locale)
	}
}

// Locale reports the active locale.
func (e *Engine) Locale() string {
	return e.locale.Load().(string)
}

// State returns the engine's current mode state, for the UI indicator.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// LastDegradeReason returns why the most recent smart attempt fell back, or
// DegradeNone after a successful smart search.
func (e *Engine) LastDegradeReason() DegradeReason {
	return e.lastReason.Load().(DegradeReason)
}

// Search ranks the candidate set for the query. Candidates are the already
// filtered programs, in stable catalog order.
//
// An empty query returns the candidates unranked, preserving catalog order.
// Smart mode failures degrade to the keyword ranking synchronously; the only
// error ever returned is ErrSuperseded (a newer query started mid-flight) or
// the caller's own context cancellation.
func (e *Engine) Search(ctx context.Context, query string, candidates []*core.Program) (*Result, error) {
	seq := e.seq.Add(1)
	query = strings.TrimSpace(query)

	if query == "" {
		e.setState(StateIdle)
		return e.finish(unranked(candidates), ModeKeyword, false, DegradeNone, candidates), nil
	}

	keyword := rankKeyword(query, candidates)

	if e.ranker == nil {
		e.setState(StateKeywordSearching)
		defer e.setState(StateIdle)
		return e.finish(keyword, ModeKeyword, false, DegradeNone, candidates), nil
	}
	if !e.smartEnabled.Load() {
		e.setState(StateKeywordSearching)
		defer e.setState(StateIdle)
		// Toggle off with a collaborator configured: keyword results plus a
		// passive "smart search off" indicator, distinct from plain keyword
		// mode.
		return e.finish(keyword, ModeKeyword, true, DegradeDisabled, candidates), nil
	}
	if !e.online.Load() {
		e.setState(StateKeywordSearching)
		defer e.setState(StateIdle)
		// Offline with the toggle on: keyword results plus a passive
		// "smart search inactive" indicator.
		return e.finish(keyword, ModeKeyword, true, DegradeOffline, candidates), nil
	}

	e.setState(StateSmartSearching)
	ranked, err := e.rankSmart(ctx, query, candidates)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			e.setState(StateIdle)
			return nil, ctx.Err()
		}

		reason := DegradeError
		if errors.Is(err, context.DeadlineExceeded) {
			reason = DegradeTimeout
		}
		e.logger.Warn("smart search unavailable, serving keyword results",
			"reason", reason, "err", err)

		// Degraded, then synchronous keyword re-entry with the same query.
		e.setState(StateDegraded)
		e.setState(StateKeywordSearching)
		defer e.setState(StateIdle)
		return e.finish(keyword, ModeKeyword, true, reason, candidates), nil
	}

	if e.seq.Load() != seq {
		// A newer query started while the ranker was in flight; its result
		// must not be applied out of order.
		e.setState(StateIdle)
		return nil, ErrSuperseded
	}

	merged := mergeSmart(keyword, ranked.RankedSlugs, candidates)
	e.lastReason.Store(DegradeNone)
	e.setState(StateIdle)

	result := e.finish(merged, ModeSmart, false, DegradeNone, candidates)
	result.UsedAI = ranked.UsedAI
	return result, nil
}

func (e *Engine) rankSmart(ctx context.Context, query string, candidates []*core.Program) (*ai.RankResult, error) {
	slugs := make([]core.Slug, 0, len(candidates))
	for _, p := range candidates {
		slugs = append(slugs, p.Slug)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	return e.ranker.RankQuery(ctx, ai.RankRequest{Query: query, Locale: e.Locale(), Slugs: slugs})
}

func (e *Engine) finish(programs []core.Scored, mode Mode, degraded bool, reason DegradeReason, candidates []*core.Program) *Result {
	if degraded {
		e.lastReason.Store(reason)
	}
	result := &Result{
		Programs:      programs,
		Mode:          mode,
		Degraded:      degraded,
		DegradeReason: reason,
	}
	if len(programs) == 0 {
		result.Guidance = &Guidance{
			MessageKey:  noResultsKey,
			Suggestions: suggestFallback(candidates),
		}
	}
	return result
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

// mergeSmart folds the advisory ranking into the keyword scores as a
// bounded, rank-decaying boost. Slugs the ranker surfaced that had no
// keyword score enter with just the boost, so natural-language queries can
// still find programs keyword matching missed, while keyword hits keep
// their ordering authority.
func mergeSmart(keyword []core.Scored, rankedSlugs []core.Slug, candidates []*core.Program) []core.Scored {
	if len(rankedSlugs) == 0 {
		return keyword
	}

	bySlug := make(map[core.Slug]*core.Program, len(candidates))
	for _, p := range candidates {
		bySlug[p.Slug] = p
	}

	boosts := make(map[core.Slug]float32, len(rankedSlugs))
	n := float32(len(rankedSlugs))
	for i, slug := range rankedSlugs {
		boosts[slug] = smartBoostMax * (n - float32(i)) / n
	}

	merged := make([]core.Scored, 0, len(keyword)+len(rankedSlugs))
	seen := make(map[core.Slug]bool, len(keyword))
	for _, s := range keyword {
		seen[s.Program.Slug] = true
		s.Score += boosts[s.Program.Slug]
		merged = append(merged, s)
	}
	for _, slug := range rankedSlugs {
		if seen[slug] {
			continue
		}
		if p, ok := bySlug[slug]; ok {
			merged = append(merged, core.Scored{Program: p, Score: boosts[slug]})
		}
	}

	sortScored(merged)
	return merged
}

// unranked wraps candidates in result form preserving catalog order.
func unranked(candidates []*core.Program) []core.Scored {
	out := make([]core.Scored, 0, len(candidates))
	for _, p := range candidates {
		if p != nil {
			out = append(out, core.Scored{Program: p})
		}
	}
	return out
}

// suggestFallback picks the no-results suggestions: statewide or nationwide
// programs first, most recently verified first, capped at maxSuggestions.
func suggestFallback(candidates []*core.Program) []core.Slug {
	pool := make([]*core.Program, 0, len(candidates))
	for _, p := range candidates {
		if p == nil {
			continue
		}
		if p.HasArea("Statewide") || p.HasArea("Nationwide") {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		for _, p := range candidates {
			if p != nil {
				pool = append(pool, p)
			}
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if !pool[i].VerifiedAt.Equal(pool[j].VerifiedAt) {
			return pool[i].VerifiedAt.After(pool[j].VerifiedAt)
		}
		return pool[i].Slug < pool[j].Slug
	})

	if len(pool) > maxSuggestions {
		pool = pool[:maxSuggestions]
	}
	slugs := make([]core.Slug, 0, len(pool))
	for _, p := range pool {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}
