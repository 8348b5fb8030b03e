package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/benefind/ai"
	"github.com/poiesic/benefind/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Ranker implements ai.Ranker using OpenAI-compatible chat APIs.
type Ranker struct {
	client        llms.Model
	maxCandidates int
	logger        *slog.Logger
}

// ranking is the wrapper structure for the LLM's JSON response.
type ranking struct {
	RankedSlugs []string `json:"ranked_slugs"`
}

// NewRanker creates a new query ranker using the provided configuration.
//
// Returns ai.Ranker interface to enforce abstraction.
func NewRanker(config *ai.Config) (ai.Ranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication.
	client, err := openai.New(
		openai.WithBaseURL(config.RankerHost),
		openai.WithToken("none"),
		openai.WithModel(config.RankerModel),
	)
	if err != nil {
		return nil, err
	}

	return &Ranker{
		client:        client,
		maxCandidates: config.MaxCandidates,
		logger:        slog.Default().With("component", "openai-ranker"),
	}, nil
}

// RankQuery asks the model to order the candidate slugs by relevance to the
// query. The advisory contract holds: slugs the model invents are dropped,
// and a subset answer is acceptable.
func (r *Ranker) RankQuery(ctx context.Context, req ai.RankRequest) (*ai.RankResult, error) {
	if strings.TrimSpace(req.Query) == "" || len(req.Slugs) == 0 {
		return &ai.RankResult{RankedSlugs: nil, UsedAI: false}, nil
	}

	candidates := req.Slugs
	if len(candidates) > r.maxCandidates {
		candidates = candidates[:r.maxCandidates]
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRankingPrompt(candidates)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRankingQuery(req.Query, req.Locale)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result ranking
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			r.logger.Error("failed to generate ranking", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			r.logger.Debug("no choices returned from model")
			return &ai.RankResult{RankedSlugs: nil, UsedAI: true}, nil
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			r.logger.Warn("error parsing ranker response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return &ai.RankResult{
			RankedSlugs: filterKnownSlugs(result.RankedSlugs, candidates, r.logger),
			UsedAI:      true,
		}, nil
	}

	return nil, fmt.Errorf("ranker returned malformed JSON after 3 attempts: %w", lastErr)
}

// filterKnownSlugs keeps only slugs that were actually candidates, in the
// model's order, each at most once.
func filterKnownSlugs(ranked []string, candidates []core.Slug, logger *slog.Logger) []core.Slug {
	known := make(map[core.Slug]bool, len(candidates))
	for _, slug := range candidates {
		known[slug] = true
	}

	out := make([]core.Slug, 0, len(ranked))
	seen := make(map[core.Slug]bool, len(ranked))
	for _, raw := range ranked {
		slug := core.Slug(strings.TrimSpace(raw))
		if !known[slug] {
			logger.Debug("dropping slug not in candidate set", "slug", raw)
			continue
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}
