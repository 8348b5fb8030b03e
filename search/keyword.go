package search

import (
	"sort"
	"strings"

	"github.com/poiesic/benefind/core"
)

// Field weights: a name hit always outranks a description hit, which
// outranks a taxonomy-label hit.
const (
	nameWeight        = 3.0
	descriptionWeight = 1.5
	taxonomyWeight    = 1.0

	// verbatimBoost rewards documents containing every query token.
	verbatimBoost = 0.3
)

// keywordScore computes the deterministic relevance of one program for a
// tokenized query. Zero means no match.
func keywordScore(tokens []string, query string, p *core.Program) float32 {
	if len(tokens) == 0 {
		return 0
	}

	taxonomy := strings.Join(p.Categories, " ") + " " + strings.Join(p.Groups, " ") + " " + strings.Join(p.Areas, " ")

	var score float32
	for _, token := range tokens {
		switch {
		case containsToken(p.Name, token):
			score += nameWeight
		case containsToken(p.Description, token):
			score += descriptionWeight
		case containsToken(taxonomy, token):
			score += taxonomyWeight
		}
	}

	if score > 0 && containsAllQueryTokens(p.Name+" "+p.Description, query) {
		score += verbatimBoost
	}

	return score
}

// rankKeyword runs keyword scoring over the candidate set and returns the
// matches ordered by score descending, ties broken by slug ascending so that
// identical (query, snapshot) pairs always produce identical orderings.
func rankKeyword(query string, candidates []*core.Program) []core.Scored {
	tokens := tokenizeAndFilter(query)

	results := make([]core.Scored, 0, len(candidates))
	for _, p := range candidates {
		if p == nil {
			continue
		}
		if score := keywordScore(tokens, query, p); score > 0 {
			results = append(results, core.Scored{Program: p, Score: score})
		}
	}

	sortScored(results)
	return results
}

func sortScored(results []core.Scored) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Program.Slug < results[j].Program.Slug
	})
}
