package search

import (
	"testing"
	"time"

	"github.com/poiesic/benefind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func benefitsCatalog() []*core.Program {
	verified := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return []*core.Program{
		{
			Slug: "caleitc", Name: "CalEITC",
			Description: "State tax credit for working families with low income.",
			Categories:  []string{"money"}, Groups: []string{"families"},
			Areas: []string{"Statewide"}, VerifiedAt: verified.Add(-48 * time.Hour),
		},
		{
			Slug: "calfresh-online", Name: "CalFresh Online",
			Description: "Apply for monthly food benefits online.",
			Categories:  []string{"food"}, Groups: []string{"families", "seniors"},
			Areas: []string{"Statewide"}, VerifiedAt: verified,
		},
		{
			Slug: "calfresh-rmp", Name: "CalFresh Restaurant Meals",
			Description: "Use CalFresh benefits at participating restaurants.",
			Categories:  []string{"food"}, Groups: []string{"seniors", "unhoused"},
			Areas: []string{"Alameda"}, VerifiedAt: verified.Add(-24 * time.Hour),
		},
		{
			Slug: "section8", Name: "Housing Choice Vouchers",
			Description: "Rental assistance for qualifying households.",
			Categories:  []string{"housing"}, Groups: []string{"families"},
			Areas: []string{"Alameda"}, VerifiedAt: verified.Add(-72 * time.Hour),
		},
	}
}

func TestRankKeywordCalFreshScenario(t *testing.T) {
	results := rankKeyword("calfresh", benefitsCatalog())

	require.GreaterOrEqual(t, len(results), 2)
	assert.Equal(t, core.Slug("calfresh-online"), results[0].Program.Slug)
	assert.Equal(t, core.Slug("calfresh-rmp"), results[1].Program.Slug)
	for _, r := range results {
		assert.NotEqual(t, core.Slug("caleitc"), r.Program.Slug,
			"unrelated program must not match")
	}
}

func TestRankKeywordFieldWeights(t *testing.T) {
	programs := []*core.Program{
		{Slug: "a-tax", Name: "Tax Help", Description: "x", Areas: []string{"Statewide"}},
		{Slug: "b-desc", Name: "Other", Description: "Free tax preparation.", Areas: []string{"Statewide"}},
		{Slug: "c-taxonomy", Name: "Other", Description: "x", Categories: []string{"tax"}, Areas: []string{"Statewide"}},
	}

	results := rankKeyword("tax", programs)
	require.Len(t, results, 3)
	assert.Equal(t, core.Slug("a-tax"), results[0].Program.Slug)
	assert.Equal(t, core.Slug("b-desc"), results[1].Program.Slug)
	assert.Equal(t, core.Slug("c-taxonomy"), results[2].Program.Slug)
}

func TestRankKeywordTieBreakBySlug(t *testing.T) {
	programs := []*core.Program{
		{Slug: "zeta-food", Name: "Food Pantry", Description: "d"},
		{Slug: "alpha-food", Name: "Food Bank", Description: "d"},
	}

	results := rankKeyword("food", programs)
	require.Len(t, results, 2)
	assert.Equal(t, core.Slug("alpha-food"), results[0].Program.Slug)
	assert.Equal(t, core.Slug("zeta-food"), results[1].Program.Slug)
}

func TestRankKeywordDeterministic(t *testing.T) {
	catalog := benefitsCatalog()
	first := rankKeyword("food seniors", catalog)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, rankKeyword("food seniors", catalog))
	}
}

func TestRankKeywordNoMatches(t *testing.T) {
	results := rankKeyword("zzzzzz", benefitsCatalog())
	assert.Empty(t, results)
}

func TestRankKeywordStopWordOnlyQuery(t *testing.T) {
	results := rankKeyword("the and of", benefitsCatalog())
	assert.Empty(t, results)
}

func TestTokenizeAndFilter(t *testing.T) {
	tokens := tokenizeAndFilter("How do I get Food, for my family?")
	assert.Equal(t, []string{"food", "family"}, tokens)
}

func TestContainsAllQueryTokens(t *testing.T) {
	assert.True(t, containsAllQueryTokens("CalFresh Online food benefits", "food calfresh"))
	assert.False(t, containsAllQueryTokens("CalFresh Online", "food housing"))
	assert.False(t, containsAllQueryTokens("anything", "the of"))
}
