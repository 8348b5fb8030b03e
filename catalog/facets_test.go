package catalog

import (
	"testing"

	"github.com/poiesic/benefind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacetID(t *testing.T) {
	assert.Equal(t, "food", FacetID("Food"))
	assert.Equal(t, "san-mateo", FacetID("  San  Mateo "))
	assert.Equal(t, "", FacetID("   "))
}

func TestFacetsOverFilteredSubset(t *testing.T) {
	// Counts are derived from whatever set the caller passes in, so facet
	// counts can track the currently visible (filtered) results.
	all := []*core.Program{
		{Slug: "a", Categories: []string{"food"}, Groups: []string{"seniors"}, Areas: []string{"Statewide"}},
		{Slug: "b", Categories: []string{"food"}, Groups: []string{"families"}, Areas: []string{"Alameda"}},
		{Slug: "c", Categories: []string{"housing"}, Groups: []string{"seniors"}, Areas: []string{"Alameda"}},
	}

	categories, groups, _ := Facets(all)
	require.Len(t, categories, 2)
	assert.Equal(t, 2, facetCount(categories, "food"))
	assert.Equal(t, 2, facetCount(groups, "seniors"))

	filtered := all[:2] // pretend a "food" category filter is active
	categories, groups, areas := Facets(filtered)
	require.Len(t, categories, 1)
	assert.Equal(t, 2, facetCount(categories, "food"))
	assert.Equal(t, 1, facetCount(groups, "seniors"))
	assert.Equal(t, 1, facetCount(areas, "statewide"))
}

func TestFacetsDuplicateTagsCountOnce(t *testing.T) {
	programs := []*core.Program{
		{Slug: "a", Categories: []string{"food", "Food"}},
	}
	categories, _, _ := Facets(programs)
	require.Len(t, categories, 1)
	assert.Equal(t, 1, categories[0].ProgramCount)
}

func facetCount(facets []core.Facet, id string) int {
	for _, f := range facets {
		if f.ID == id {
			return f.ProgramCount
		}
	}
	return 0
}
