package catalog

import (
	"sort"
	"strings"

	"github.com/poiesic/benefind/core"
)

// Facets derives the category, group, and area facet tables for a program
// set. The input is typically either a whole snapshot or the currently
// filtered subset, so UI facet counts always agree with visible results.
func Facets(programs []*core.Program) (categories, groups, areas []core.Facet) {
	categories = countFacets(programs, "category", func(p *core.Program) []string { return p.Categories })
	groups = countFacets(programs, "group", func(p *core.Program) []string { return p.Groups })
	areas = countFacets(programs, "area", func(p *core.Program) []string { return p.Areas })
	return categories, groups, areas
}

func countFacets(programs []*core.Program, namespace string, tags func(*core.Program) []string) []core.Facet {
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, p := range programs {
		seen := make(map[string]bool)
		for _, tag := range tags(p) {
			id := FacetID(tag)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
			if _, ok := display[id]; !ok {
				display[id] = tag
			}
		}
	}

	facets := make([]core.Facet, 0, len(counts))
	for id, count := range counts {
		facets = append(facets, core.Facet{
			ID:           id,
			LabelKey:     namespace + "." + id,
			ProgramCount: count,
		})
	}
	sort.Slice(facets, func(i, j int) bool { return facets[i].ID < facets[j].ID })
	return facets
}

// FacetID canonicalizes a taxonomy tag into a facet identifier:
// lowercased, spaces collapsed to single hyphens ("San Mateo" -> "san-mateo").
func FacetID(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.Join(strings.Fields(tag), "-")
}
