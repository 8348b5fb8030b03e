package catalog

import (
	"sort"

	"github.com/poiesic/benefind/core"
)

// Snapshot is one immutable version of the program catalog. All derived data
// (slug index, facet tables) is computed once at construction from the same
// record set, so a reader holding a snapshot always sees consistent counts.
type Snapshot struct {
	generation uint64
	metadata   core.Metadata
	programs   []*core.Program
	bySlug     map[core.Slug]*core.Program
	categories []core.Facet
	groups     []core.Facet
	areas      []core.Facet
}

// NewSnapshot builds a snapshot from validated program records. Records are
// normalized to slug-ascending order, which is the stable catalog order used
// for unranked listings.
func NewSnapshot(programs []*core.Program, metadata core.Metadata) *Snapshot {
	ordered := make([]*core.Program, len(programs))
	copy(ordered, programs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Slug < ordered[j].Slug
	})

	bySlug := make(map[core.Slug]*core.Program, len(ordered))
	for _, p := range ordered {
		bySlug[p.Slug] = p
	}

	categories, groups, areas := Facets(ordered)

	return &Snapshot{
		metadata:   metadata,
		programs:   ordered,
		bySlug:     bySlug,
		categories: categories,
		groups:     groups,
		areas:      areas,
	}
}

// Generation returns the store-assigned version counter. Zero means the
// snapshot has not been published through a Store yet.
func (s *Snapshot) Generation() uint64 {
	return s.generation
}

// Metadata returns the upstream metadata this snapshot was built from.
func (s *Snapshot) Metadata() core.Metadata {
	return s.metadata
}

// Len returns the number of programs in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.programs)
}

// Programs returns the records in stable catalog order (slug ascending).
// The returned slice is a copy; the records themselves are shared and
// read-only.
func (s *Snapshot) Programs() []*core.Program {
	out := make([]*core.Program, len(s.programs))
	copy(out, s.programs)
	return out
}

// Program looks up a record by its slug.
func (s *Snapshot) Program(slug core.Slug) (*core.Program, bool) {
	p, ok := s.bySlug[slug]
	return p, ok
}

// Categories returns the category facets with whole-snapshot counts.
func (s *Snapshot) Categories() []core.Facet {
	return s.categories
}

// Groups returns the eligibility group facets with whole-snapshot counts.
func (s *Snapshot) Groups() []core.Facet {
	return s.groups
}

// Areas returns the area facets with whole-snapshot counts.
func (s *Snapshot) Areas() []core.Facet {
	return s.areas
}
