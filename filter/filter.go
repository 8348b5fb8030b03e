// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package filter composes the directory's facet selections into a single
// pure predicate over program records.
//
// Semantics: category is single-select ("" or "all" matches everything);
// groups and areas are multi-select with OR within the field and AND across
// fields; AuthenticatedOnly narrows to programs flagged for authenticated
// access. An empty selection is the identity filter. Predicates never mutate
// the catalog and are cheap enough to rebuild on every keystroke; field
// application order does not affect the result.
package filter

import (
	"github.com/poiesic/benefind/core"
)

// CategoryAll is the single-select category value that matches every program.
const CategoryAll = "all"

// Selection is the active filter state: one category, any number of
// eligibility groups and areas, and the authenticated-only flag.
type Selection struct {
	Category          string
	Groups            map[string]struct{}
	Areas             map[string]struct{}
	AuthenticatedOnly bool
}

// NewSelection returns an empty (identity) selection with initialized sets.
func NewSelection() Selection {
	return Selection{
		Groups: make(map[string]struct{}),
		Areas:  make(map[string]struct{}),
	}
}

// WithCategory returns a copy of the selection with the category replaced.
func (s Selection) WithCategory(category string) Selection {
	s.Category = category
	return s
}

// WithGroups returns a copy of the selection with the given groups selected.
func (s Selection) WithGroups(groups ...string) Selection {
	set := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		set[g] = struct{}{}
	}
	s.Groups = set
	return s
}

// WithAreas returns a copy of the selection with the given areas selected.
func (s Selection) WithAreas(areas ...string) Selection {
	set := make(map[string]struct{}, len(areas))
	for _, a := range areas {
		set[a] = struct{}{}
	}
	s.Areas = set
	return s
}

// IsEmpty reports whether the selection is the identity filter.
func (s Selection) IsEmpty() bool {
	return !s.categoryActive() && len(s.Groups) == 0 && len(s.Areas) == 0 && !s.AuthenticatedOnly
}

func (s Selection) categoryActive() bool {
	return s.Category != "" && s.Category != CategoryAll
}

// Predicate builds the combined filter function. Each field contributes an
// independent condition; conditions are ANDed, so composition is
// order-independent by construction.
func (s Selection) Predicate() func(*core.Program) bool {
	return func(p *core.Program) bool {
		if p == nil {
			return false
		}
		if s.categoryActive() && !p.HasCategory(s.Category) {
			return false
		}
		if len(s.Groups) > 0 && !matchesAny(s.Groups, p.HasGroup) {
			return false
		}
		if len(s.Areas) > 0 && !matchesAny(s.Areas, p.HasArea) {
			return false
		}
		if s.AuthenticatedOnly && !p.Authenticated {
			return false
		}
		return true
	}
}

// Apply filters programs through the selection predicate, preserving input
// order.
func (s Selection) Apply(programs []*core.Program) []*core.Program {
	match := s.Predicate()
	out := make([]*core.Program, 0, len(programs))
	for _, p := range programs {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesAny(set map[string]struct{}, has func(string) bool) bool {
	for tag := range set {
		if has(tag) {
			return true
		}
	}
	return false
}
