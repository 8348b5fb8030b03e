package core

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Slug is the stable, unique, human-readable identifier for a Program.
// It is the primary key across the catalog, favorites, and the API, and
// is immutable once published.
type Slug string

// Fingerprint generates a deterministic version identifier from raw snapshot
// content using BLAKE2b hashing. It is used when the upstream feed omits an
// explicit version string, so identical content always produces an identical
// version.
func Fingerprint(data []byte) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], binary.LittleEndian.Uint64(sum))
	return hex.EncodeToString(buf[:])
}

// OfferList is an ordered list of offer lines. Upstream content delivers it
// either as a JSON array or as hyphen-delimited prose; both decode to the
// same semantic list.
type OfferList []string

// UnmarshalJSON accepts ["a","b"] as well as "- a\n- b" (or "a - b - c")
// style prose.
func (o *OfferList) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*o = normalizeOfferLines(lines)
		return nil
	}

	var prose string
	if err := json.Unmarshal(data, &prose); err != nil {
		return err
	}
	*o = SplitOfferProse(prose)
	return nil
}

// SplitOfferProse converts hyphen-delimited prose into an ordered list of
// offer lines. Newlines take precedence over inline " - " separators.
func SplitOfferProse(prose string) []string {
	prose = strings.TrimSpace(prose)
	if prose == "" {
		return nil
	}

	var raw []string
	if strings.ContainsRune(prose, '\n') {
		raw = strings.Split(prose, "\n")
	} else {
		raw = strings.Split(prose, " - ")
	}
	return normalizeOfferLines(raw)
}

func normalizeOfferLines(raw []string) []string {
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "-")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Program is a single assistance program record. Programs are produced by an
// external ingestion pipeline and are read-only within this engine.
type Program struct {
	Slug          Slug      `json:"slug"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	WhatTheyOffer OfferList `json:"whatTheyOffer,omitempty"`
	HowToGetIt    []string  `json:"howToGetIt,omitempty"`
	Timeframe     string    `json:"timeframe,omitempty"`
	LinkText      string    `json:"linkText,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	Groups        []string  `json:"eligibilityGroups,omitempty"`
	Areas         []string  `json:"areas,omitempty"`
	Authenticated bool      `json:"authenticated,omitempty"`
	VerifiedAt    time.Time `json:"lastUpdated"`
}

// HasCategory reports whether the program carries the given category tag.
func (p *Program) HasCategory(category string) bool {
	return containsFold(p.Categories, category)
}

// HasGroup reports whether the program carries the given eligibility group tag.
func (p *Program) HasGroup(group string) bool {
	return containsFold(p.Groups, group)
}

// HasArea reports whether the program serves the given area.
func (p *Program) HasArea(area string) bool {
	return containsFold(p.Areas, area)
}

func containsFold(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Metadata is the staleness and cache-busting signal carried alongside a
// catalog snapshot.
type Metadata struct {
	GeneratedAt  time.Time `json:"generatedAt"`
	ProgramCount int       `json:"programCount"`
	Version      string    `json:"version"`
}

// Facet is a derived view over the program collection for one taxonomy value:
// a category, an eligibility group, or a geographic area. Facets are never
// independently authored; counts are recomputed whenever the visible set
// changes.
type Facet struct {
	ID           string
	LabelKey     string // translation key for the display name
	ProgramCount int
}

// Scored pairs a program with its relevance score for a query.
type Scored struct {
	Program *Program
	Score   float32
}
