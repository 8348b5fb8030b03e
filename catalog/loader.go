package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/benefind/core"
)

// Document mirrors the snapshot JSON published by the ingestion pipeline:
// a slug-keyed program mapping plus metadata.
type Document struct {
	Programs map[string]*core.Program `json:"programs"`
	Metadata core.Metadata            `json:"metadata"`
}

// DecodeSnapshot parses a snapshot document and builds a Snapshot.
//
// The document is treated as untrusted but well formed: a top-level parse
// failure or invalid metadata block is fatal (ErrMalformedSnapshot), while
// individual records that fail validation are skipped with a logged warning
// so the directory keeps serving every valid record. When the feed omits a
// version string, a content fingerprint of the raw document is used so
// identical content maps to an identical version.
func DecodeSnapshot(data []byte, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}

	programs := make([]*core.Program, 0, len(doc.Programs))
	skipped := 0
	for slug, program := range doc.Programs {
		if program == nil {
			logger.Warn("skipping null program record", "slug", slug)
			skipped++
			continue
		}
		// The mapping key is authoritative for the slug.
		if program.Slug == "" {
			program.Slug = core.Slug(slug)
		} else if program.Slug != core.Slug(slug) {
			logger.Warn("program slug disagrees with mapping key, using key",
				"key", slug, "slug", program.Slug)
			program.Slug = core.Slug(slug)
		}

		if err := core.ValidateProgram(program); err != nil {
			logger.Warn("skipping malformed program record", "slug", slug, "err", err)
			skipped++
			continue
		}
		programs = append(programs, program)
	}

	metadata := doc.Metadata
	if err := core.ValidateMetadata(&metadata); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	if metadata.Version == "" {
		metadata.Version = core.Fingerprint(data)
	}
	if metadata.ProgramCount != len(programs) {
		if metadata.ProgramCount != 0 {
			logger.Warn("metadata program count disagrees with decoded records",
				"metadata", metadata.ProgramCount, "decoded", len(programs), "skipped", skipped)
		}
		metadata.ProgramCount = len(programs)
	}

	logger.Info("decoded catalog snapshot",
		"programs", len(programs), "skipped", skipped, "version", metadata.Version)

	return NewSnapshot(programs, metadata), nil
}
