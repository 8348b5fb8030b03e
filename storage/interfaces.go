package storage

import (
	"context"

	"github.com/poiesic/benefind/core"
)

// SnapshotRepository persists the "last known good" catalog snapshot for
// offline use. Implementations must be thread-safe and support concurrent
// access.
type SnapshotRepository interface {
	// SaveSnapshot atomically replaces the stored program set and metadata.
	SaveSnapshot(ctx context.Context, programs []*core.Program, metadata core.Metadata) error

	// LoadSnapshot returns the stored programs and metadata.
	// Corrupt program records are skipped with a logged warning.
	// Returns ErrNotFound when no snapshot has ever been saved.
	LoadSnapshot(ctx context.Context) ([]*core.Program, core.Metadata, error)

	// LoadMetadata returns the stored metadata without loading programs.
	// Returns ErrNotFound when no snapshot has ever been saved.
	LoadMetadata(ctx context.Context) (core.Metadata, error)

	// Close closes the repository and releases resources.
	Close() error
}

// TranslationRepository persists raw per-locale translation catalog
// documents for offline use.
type TranslationRepository interface {
	// SaveLocale stores the raw catalog document for a locale.
	SaveLocale(ctx context.Context, locale string, doc []byte) error

	// LoadLocale returns the stored document for a locale.
	// Returns ErrNotFound when the locale has never been saved.
	LoadLocale(ctx context.Context, locale string) ([]byte, error)

	// Locales returns the locale codes with stored documents, sorted.
	Locales(ctx context.Context) ([]string, error)

	// Close closes the repository and releases resources.
	Close() error
}
