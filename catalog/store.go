package catalog

import (
	"log/slog"
	"sync/atomic"
)

// Store publishes the current catalog snapshot. Reads are lock-free; a
// reader that grabs Current keeps one consistent snapshot for its whole
// search/filter pass regardless of concurrent swaps. Swap is the single
// mutation point.
type Store struct {
	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
	logger     *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets a custom logger.
// Default is slog.Default().
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates an empty store. Current returns nil until the first Swap.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		logger: slog.Default().With("component", "catalog-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the published snapshot, or nil before the first swap.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Generation returns the generation of the published snapshot, zero when
// nothing has been published.
func (s *Store) Generation() uint64 {
	if snap := s.current.Load(); snap != nil {
		return snap.generation
	}
	return 0
}

// Swap atomically publishes a new snapshot. The snapshot must be strictly
// newer (by Metadata.GeneratedAt) than the current one; stale snapshots are
// rejected with ErrStaleSnapshot so a delayed refresh can never roll the
// catalog back. The store assigns the snapshot its generation.
func (s *Store) Swap(next *Snapshot) error {
	if next == nil {
		return ErrNilSnapshot
	}

	for {
		current := s.current.Load()
		if current != nil && !next.metadata.GeneratedAt.After(current.metadata.GeneratedAt) {
			s.logger.Debug("rejecting stale snapshot",
				"current", current.metadata.GeneratedAt, "offered", next.metadata.GeneratedAt)
			return ErrStaleSnapshot
		}

		next.generation = s.generation.Add(1)
		if s.current.CompareAndSwap(current, next) {
			s.logger.Info("published catalog snapshot",
				"generation", next.generation,
				"programs", next.Len(),
				"version", next.metadata.Version)
			return nil
		}
	}
}
