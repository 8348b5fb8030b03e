package catalog

import (
	"sync"
	"testing"
	"time"

	"github.com/poiesic/benefind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotAt(t *testing.T, generatedAt time.Time, slugs ...core.Slug) *Snapshot {
	t.Helper()
	programs := make([]*core.Program, 0, len(slugs))
	for _, slug := range slugs {
		programs = append(programs, &core.Program{
			Slug:        slug,
			Name:        string(slug),
			Description: "test program",
			Areas:       []string{"Statewide"},
		})
	}
	return NewSnapshot(programs, core.Metadata{
		GeneratedAt:  generatedAt,
		ProgramCount: len(programs),
		Version:      generatedAt.Format(time.RFC3339),
	})
}

func TestStoreSwap(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty store accepts first snapshot", func(t *testing.T) {
		store := NewStore()
		assert.Nil(t, store.Current())
		require.NoError(t, store.Swap(snapshotAt(t, base, "a")))
		require.NotNil(t, store.Current())
		assert.Equal(t, uint64(1), store.Generation())
	})

	t.Run("newer snapshot replaces current", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Swap(snapshotAt(t, base, "a")))
		require.NoError(t, store.Swap(snapshotAt(t, base.Add(time.Hour), "a", "b")))
		assert.Equal(t, 2, store.Current().Len())
		assert.Equal(t, uint64(2), store.Generation())
	})

	t.Run("stale snapshot rejected", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Swap(snapshotAt(t, base.Add(time.Hour), "a")))
		err := store.Swap(snapshotAt(t, base, "b"))
		assert.ErrorIs(t, err, ErrStaleSnapshot)
		// Equal timestamps are also stale: swaps must be strictly newer.
		err = store.Swap(snapshotAt(t, base.Add(time.Hour), "b"))
		assert.ErrorIs(t, err, ErrStaleSnapshot)
		assert.Equal(t, 1, store.Current().Len())
	})

	t.Run("nil snapshot rejected", func(t *testing.T) {
		store := NewStore()
		assert.ErrorIs(t, store.Swap(nil), ErrNilSnapshot)
	})
}

func TestStoreReadersBindToOneSnapshot(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore()
	require.NoError(t, store.Swap(snapshotAt(t, base, "a")))

	// A reader that grabbed the snapshot before a swap keeps seeing the old
	// version; counts and records stay mutually consistent.
	bound := store.Current()
	require.NoError(t, store.Swap(snapshotAt(t, base.Add(time.Minute), "a", "b", "c")))

	assert.Equal(t, 1, bound.Len())
	assert.Equal(t, 1, bound.Metadata().ProgramCount)
	assert.Equal(t, 3, store.Current().Len())
}

func TestStoreConcurrentSwapAndRead(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore()
	require.NoError(t, store.Swap(snapshotAt(t, base, "a")))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Swap(snapshotAt(t, base.Add(time.Duration(i)*time.Second), "a"))
		}(i)
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := store.Current()
			require.NotNil(t, snap)
			// Derived state always matches the bound snapshot's records.
			assert.Equal(t, snap.Len(), snap.Metadata().ProgramCount)
		}()
	}
	wg.Wait()

	// Generations only move forward.
	assert.GreaterOrEqual(t, store.Generation(), uint64(1))
	assert.Equal(t, base.Add(20*time.Second), store.Current().Metadata().GeneratedAt)
}
