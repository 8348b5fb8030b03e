package badger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewMemoryBackend creates an in-memory backend for testing and registers
// cleanup with the test.
func NewMemoryBackend(t *testing.T) *Backend {
	t.Helper()

	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if !backend.IsClosed() {
			require.NoError(t, backend.Close())
		}
	})
	return backend
}

// NewMemoryRepositories creates snapshot and translation repositories
// backed by a shared in-memory database for testing.
func NewMemoryRepositories(t *testing.T) (*SnapshotRepository, *TranslationRepository) {
	t.Helper()

	backend := NewMemoryBackend(t)
	return NewSnapshotRepository(backend), NewTranslationRepository(backend)
}
