package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/benefind/catalog"
	"github.com/poiesic/benefind/core"
	"github.com/poiesic/benefind/storage"
	storagebadger "github.com/poiesic/benefind/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned documents and counts calls. Setting gate makes
// snapshot fetches block until the channel is closed, so tests can observe
// what is served while a fetch is in flight.
type stubFetcher struct {
	mu            sync.Mutex
	snapshot      []byte
	snapshotErr   error
	snapshotCalls int
	locales       map[string][]byte
	localeCalls   int
	gate          chan struct{}
}

func (f *stubFetcher) FetchSnapshot(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	f.snapshotCalls++
	snapshot, err := f.snapshot, f.snapshotErr
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (f *stubFetcher) FetchLocale(ctx context.Context, locale string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.localeCalls++
	doc, ok := f.locales[locale]
	if !ok {
		return nil, fmt.Errorf("%w: no such locale %q", ErrFetchFailed, locale)
	}
	return doc, nil
}

func (f *stubFetcher) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotCalls, f.localeCalls
}

func snapshotJSON(generatedAt string) []byte {
	return snapshotDocJSON("v1", generatedAt)
}

func snapshotDocJSON(version, generatedAt string) []byte {
	return []byte(`{
		"programs": {
			"calfresh-online": {
				"name": "CalFresh Online",
				"description": "Apply for monthly food benefits online.",
				"categories": ["food"],
				"areas": ["Statewide"],
				"lastUpdated": "2026-08-01T00:00:00Z"
			}
		},
		"metadata": {"generatedAt": "` + generatedAt + `", "programCount": 1, "version": "` + version + `"}
	}`)
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *catalog.Store) {
	t.Helper()

	snapshots, translations := storagebadger.NewMemoryRepositories(t)
	store := catalog.NewStore()
	manager, err := NewManager(snapshots, translations, store, opts...)
	require.NoError(t, err)
	t.Cleanup(manager.Release)
	return manager, store
}

func TestLoadColdStart(t *testing.T) {
	manager, store := newTestManager(t)

	require.NoError(t, manager.Load(context.Background()))
	assert.Nil(t, store.Current())
}

func TestLoadColdFetchesForeground(t *testing.T) {
	fetcher := &stubFetcher{
		snapshot: snapshotJSON("2026-08-25T00:00:00Z"),
		locales:  map[string][]byte{"en": []byte(`{}`), "es": []byte(`{}`)},
	}
	manager, store := newTestManager(t, WithFetcher(fetcher))

	require.NoError(t, manager.Load(context.Background()))

	require.NotNil(t, store.Current())
	snapCalls, _ := fetcher.calls()
	assert.Equal(t, 1, snapCalls)
}

func TestLoadColdSurvivesFailedFetch(t *testing.T) {
	fetcher := &stubFetcher{snapshotErr: ErrFetchFailed}
	manager, store := newTestManager(t, WithFetcher(fetcher), WithRetryPolicy(1, time.Millisecond))

	require.NoError(t, manager.Load(context.Background()))
	assert.Nil(t, store.Current())
}

// seedPersisted writes a v1 snapshot directly to the repository, simulating a
// prior session's refresh.
func seedPersisted(t *testing.T, snapshots storage.SnapshotRepository) core.Metadata {
	t.Helper()

	metadata := core.Metadata{
		GeneratedAt:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		ProgramCount: 1,
		Version:      "v1",
	}
	programs := []*core.Program{{
		Slug:        "caleitc",
		Name:        "CalEITC",
		Description: "Tax credit for working families.",
		Areas:       []string{"Statewide"},
	}}
	require.NoError(t, snapshots.SaveSnapshot(context.Background(), programs, metadata))
	return metadata
}

func TestLoadWarmServesPersistedThenRefreshesInBackground(t *testing.T) {
	gate := make(chan struct{})
	fetcher := &stubFetcher{
		snapshot: snapshotDocJSON("v2", "2026-08-26T00:00:00Z"),
		locales:  map[string][]byte{"en": []byte(`{}`), "es": []byte(`{}`)},
		gate:     gate,
	}
	snapshots, translations := storagebadger.NewMemoryRepositories(t)
	metadata := seedPersisted(t, snapshots)

	store := catalog.NewStore()
	manager, err := NewManager(snapshots, translations, store, WithFetcher(fetcher))
	require.NoError(t, err)
	defer manager.Release()

	ctx := context.Background()
	require.NoError(t, manager.Load(ctx))

	// The persisted snapshot is live before the gated fetch completes, so
	// startup never waited on the network.
	snapshot := store.Current()
	require.NotNil(t, snapshot)
	assert.Equal(t, metadata, snapshot.Metadata())

	close(gate)
	require.Eventually(t, func() bool {
		current := store.Current()
		return current != nil && current.Metadata().Version == "v2"
	}, 5*time.Second, 10*time.Millisecond)

	snapCalls, _ := fetcher.calls()
	assert.Equal(t, 1, snapCalls)
}

func TestLoadWarmOfflineKeepsServingPersisted(t *testing.T) {
	fetcher := &stubFetcher{snapshotErr: ErrFetchFailed}
	snapshots, translations := storagebadger.NewMemoryRepositories(t)
	metadata := seedPersisted(t, snapshots)

	store := catalog.NewStore()
	manager, err := NewManager(snapshots, translations, store,
		WithFetcher(fetcher), WithRetryPolicy(1, time.Millisecond))
	require.NoError(t, err)
	defer manager.Release()

	ctx := context.Background()
	require.NoError(t, manager.Load(ctx))

	snapshot := store.Current()
	require.NotNil(t, snapshot)
	assert.Equal(t, metadata, snapshot.Metadata())

	// The background attempt runs and fails without disturbing what is
	// being served.
	require.Eventually(t, func() bool {
		snapCalls, _ := fetcher.calls()
		return snapCalls >= 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Same(t, snapshot, store.Current())
}

func TestRefreshPublishesAndPersists(t *testing.T) {
	fetcher := &stubFetcher{
		snapshot: snapshotJSON("2026-08-25T00:00:00Z"),
		locales: map[string][]byte{
			"en": []byte(`{"search": {"placeholder": "Search programs"}}`),
			"es": []byte(`{"search": {"placeholder": "Buscar programas"}}`),
		},
	}
	manager, store := newTestManager(t, WithFetcher(fetcher))
	ctx := context.Background()

	require.NoError(t, manager.Refresh(ctx))

	snapshot := store.Current()
	require.NotNil(t, snapshot)
	assert.Equal(t, 1, snapshot.Len())
	_, ok := snapshot.Program("calfresh-online")
	assert.True(t, ok)

	// The published snapshot must survive a restart: a fresh load from the
	// same repositories serves it with no network.
	stored, metadata, err := manager.snapshots.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, snapshot.Metadata(), metadata)

	bundle, err := manager.LoadBundle(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es"}, bundle.Locales())
}

func TestRefreshRejectsOlderSnapshot(t *testing.T) {
	fetcher := &stubFetcher{
		snapshot: snapshotJSON("2026-08-25T00:00:00Z"),
		locales:  map[string][]byte{"en": []byte(`{}`), "es": []byte(`{}`)},
	}
	manager, store := newTestManager(t, WithFetcher(fetcher))
	ctx := context.Background()

	require.NoError(t, manager.Refresh(ctx))
	first := store.Current()
	require.NotNil(t, first)

	fetcher.mu.Lock()
	fetcher.snapshot = snapshotDocJSON("v0", "2026-08-10T00:00:00Z")
	fetcher.mu.Unlock()

	require.NoError(t, manager.Refresh(ctx))
	assert.Same(t, first, store.Current())
}

func TestRefreshSkipsRepublishOfSameVersion(t *testing.T) {
	fetcher := &stubFetcher{
		snapshot: snapshotJSON("2026-08-25T00:00:00Z"),
		locales:  map[string][]byte{"en": []byte(`{}`), "es": []byte(`{}`)},
	}
	manager, store := newTestManager(t, WithFetcher(fetcher))
	ctx := context.Background()

	require.NoError(t, manager.Refresh(ctx))
	first := store.Current()
	require.NotNil(t, first)

	// Same version with a bumped timestamp, as CDNs regenerate unchanged
	// feeds. No republish, no storage churn.
	fetcher.mu.Lock()
	fetcher.snapshot = snapshotJSON("2026-08-26T00:00:00Z")
	fetcher.mu.Unlock()

	require.NoError(t, manager.Refresh(ctx))
	assert.Same(t, first, store.Current())
}

func TestRefreshInvokesOnRefreshHook(t *testing.T) {
	fetcher := &stubFetcher{
		snapshot: snapshotJSON("2026-08-25T00:00:00Z"),
		locales:  map[string][]byte{"en": []byte(`{}`), "es": []byte(`{}`)},
	}
	hookCalls := 0
	manager, _ := newTestManager(t, WithFetcher(fetcher), WithOnRefresh(func() { hookCalls++ }))

	require.NoError(t, manager.Refresh(context.Background()))
	assert.Equal(t, 1, hookCalls)
}

func TestRefreshSkipsUnparseableLocale(t *testing.T) {
	fetcher := &stubFetcher{
		snapshot: snapshotJSON("2026-08-25T00:00:00Z"),
		locales: map[string][]byte{
			"en": []byte(`{"search": {"placeholder": "Search programs"}}`),
			"es": []byte(`not json at all`),
		},
	}
	manager, _ := newTestManager(t, WithFetcher(fetcher))
	ctx := context.Background()

	require.NoError(t, manager.Refresh(ctx))

	bundle, err := manager.LoadBundle(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, bundle.Locales())
}

func TestRefreshWithoutFetcher(t *testing.T) {
	manager, _ := newTestManager(t)
	assert.ErrorIs(t, manager.Refresh(context.Background()), ErrFetcherRequired)
}

func TestLoadBundleColdSubstitutesEmptySource(t *testing.T) {
	manager, _ := newTestManager(t)

	bundle, err := manager.LoadBundle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, bundle.Locales())
}

func TestRefreshInBackgroundRunsOnce(t *testing.T) {
	fetcher := &stubFetcher{
		snapshot: snapshotJSON("2026-08-25T00:00:00Z"),
		locales:  map[string][]byte{"en": []byte(`{}`), "es": []byte(`{}`)},
	}
	manager, store := newTestManager(t, WithFetcher(fetcher))
	ctx := context.Background()

	manager.RefreshInBackground(ctx)
	manager.RefreshInBackground(ctx)
	manager.RefreshInBackground(ctx)

	require.Eventually(t, func() bool {
		return store.Current() != nil
	}, 5*time.Second, 10*time.Millisecond)

	snapCalls, _ := fetcher.calls()
	assert.Equal(t, 1, snapCalls)
}

func TestLocaleNormalizationInOptions(t *testing.T) {
	manager, _ := newTestManager(t, WithLocales([]string{"es_mx", "ES-mx", "vi", ""}))
	assert.Equal(t, []string{"en", "es-MX", "vi"}, manager.locales)
}
