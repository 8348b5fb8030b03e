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

package cache

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/benefind/catalog"
	"github.com/poiesic/benefind/core"
	"github.com/poiesic/benefind/i18n"
	"github.com/poiesic/benefind/storage"
)

// Manager coordinates the durable cache with the in-memory catalog store.
// Load publishes the last persisted snapshot without touching the network;
// Refresh fetches the upstream feed, publishes it when strictly newer, and
// persists what it published. Translation catalogs are fetched per locale on
// a worker pool since each is an independent document.
type Manager struct {
	snapshots    storage.SnapshotRepository
	translations storage.TranslationRepository
	store        *catalog.Store
	fetcher      Fetcher
	pool         *ants.Pool
	logger       *slog.Logger
	locales      []string
	onRefresh    func()

	retryAttempts  int
	retryBaseDelay time.Duration
	volatile       bool

	refreshOnce sync.Once
}

// Option configures a Manager.
type Option func(*Manager) error

// WithFetcher sets the upstream feed fetcher. Without one the manager can
// only serve what is already persisted.
func WithFetcher(fetcher Fetcher) Option {
	return func(m *Manager) error {
		m.fetcher = fetcher
		return nil
	}
}

// WithLocales sets the locale codes refreshed from the upstream feed.
// Default is en and es. The source locale is always included.
func WithLocales(locales []string) Option {
	return func(m *Manager) error {
		seen := map[string]bool{i18n.SourceLocale: true}
		normalized := []string{i18n.SourceLocale}
		for _, locale := range locales {
			code := i18n.NormalizeLocale(locale)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			normalized = append(normalized, code)
		}
		m.locales = normalized
		return nil
	}
}

// WithPoolSize sets the worker pool size for locale fetches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(m *Manager) error {
		if size < 1 {
			size = 1
		}
		if m.pool != nil {
			m.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithRetryPolicy sets the retry policy for upstream fetches.
// Default is 3 attempts with a 500ms base delay.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(m *Manager) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		m.retryAttempts = maxAttempts
		m.retryBaseDelay = baseDelay
		return nil
	}
}

// WithOnRefresh sets a hook invoked after every successful Refresh, once
// snapshot and locale documents have been persisted. Callers use it to
// rebuild state derived from the cache, like a translation resolver.
func WithOnRefresh(fn func()) Option {
	return func(m *Manager) error {
		m.onRefresh = fn
		return nil
	}
}

// WithVolatileStorage marks the manager as running on in-memory storage,
// so callers can surface that nothing will survive a restart.
func WithVolatileStorage() Option {
	return func(m *Manager) error {
		m.volatile = true
		return nil
	}
}

// NewManager creates a cache manager over open repositories and a catalog
// store.
func NewManager(snapshots storage.SnapshotRepository, translations storage.TranslationRepository, store *catalog.Store, opts ...Option) (*Manager, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot repository is required")
	}
	if translations == nil {
		return nil, errors.New("translation repository is required")
	}
	if store == nil {
		return nil, errors.New("catalog store is required")
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		snapshots:      snapshots,
		translations:   translations,
		store:          store,
		pool:           pool,
		logger:         slog.Default().With("component", "cache"),
		locales:        []string{"en", "es"},
		retryAttempts:  3,
		retryBaseDelay: 500 * time.Millisecond,
	}

	for _, opt := range opts {
		if optErr := opt(m); optErr != nil {
			m.Release()
			return nil, optErr
		}
	}

	return m, nil
}

// Durable reports whether the cache persists across restarts.
func (m *Manager) Durable() bool {
	return !m.volatile
}

// Load publishes the last persisted snapshot without waiting on the network,
// so startup latency is bounded by local storage, then triggers one
// background refresh attempt so a warm cache still converges on upstream. A
// completely cold cache is the one exception: with nothing to serve, Load
// falls through to a foreground Refresh when a fetcher is configured. A
// failed first fetch is logged, not fatal; the store stays empty until the
// next refresh.
func (m *Manager) Load(ctx context.Context) error {
	programs, metadata, err := m.snapshots.LoadSnapshot(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if m.fetcher == nil {
				m.logger.Info("no persisted snapshot, starting cold")
				return nil
			}
			m.logger.Info("no persisted snapshot, fetching in foreground")
			if refreshErr := m.Refresh(ctx); refreshErr != nil {
				m.logger.Warn("initial fetch failed, starting cold", "error", refreshErr)
			}
			return nil
		}
		return err
	}

	snapshot := catalog.NewSnapshot(programs, metadata)
	switch err := m.store.Swap(snapshot); {
	case err == nil:
		m.logger.Info("published persisted snapshot",
			"programs", snapshot.Len(), "version", metadata.Version)
	case errors.Is(err, catalog.ErrStaleSnapshot):
		// A refresh beat us to publishing; the live snapshot is newer.
	default:
		return err
	}

	if m.fetcher != nil {
		m.RefreshInBackground(ctx)
	}
	return nil
}

// LoadBundle builds a translation bundle from persisted locale documents.
// A locale whose stored document fails to parse is skipped with a warning.
// When no source locale document is persisted yet, an empty source catalog
// is substituted so lookups degrade to literal keys instead of failing.
func (m *Manager) LoadBundle(ctx context.Context) (*i18n.Bundle, error) {
	stored, err := m.translations.Locales(ctx)
	if err != nil {
		return nil, err
	}

	catalogs := make([]*i18n.Catalog, 0, len(stored)+1)
	haveSource := false
	for _, locale := range stored {
		doc, err := m.translations.LoadLocale(ctx, locale)
		if err != nil {
			m.logger.Warn("failed to load persisted locale", "locale", locale, "error", err)
			continue
		}
		parsed, err := i18n.ParseCatalog(locale, doc)
		if err != nil {
			m.logger.Warn("skipping unparseable persisted locale", "locale", locale, "error", err)
			continue
		}
		catalogs = append(catalogs, parsed)
		if parsed.Locale() == i18n.SourceLocale {
			haveSource = true
		}
	}

	if !haveSource {
		empty, err := i18n.NewCatalog(i18n.SourceLocale, nil)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, empty)
	}

	return i18n.NewBundle(catalogs...)
}

// Refresh fetches the upstream feed, publishes the snapshot when strictly
// newer than the one being served, and persists whatever was published.
// Locale catalogs are refreshed regardless of whether the snapshot changed,
// and a locale failure never fails the refresh.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.fetcher == nil {
		return ErrFetcherRequired
	}

	var raw []byte
	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		raw, fetchErr = m.fetcher.FetchSnapshot(ctx)
		return fetchErr
	}, m.retryAttempts, m.retryBaseDelay)
	if err != nil {
		return err
	}

	snapshot, err := catalog.DecodeSnapshot(raw, m.logger)
	if err != nil {
		return err
	}

	if m.alreadyPersisted(ctx, snapshot.Metadata()) {
		m.logger.Debug("upstream snapshot version unchanged, skipping publish",
			"version", snapshot.Metadata().Version)
	} else {
		switch err := m.store.Swap(snapshot); {
		case err == nil:
			if persistErr := m.snapshots.SaveSnapshot(ctx, snapshot.Programs(), snapshot.Metadata()); persistErr != nil {
				m.logger.Error("failed to persist refreshed snapshot", "error", persistErr)
			}
		case errors.Is(err, catalog.ErrStaleSnapshot):
			m.logger.Debug("upstream snapshot not newer than published, keeping current")
		default:
			return err
		}
	}

	m.refreshLocales(ctx)
	if m.onRefresh != nil {
		m.onRefresh()
	}
	return nil
}

// alreadyPersisted reports whether the fetched snapshot matches what is both
// persisted and published, by version, so an unchanged feed does not rewrite
// every program record. The metadata-only load keeps the check cheap.
func (m *Manager) alreadyPersisted(ctx context.Context, fetched core.Metadata) bool {
	if m.store.Current() == nil {
		return false
	}
	persisted, err := m.snapshots.LoadMetadata(ctx)
	if err != nil {
		return false
	}
	return persisted.Version == fetched.Version
}

// RefreshInBackground starts at most one background refresh for the life of
// the manager. Errors are logged, never surfaced; the caller keeps serving
// the persisted snapshot either way.
func (m *Manager) RefreshInBackground(ctx context.Context) {
	m.refreshOnce.Do(func() {
		go func() {
			if err := m.Refresh(ctx); err != nil {
				m.logger.Warn("background refresh failed", "error", err)
			}
		}()
	})
}

func (m *Manager) refreshLocales(ctx context.Context) {
	var wg sync.WaitGroup
	for _, locale := range m.locales {
		locale := locale
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := m.refreshLocale(ctx, locale); err != nil {
				m.logger.Warn("failed to refresh locale", "locale", locale, "error", err)
			}
		}
		if err := m.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
}

func (m *Manager) refreshLocale(ctx context.Context, locale string) error {
	var doc []byte
	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		doc, fetchErr = m.fetcher.FetchLocale(ctx, locale)
		return fetchErr
	}, m.retryAttempts, m.retryBaseDelay)
	if err != nil {
		return err
	}

	// Validate before persisting so a bad upstream document can never
	// replace a good persisted one.
	if _, err := i18n.ParseCatalog(locale, doc); err != nil {
		return err
	}

	return m.translations.SaveLocale(ctx, locale, doc)
}

// Release releases the worker pool. The manager should not be used after
// calling Release.
func (m *Manager) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}
