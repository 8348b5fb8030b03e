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

// Package benefind is the retrieval core of a multilingual program
// directory: a durable offline catalog cache, locale-aware text resolution,
// and hybrid keyword/smart search over the cached snapshot.
package benefind

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/poiesic/benefind/ai"
	"github.com/poiesic/benefind/ai/openai"
	"github.com/poiesic/benefind/cache"
	"github.com/poiesic/benefind/catalog"
	"github.com/poiesic/benefind/core"
	"github.com/poiesic/benefind/filter"
	"github.com/poiesic/benefind/i18n"
	"github.com/poiesic/benefind/search"
	"github.com/poiesic/benefind/storage/badger"
)

// Directory wires the catalog cache, translation resolver, and search
// engine behind one handle. All methods are safe for concurrent use.
type Directory struct {
	backend  *badger.Backend
	store    *catalog.Store
	manager  *cache.Manager
	engine   *search.Engine
	resolver atomic.Pointer[i18n.Resolver]
	logger   *slog.Logger

	refreshOnce sync.Once
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*directoryOptions)

type directoryOptions struct {
	aiConfig *ai.Config
	feedURL  string
	locales  []string
	inMemory bool
}

// WithAIConfig enables smart search against an OpenAI-compatible host.
// Without it the directory is permanently in keyword mode.
func WithAIConfig(config *ai.Config) DirectoryOption {
	return func(o *directoryOptions) {
		o.aiConfig = config
	}
}

// WithFeedURL sets the upstream feed base URL to refresh from. Without it
// the directory serves only what is already persisted.
func WithFeedURL(feedURL string) DirectoryOption {
	return func(o *directoryOptions) {
		o.feedURL = feedURL
	}
}

// WithLocales sets the locale codes kept offline. The source locale is
// always included.
func WithLocales(locales ...string) DirectoryOption {
	return func(o *directoryOptions) {
		o.locales = locales
	}
}

// WithInMemoryStorage runs the directory without durable storage. Used in
// tests and as the degrade path when local storage cannot be opened.
func WithInMemoryStorage() DirectoryOption {
	return func(o *directoryOptions) {
		o.inMemory = true
	}
}

// Open opens the directory at the given storage path and publishes the last
// persisted snapshot. It never waits on the network: a warm cache is served
// from storage and one background refresh attempt is triggered; a completely
// cold cache fetches in the foreground when a feed URL is configured.
//
// When durable storage cannot be opened, the directory falls back to
// in-memory storage so the session still works; nothing will survive a
// restart in that state, which Durable reports.
func Open(filePath string, opts ...DirectoryOption) (*Directory, error) {
	options := &directoryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default().With("component", "directory")

	volatile := options.inMemory
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		logger.Warn("durable storage unavailable, falling back to in-memory",
			"path", filePath, "error", err)
		backend, err = badger.OpenBackend("", true)
		if err != nil {
			return nil, err
		}
		volatile = true
	}

	snapshotRepo := badger.NewSnapshotRepository(backend)
	translationRepo := badger.NewTranslationRepository(backend)
	store := catalog.NewStore()

	engineOpts := []search.Option{}
	if options.aiConfig != nil {
		ranker, err := openai.NewRanker(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
		engineOpts = append(engineOpts, search.WithRanker(ranker), search.WithTimeout(options.aiConfig.Timeout))
	}
	engine, err := search.NewEngine(engineOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	d := &Directory{
		backend: backend,
		store:   store,
		engine:  engine,
		logger:  logger,
	}

	// Refreshed translations are picked up as soon as the manager persists
	// them, including from the background refresh a warm load triggers.
	managerOpts := []cache.Option{
		cache.WithOnRefresh(func() {
			if err := d.reloadResolver(context.Background()); err != nil {
				d.logger.Warn("failed to reload translations after refresh", "error", err)
			}
		}),
	}
	if options.feedURL != "" {
		fetcher, err := cache.NewHTTPFetcher(options.feedURL)
		if err != nil {
			backend.Close()
			return nil, err
		}
		managerOpts = append(managerOpts, cache.WithFetcher(fetcher))
	}
	if len(options.locales) > 0 {
		managerOpts = append(managerOpts, cache.WithLocales(options.locales))
	}
	if volatile {
		managerOpts = append(managerOpts, cache.WithVolatileStorage())
	}

	manager, err := cache.NewManager(snapshotRepo, translationRepo, store, managerOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	d.manager = manager

	ctx := context.Background()
	if err := manager.Load(ctx); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.reloadResolver(ctx); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

func (d *Directory) reloadResolver(ctx context.Context) error {
	bundle, err := d.manager.LoadBundle(ctx)
	if err != nil {
		return err
	}
	resolver, err := i18n.NewResolver(bundle)
	if err != nil {
		return err
	}
	d.resolver.Store(resolver)
	return nil
}

// Refresh synchronously fetches the upstream feed and publishes a strictly
// newer snapshot; translations reload through the manager's refresh hook.
func (d *Directory) Refresh(ctx context.Context) error {
	return d.manager.Refresh(ctx)
}

// RefreshInBackground starts at most one background refresh for the life of
// the directory. Errors are logged; the persisted snapshot keeps serving.
func (d *Directory) RefreshInBackground(ctx context.Context) {
	d.refreshOnce.Do(func() {
		go func() {
			if err := d.Refresh(ctx); err != nil {
				d.logger.Warn("background refresh failed", "error", err)
			}
		}()
	})
}

// Search filters the current snapshot through the selection and ranks the
// survivors for the query. An empty catalog yields an empty result with
// no-results guidance, never an error.
func (d *Directory) Search(ctx context.Context, query string, selection filter.Selection) (*search.Result, error) {
	var candidates []*core.Program
	if snapshot := d.store.Current(); snapshot != nil {
		candidates = selection.Apply(snapshot.Programs())
	}
	return d.engine.Search(ctx, query, candidates)
}

// Program looks up one record by slug in the current snapshot.
func (d *Directory) Program(slug core.Slug) (*core.Program, bool) {
	snapshot := d.store.Current()
	if snapshot == nil {
		return nil, false
	}
	return snapshot.Program(slug)
}

// Programs returns the current snapshot's records in stable catalog order.
func (d *Directory) Programs() []*core.Program {
	snapshot := d.store.Current()
	if snapshot == nil {
		return nil
	}
	return snapshot.Programs()
}

// Facets returns the current snapshot's category, group, and area facets
// with whole-snapshot counts.
func (d *Directory) Facets() (categories, groups, areas []core.Facet) {
	snapshot := d.store.Current()
	if snapshot == nil {
		return nil, nil, nil
	}
	return snapshot.Categories(), snapshot.Groups(), snapshot.Areas()
}

// Metadata returns the current snapshot's metadata. ok is false before any
// snapshot has been published.
func (d *Directory) Metadata() (metadata core.Metadata, ok bool) {
	snapshot := d.store.Current()
	if snapshot == nil {
		return core.Metadata{}, false
	}
	return snapshot.Metadata(), true
}

// Resolve renders the template for a dotted key in the given locale,
// following the locale fallback chain. It never fails; an unknown key
// renders as the key itself.
func (d *Directory) Resolve(locale, key string, params i18n.Params) string {
	return d.resolver.Load().Resolve(locale, key, params)
}

// Locales returns the locale codes with loaded translation catalogs.
func (d *Directory) Locales() []string {
	bundle, err := d.manager.LoadBundle(context.Background())
	if err != nil {
		return []string{i18n.SourceLocale}
	}
	return bundle.Locales()
}

// SetLocale records the active display locale; the search engine passes it
// to the smart ranker so queries in that language rank sensibly.
func (d *Directory) SetLocale(locale string) {
	d.engine.SetLocale(i18n.NormalizeLocale(locale))
}

// SetSmartEnabled flips the smart-search toggle.
func (d *Directory) SetSmartEnabled(enabled bool) {
	d.engine.SetSmartEnabled(enabled)
}

// SetOnline records the client's connectivity hint.
func (d *Directory) SetOnline(online bool) {
	d.engine.SetOnline(online)
}

// Engine exposes the search engine for state and degrade inspection.
func (d *Directory) Engine() *search.Engine {
	return d.engine
}

// Durable reports whether the cache persists across restarts.
func (d *Directory) Durable() bool {
	return d.manager.Durable()
}

// Close releases the worker pool and closes storage.
func (d *Directory) Close() error {
	d.manager.Release()
	if err := d.backend.Close(); err != nil {
		d.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
