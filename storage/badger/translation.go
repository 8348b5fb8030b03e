package badger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/benefind/storage"
)

// TranslationRepository implements storage.TranslationRepository using
// BadgerDB. Locale documents are stored raw; parsing happens at load time
// in the i18n layer so a bad document can fall back instead of poisoning
// the store.
type TranslationRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.TranslationRepository = (*TranslationRepository)(nil)

// NewTranslationRepository creates a translation repository on an open backend.
func NewTranslationRepository(backend *Backend) *TranslationRepository {
	return &TranslationRepository{
		backend: backend,
		logger:  slog.Default().With("component", "translation_repository"),
	}
}

// SaveLocale stores the raw catalog document for a locale.
func (r *TranslationRepository) SaveLocale(ctx context.Context, locale string, doc []byte) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeLocaleKey(locale), doc); err != nil {
			return fmt.Errorf("failed to store locale %q: %w", locale, err)
		}
		return tx.Commit()
	}, true)
}

// LoadLocale returns the stored document for a locale.
// Returns storage.ErrNotFound when the locale has never been saved.
func (r *TranslationRepository) LoadLocale(ctx context.Context, locale string) ([]byte, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc []byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLocaleKey(locale))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: locale %q", storage.ErrNotFound, locale)
			}
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Locales returns the locale codes with stored documents, sorted.
func (r *TranslationRepository) Locales(ctx context.Context) ([]string, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var locales []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = localeKeyPrefix()
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			locales = append(locales, localeFromKey(it.Item().KeyCopy(nil)))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Strings(locales)
	return locales, nil
}

// Close closes the underlying backend.
func (r *TranslationRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}
