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

package badger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/benefind/core"
	"github.com/poiesic/benefind/storage"
)

// SnapshotRepository implements storage.SnapshotRepository using BadgerDB.
type SnapshotRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a snapshot repository on an open backend.
func NewSnapshotRepository(backend *Backend) *SnapshotRepository {
	return &SnapshotRepository{
		backend: backend,
		logger:  slog.Default().With("component", "snapshot_repository"),
	}
}

// SaveSnapshot atomically replaces the stored program set and metadata.
// Old program records are removed in the same transaction so a reader
// never observes a mix of two snapshots.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, programs []*core.Program, metadata core.Metadata) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	metaData, err := storage.MarshalMetadata(metadata)
	if err != nil {
		return err
	}

	encoded := make(map[core.Slug][]byte, len(programs))
	for _, program := range programs {
		data, err := storage.MarshalProgram(program)
		if err != nil {
			return err
		}
		encoded[program.Slug] = data
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Collect stale keys first; deleting during iteration invalidates
		// the iterator.
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = programKeyPrefix()
		it := tx.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			if _, keep := encoded[slugFromProgramKey(key)]; !keep {
				stale = append(stale, key)
			}
		}
		it.Close()

		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return fmt.Errorf("failed to delete stale program record: %w", err)
			}
		}
		for slug, data := range encoded {
			if err := tx.Set(makeProgramKey(slug), data); err != nil {
				return fmt.Errorf("failed to store program %q: %w", slug, err)
			}
		}
		if err := tx.Set(makeMetadataKey(), metaData); err != nil {
			return fmt.Errorf("failed to store snapshot metadata: %w", err)
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot returns the stored programs and metadata. Corrupt program
// records are skipped with a logged warning rather than failing the load.
// Returns storage.ErrNotFound when no snapshot has ever been saved.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) ([]*core.Program, core.Metadata, error) {
	if r.backend.IsClosed() {
		return nil, core.Metadata{}, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, core.Metadata{}, err
	}

	var programs []*core.Program
	var metadata core.Metadata

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMetadataKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := item.Value(func(val []byte) error {
			metadata, err = storage.UnmarshalMetadata(val)
			return err
		}); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = programKeyPrefix()
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				program, err := storage.UnmarshalProgram(val)
				if err != nil {
					return err
				}
				programs = append(programs, program)
				return nil
			})
			if err != nil {
				r.logger.Warn("skipping corrupt program record",
					"key", string(item.Key()),
					"error", err)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, core.Metadata{}, err
	}

	return programs, metadata, nil
}

// LoadMetadata returns the stored metadata without loading program records.
// Returns storage.ErrNotFound when no snapshot has ever been saved.
func (r *SnapshotRepository) LoadMetadata(ctx context.Context) (core.Metadata, error) {
	if r.backend.IsClosed() {
		return core.Metadata{}, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return core.Metadata{}, err
	}

	var metadata core.Metadata
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMetadataKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			metadata, err = storage.UnmarshalMetadata(val)
			return err
		})
	}, false)
	if err != nil {
		return core.Metadata{}, err
	}
	return metadata, nil
}

// Close closes the underlying backend.
func (r *SnapshotRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}
