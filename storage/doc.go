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


// Package storage provides the offline persistence abstraction for the
// benefits directory.
//
// This package defines repository interfaces that decouple the durable
// cache implementation from the rest of the engine. The badger subpackage
// provides the production BadgerDB backend; an in-memory variant of the
// same backend serves tests and the CacheUnavailable degrade path.
//
// # Constructor Return Type Pattern
//
// Public constructors return the repository interfaces rather than concrete
// types:
//
//	repo, err := badger.NewSnapshotRepository(backend)  // storage.SnapshotRepository
//
// so consumers never couple to BadgerDB specifics and test doubles drop in
// without modification. Internal constructors may return concrete types.
//
// # Data layout
//
// The snapshot repository persists programs one record per key plus a
// metadata record, so a single corrupt value costs one program, not the
// whole offline catalog. The translation repository stores each locale's
// raw catalog document under its own key.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
