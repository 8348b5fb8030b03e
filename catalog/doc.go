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


// Package catalog holds the in-memory program catalog store.
//
// A Snapshot is one immutable, internally consistent version of the program
// collection: the ordered records, a slug index, the derived category, group
// and area facet tables, and the upstream Metadata. Snapshots are produced
// by DecodeSnapshot from the untrusted-but-well-formed JSON document the
// ingestion pipeline publishes; malformed records are skipped with a logged
// warning rather than failing the load.
//
// The Store publishes one Snapshot at a time behind an atomic pointer.
// Readers bind to a single snapshot for the duration of a search or filter
// pass, so program lists and facet counts are always computed from the same
// version. Swap is the only mutation point: it assigns a monotonically
// increasing generation and refuses snapshots whose GeneratedAt would move
// the catalog backwards.
package catalog
