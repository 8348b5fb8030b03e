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


package catalog

import "errors"

var (
	// ErrMalformedSnapshot indicates the snapshot document itself could not
	// be parsed. Individual malformed records are skipped, not fatal.
	ErrMalformedSnapshot = errors.New("malformed catalog snapshot")

	// ErrNilSnapshot indicates a nil snapshot was offered to the store.
	ErrNilSnapshot = errors.New("snapshot cannot be nil")

	// ErrStaleSnapshot indicates a swap was rejected because the offered
	// snapshot is not newer than the current one.
	ErrStaleSnapshot = errors.New("snapshot is not newer than current")
)
