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

import "errors"

var (
	// ErrFetchFailed indicates the upstream feed returned an error response.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrBaseURLRequired indicates an HTTP fetcher was constructed without
	// an upstream base URL.
	ErrBaseURLRequired = errors.New("base URL is required")

	// ErrFetcherRequired indicates a refresh was requested on a manager
	// constructed without a fetcher.
	ErrFetcherRequired = errors.New("fetcher is required")

	// ErrInvalidMaxAttempts indicates maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
