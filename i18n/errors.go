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


package i18n

import "errors"

var (
	// ErrEmptyLocale indicates a catalog was constructed without a locale code.
	ErrEmptyLocale = errors.New("locale code cannot be empty")

	// ErrMalformedCatalog indicates a locale document failed to parse.
	ErrMalformedCatalog = errors.New("malformed translation catalog")

	// ErrSourceCatalogRequired indicates a bundle was built without the
	// source locale catalog, which the fallback chain depends on.
	ErrSourceCatalogRequired = errors.New("source locale catalog required")
)
