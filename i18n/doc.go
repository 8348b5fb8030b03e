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


// Package i18n provides the translation catalog and locale resolver for the
// benefits directory.
//
// A Catalog is one locale's immutable tree of string templates, flattened to
// dotted "namespace.key" form. A Bundle aggregates the catalogs for every
// available locale plus the source locale ("en"). The Resolver renders a
// template for a requested locale, walking the fallback chain
//
//	exact locale -> base language -> source locale -> literal key
//
// so that resolution never throws and never renders empty: a key missing in
// every catalog comes back as the literal "namespace.key" string, which makes
// missing-translation bugs visible instead of silently blank.
//
// # Interpolation
//
// Templates may contain named placeholders such as {count}, {source}, {days}
// or {months}, substituted from an explicit Params map. Unmatched placeholders
// are left verbatim rather than removed.
//
// # Pluralization
//
// The {s} marker is rendered from a numeric "count" parameter: it expands to
// the locale's plural suffix when count != 1 (zero counts as plural) and to
// nothing when count == 1.
//
// # Thread Safety
//
// Catalogs and bundles are immutable after construction and the resolver is a
// pure function over them, so all of this package is safe for concurrent use
// without locking. Bundles are injected dependencies, not package globals, so
// tests and tabs can hold different bundles without cross-contamination.
package i18n
