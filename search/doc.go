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


// Package search ranks program records for a user query.
//
// Two strategies share one result contract. Keyword search is the default:
// deterministic, offline-safe, tokenized case-insensitive matching over
// name, description, and taxonomy labels, scored name > description >
// taxonomy with ties broken by slug. Smart search is opt-in: an ai.Ranker
// collaborator returns an advisory ordering that is merged into the keyword
// scores as a bounded boost, never as the sole authority.
//
// Degradation is structural, not flag-checked at call sites: the smart path
// always computes the keyword ranking first, so a ranker timeout, error, or
// disabled toggle re-enters keyword mode synchronously with the same query.
// The caller gets a full keyword result plus a passive degrade reason; no
// blank or stalled state is possible.
//
// Each search carries a monotonically increasing sequence number. A smart
// response that arrives after a newer query has started is discarded
// (last-query-wins), reported to the caller as ErrSuperseded.
//
// An empty result set is a first-class outcome: the Result carries guidance
// (a message key plus fallback suggestion slugs) for the caller to render.
package search
