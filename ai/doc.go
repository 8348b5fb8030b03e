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


// Package ai defines the smart-search collaborator interface.
//
// A Ranker takes a natural-language query in the user's locale plus the
// candidate program slugs and returns an advisory ranking. The search engine
// merges that ranking into its deterministic keyword scores as a bounded
// boost; the ranker is never the sole source of truth, and any ranker
// failure degrades transparently to keyword-only results.
//
// The openai subpackage implements Ranker against OpenAI-compatible chat
// APIs; the mock subpackage provides a deterministic test double.
//
// # Constructor Return Type Pattern
//
// Public constructors return the ai.Ranker interface rather than concrete
// types so callers never couple to a specific provider and test doubles drop
// in without modification.
package ai
