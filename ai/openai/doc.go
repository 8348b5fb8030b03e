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


// Package openai implements the ai.Ranker interface against any
// OpenAI-compatible chat completion API (OpenAI, Ollama, LocalAI, vLLM)
// through langchaingo.
//
// The ranker asks the model for a JSON object listing candidate slugs from
// most to least relevant, parses defensively (markdown fences stripped,
// common JSON defects repaired, up to three parse attempts), and drops any
// slug the model invents. The caller's context deadline bounds each call.
package openai
