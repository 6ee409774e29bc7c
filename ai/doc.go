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


// Package ai provides abstractions for the AI services used by wikiq.
//
// The package defines three interfaces the pipeline depends on:
//
//   - Embedder: dense vector embeddings for semantic similarity
//   - SparseEmbedder: sparse term-level vectors for lexical relevance
//   - Generator: grounded answer generation with usage accounting
//
// Implementation sub-packages:
//
//   - ai/openai: dense embeddings over an OpenAI-compatible embeddings API
//   - ai/groq: answer generation over the Groq chat completions API
//   - ai/lexical: deterministic in-process sparse embeddings
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in the implementation packages return interface types
// to enforce abstraction; mock constructors return concrete types so tests
// can inject behavior and make assertions.
//
// The package also owns the generative API error taxonomy. Each failure
// class the upstream service can report (malformed request, authentication,
// permission, rate limiting) maps to a distinct sentinel value so callers
// can branch with errors.Is without inspecting transport details.
package ai
