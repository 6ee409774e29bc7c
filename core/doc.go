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


// Package core defines the domain types shared across the question-answering
// pipeline.
//
// The central types are:
//
//   - Chunk: a bounded, overlapping window of a fetched article
//   - RetrievedChunk: a chunk annotated with a retrieval similarity score
//   - Answer: the synthesized response with source URLs and usage accounting
//   - Settings: the user-tunable pipeline parameters with range validation
//
// All values are request-scoped. Nothing in this package persists beyond a
// single call to the pipeline.
package core
