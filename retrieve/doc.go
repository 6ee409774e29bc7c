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


// Package retrieve implements hybrid passage retrieval over a throwaway
// per-request vector collection.
//
// For each request the retriever embeds the chunk set, creates a
// request-unique collection, uploads the points, runs one hybrid query
// (dense prefetch narrowing into a sparse re-rank), filters hits by the
// similarity threshold, and drops the collection. Teardown runs on every
// exit path, so no index state survives a request.
//
// Failures of the backing store surface as ErrIndex so callers can tell
// them apart from model-side errors.
package retrieve
