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


// Package vector abstracts the vector storage service behind request-scoped
// collection handles.
//
// A Store creates Collections with a named dense slot (cosine distance,
// sized to the embedding model) and an unsized sparse slot. Collections are
// throwaway: the retriever creates one per request, uploads the request's
// chunks, runs one hybrid query (dense prefetch feeding a sparse re-rank),
// and drops the collection. Nothing survives the request.
//
// Implementations:
//
//   - vector/memory: in-process store, the default (mirrors an in-memory
//     vector database); also the test backend
//   - vector/qdrant: REST client against a Qdrant server
package vector
