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


// Package groq implements the ai.Generator interface over the Groq chat
// completions API (OpenAI-compatible wire format).
//
// The client is a thin REST client rather than a wrapper around a generic
// LLM library: the pipeline needs Groq's per-call timing fields
// (prompt_time, completion_time, total_time) and a lossless mapping of the
// 400/401/403/429 status codes onto the ai package error taxonomy, neither
// of which generic clients surface.
package groq
