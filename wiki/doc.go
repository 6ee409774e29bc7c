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


// Package wiki is the Wikipedia REST collaborator for the pipeline.
//
// It provides ranked topic search with a disambiguation-entry filter,
// lazy rate-limited page fetching with HTML-to-markdown conversion, and
// canonical article URL rendering. The inter-fetch delay protects
// Wikipedia's rate limits and is an injectable parameter, not a
// correctness requirement.
package wiki
