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


// Package chunk splits fetched articles into overlapping fixed-length
// windows for retrieval indexing.
package chunk

import "github.com/poiesic/wikiq/core"

// Chunker cuts document text into windows of at most length runes, with
// consecutive windows of the same document overlapping by overlap runes.
// Offsets advance by length-overlap, so every position of the document is
// covered and cross-boundary context is preserved.
type Chunker struct {
	length  int
	overlap int
}

// NewChunker creates a chunker for the given window length and overlap.
// Requires 0 <= overlap < length; out-of-range values fall back to the
// nearest legal ones so a chunker is always usable.
func NewChunker(length, overlap int) *Chunker {
	if length <= 0 {
		length = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= length {
		overlap = length - 1
	}
	return &Chunker{length: length, overlap: overlap}
}

// Split cuts one document into chunks tagged with its source key.
// Offsets are rune-based so multi-byte characters are never split.
// A zero-length document yields exactly one empty chunk, keeping the
// document represented in the index.
func (c *Chunker) Split(source, text string) []core.Chunk {
	runes := []rune(text)
	var chunks []core.Chunk
	offset := 0
	for {
		end := offset + c.length
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, core.Chunk{
			Text:   string(runes[offset:end]),
			Source: source,
		})
		if offset+c.length >= len(runes) {
			break
		}
		offset += c.length - c.overlap
	}
	return chunks
}

// SplitAll chunks each document in order. Documents are keyed by their
// source topic; the returned chunk sequence preserves document order and
// within-document window order.
func (c *Chunker) SplitAll(sources, docs []string) []core.Chunk {
	var chunks []core.Chunk
	for i, doc := range docs {
		if i >= len(sources) {
			break
		}
		chunks = append(chunks, c.Split(sources[i], doc)...)
	}
	return chunks
}
