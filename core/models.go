package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for indexed chunks.
// It is generated by content-based hashing so identical chunks map to
// identical points in the vector store.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is a bounded-length window of one fetched article, carrying the
// topic key it was cut from. Consecutive chunks of the same article overlap
// by the configured overlap length.
type Chunk struct {
	Text   string
	Source string // topic key of the article this chunk was cut from
}

// ID returns the deterministic point ID for this chunk.
// Source and text both contribute, so equal passages from different
// articles remain distinct points.
func (c Chunk) ID() ID {
	return IDFromContent(c.Source + "\x00" + c.Text)
}

// RetrievedChunk is a chunk that survived hybrid retrieval, annotated with
// its similarity score. Only chunks scoring at or above the configured
// threshold are kept.
type RetrievedChunk struct {
	Text   string
	Source string
	Score  float32
}

// Usage carries per-call accounting reported by the generative model,
// passed through verbatim.
type Usage struct {
	CompletionTime float64 `json:"completion_time"`
	PromptTime     float64 `json:"prompt_time"`
	TotalTime      float64 `json:"total_time"`

	CompletionTokens int `json:"completion_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Answer is the final result of one pipeline run.
// Sources are fully-qualified article URLs with duplicates collapsed;
// their order is not guaranteed.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Usage   Usage    `json:"usage"`
}
