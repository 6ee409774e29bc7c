package core

import (
	"fmt"
	"slices"
)

// GenerativeModels lists the model identifiers accepted by the Groq API.
// Settings validation rejects anything outside this list.
var GenerativeModels = []string{
	"compound-beta",
	"compound-beta-mini",
	"gemma2-9b-it",
	"llama-3.1-8b-instant",
	"llama-3.3-70b-versatile",
	"meta-llama/llama-4-maverick-17b-128e-instruct",
	"meta-llama/llama-4-scout-17b-16e-instruct",
	"meta-llama/llama-guard-4-12b",
	"moonshotai/kimi-k2-instruct",
	"openai/gpt-oss-120b",
	"openai/gpt-oss-20b",
	"qwen/qwen3-32b",
}

// Settings holds the user-tunable pipeline parameters.
// The JSON field names match the on-disk config.json schema.
type Settings struct {
	// ResultsPerSearch is how many topic candidates one search returns (1-10).
	ResultsPerSearch int `json:"configResultNumberPerPage"`

	// ChunkLength is the window length in runes for document chunking (100-10000).
	ChunkLength int `json:"configChunkLength"`

	// ChunkOverlap is the overlap in runes between consecutive windows
	// (0-2000, strictly less than ChunkLength).
	ChunkOverlap int `json:"configChunkOverlap"`

	// TopK is the maximum number of retrieved chunks (1-16).
	TopK int `json:"configTopKResults"`

	// Threshold is the minimum similarity score a retrieved chunk must reach
	// (0.0-0.75).
	Threshold float32 `json:"configThreshold"`

	// SpellingDistance is the dictionary edit distance for query spell
	// correction (0-2); 0 disables correction.
	SpellingDistance int `json:"configDistance"`

	// GenerativeModel is the Groq model identifier used for answer synthesis.
	GenerativeModel string `json:"configGenerativeModel"`
}

// DefaultSettings returns the fixed default configuration.
// Callers receive a fresh copy; the defaults themselves are never mutated.
func DefaultSettings() Settings {
	return Settings{
		ResultsPerSearch: 3,
		ChunkLength:      1800,
		ChunkOverlap:     180,
		TopK:             4,
		Threshold:        0.3,
		SpellingDistance: 1,
		GenerativeModel:  "llama-3.3-70b-versatile",
	}
}

// Validate checks every setting against its declared range.
// Out-of-range values are rejected, never clamped.
func (s Settings) Validate() error {
	if s.ResultsPerSearch < 1 || s.ResultsPerSearch > 10 {
		return fmt.Errorf("%w: results per search %d outside [1,10]", ErrInvalidSettings, s.ResultsPerSearch)
	}
	if s.ChunkLength < 100 || s.ChunkLength > 10000 {
		return fmt.Errorf("%w: chunk length %d outside [100,10000]", ErrInvalidSettings, s.ChunkLength)
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap > 2000 {
		return fmt.Errorf("%w: chunk overlap %d outside [0,2000]", ErrInvalidSettings, s.ChunkOverlap)
	}
	if s.ChunkOverlap >= s.ChunkLength {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk length %d", ErrInvalidSettings, s.ChunkOverlap, s.ChunkLength)
	}
	if s.TopK < 1 || s.TopK > 16 {
		return fmt.Errorf("%w: top-k %d outside [1,16]", ErrInvalidSettings, s.TopK)
	}
	if s.Threshold < 0.0 || s.Threshold > 0.75 {
		return fmt.Errorf("%w: threshold %g outside [0.0,0.75]", ErrInvalidSettings, s.Threshold)
	}
	if s.SpellingDistance < 0 || s.SpellingDistance > 2 {
		return fmt.Errorf("%w: spelling distance %d outside [0,2]", ErrInvalidSettings, s.SpellingDistance)
	}
	if !slices.Contains(GenerativeModels, s.GenerativeModel) {
		return fmt.Errorf("%w: unknown generative model %q", ErrInvalidSettings, s.GenerativeModel)
	}
	return nil
}
