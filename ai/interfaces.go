package ai

import "context"

// Embedder generates dense vector embeddings from text for semantic
// similarity search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch, returned in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the dimensionality of the produced vectors.
	Dimension() int
}

// SparseEmbedder generates sparse vectors capturing term-level relevance.
// Implementations must be deterministic: the same text always yields the
// same vector. Thread-safe for concurrent use.
type SparseEmbedder interface {
	// EmbedSparse generates a sparse vector for a single text string.
	// Texts without any indexable term yield an empty vector, not an error.
	EmbedSparse(text string) SparseVector
}

// Generator produces a text completion from an ordered list of role-tagged
// messages. One call performs exactly one upstream request; no retries.
type Generator interface {
	// Generate invokes the generative model with the given conversation and
	// returns the completion text together with the model's own usage
	// accounting. Upstream failures map onto the package error taxonomy.
	Generate(ctx context.Context, messages []Message) (*Result, error)
}
