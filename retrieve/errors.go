package retrieve

import "errors"

var (
	// ErrIndex indicates the vector store failed while indexing or querying.
	// Distinct from model-side errors: the caller decides whether to answer
	// with zero context or abort the request.
	ErrIndex = errors.New("vector index failure")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrEmbedderRequired is returned when a dense embedder is not provided.
	ErrEmbedderRequired = errors.New("dense embedder required")

	// ErrSparseEmbedderRequired is returned when a sparse embedder is not provided.
	ErrSparseEmbedderRequired = errors.New("sparse embedder required")
)
