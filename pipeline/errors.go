package pipeline

import "errors"

var (
	// ErrWikiClientRequired is returned when a Pipeline is constructed
	// without a Wikipedia client.
	ErrWikiClientRequired = errors.New("wiki client is required")

	// ErrRetrieverRequired is returned when a Pipeline is constructed
	// without a retriever.
	ErrRetrieverRequired = errors.New("retriever is required")
)
