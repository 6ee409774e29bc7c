package vector

import (
	"context"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/core"
)

// Payload is the metadata stored alongside each point and returned by
// queries.
type Payload struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Point is one indexed chunk: a stable ID, both vector representations,
// and the retrievable payload.
type Point struct {
	ID      core.ID
	Dense   []float32
	Sparse  ai.SparseVector
	Payload Payload
}

// HybridQuery runs a sparse-scored query narrowed by a dense prefetch.
// The dense vector selects PrefetchLimit candidates by cosine similarity;
// the sparse vector produces the final scores. Limit caps the result count.
type HybridQuery struct {
	Dense         []float32
	Sparse        ai.SparseVector
	PrefetchLimit int
	Limit         int
}

// ScoredPoint is a query hit: the stored payload with its sparse score.
type ScoredPoint struct {
	Payload Payload
	Score   float32
}

// Collection is a request-scoped named index. The creator owns teardown:
// Drop must be called on every exit path once retrieval is done.
type Collection interface {
	// Upload bulk-inserts points with their payloads. Implementations may
	// parallelize internally; callers see a single blocking operation.
	Upload(ctx context.Context, points []Point) error

	// Query runs one hybrid query and returns up to q.Limit hits ordered by
	// sparse score descending.
	Query(ctx context.Context, q HybridQuery) ([]ScoredPoint, error)

	// Drop deletes the collection and all its points.
	Drop(ctx context.Context) error
}

// Store creates named collections. Collection names must be unique per
// request when the store is shared across concurrent requests.
type Store interface {
	// CreateCollection creates a collection with a dense slot of the given
	// dimensionality (cosine distance) plus an unsized sparse slot.
	CreateCollection(ctx context.Context, name string, denseDimension int) (Collection, error)
}
