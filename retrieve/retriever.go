package retrieve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/core"
	"github.com/poiesic/wikiq/vector"
)

// prefetchLimit is the dense candidate pool fed into the sparse re-rank.
// Wider than any legal top-k so the re-rank always has slack to reorder.
const prefetchLimit = 32

// Retriever ranks a request's chunk set against its query using hybrid
// dense+sparse scoring over a throwaway collection.
type Retriever struct {
	store    vector.Store
	embedder ai.Embedder
	sparse   ai.SparseEmbedder
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a retriever over the given store and embedders.
func NewRetriever(store vector.Store, embedder ai.Embedder, sparse ai.SparseEmbedder, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if sparse == nil {
		return nil, ErrSparseEmbedderRequired
	}

	r := &Retriever{
		store:    store,
		embedder: embedder,
		sparse:   sparse,
		logger:   slog.Default().With("component", "retriever"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Retrieve returns up to topK chunks scoring at least threshold against the
// query, ordered by sparse score descending. An empty chunk set or an empty
// result is valid: it propagates as "no grounding context", not an error.
//
// The backing collection is request-unique and dropped before Retrieve
// returns, on success and failure alike.
func (r *Retriever) Retrieve(ctx context.Context, query string, chunks []core.Chunk, topK int, threshold float32) ([]core.RetrievedChunk, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	if topK > len(chunks) {
		topK = len(chunks)
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	denseVectors, err := r.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(denseVectors) != len(chunks) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d chunks", ErrIndex, len(denseVectors), len(chunks))
	}

	points := make([]vector.Point, len(chunks))
	for i, ch := range chunks {
		points[i] = vector.Point{
			ID:     ch.ID(),
			Dense:  denseVectors[i],
			Sparse: r.sparse.EmbedSparse(ch.Text),
			Payload: vector.Payload{
				Text:   ch.Text,
				Source: ch.Source,
			},
		}
	}

	queryDense, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	querySparse := r.sparse.EmbedSparse(query)

	// Request-unique name: the store may be shared process-wide, the
	// collection never is.
	name := "wikiq-" + uuid.NewString()
	coll, err := r.store.CreateCollection(ctx, name, r.embedder.Dimension())
	if err != nil {
		return nil, fmt.Errorf("%w: creating collection: %w", ErrIndex, err)
	}
	defer func() {
		// Teardown must not depend on the request context still being
		// alive; a canceled request would otherwise leak the collection.
		if err := coll.Drop(context.WithoutCancel(ctx)); err != nil {
			r.logger.Error("dropping collection", "collection", name, "err", err)
		}
	}()

	if err := coll.Upload(ctx, points); err != nil {
		return nil, fmt.Errorf("%w: uploading points: %w", ErrIndex, err)
	}

	hits, err := coll.Query(ctx, vector.HybridQuery{
		Dense:         queryDense,
		Sparse:        querySparse,
		PrefetchLimit: prefetchLimit,
		Limit:         topK,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: querying collection: %w", ErrIndex, err)
	}

	results := make([]core.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < threshold {
			continue
		}
		results = append(results, core.RetrievedChunk{
			Text:   hit.Payload.Text,
			Source: hit.Payload.Source,
			Score:  hit.Score,
		})
	}

	r.logger.Debug("retrieval complete",
		"chunks", len(chunks),
		"hits", len(hits),
		"kept", len(results),
		"threshold", threshold,
	)
	return results, nil
}
