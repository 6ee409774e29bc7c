package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/core"
	"github.com/poiesic/wikiq/vector"
)

// Store is an in-process vector store. It is the default backend, standing
// in for an in-memory vector database: collections live in a map guarded by
// a mutex and are safe for concurrent requests as long as each request uses
// its own collection name.
type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
}

// NewStore creates an empty in-process store.
//
// Returns the concrete type so tests can inspect residual state.
func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// CreateCollection creates a named collection with the given dense
// dimensionality.
func (s *Store) CreateCollection(ctx context.Context, name string, denseDimension int) (vector.Collection, error) {
	if denseDimension <= 0 {
		return nil, fmt.Errorf("invalid dense dimension %d", denseDimension)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; ok {
		return nil, fmt.Errorf("%w: %s", vector.ErrCollectionExists, name)
	}

	c := &collection{store: s, name: name, dimension: denseDimension}
	s.collections[name] = c
	return c, nil
}

// Len reports the number of live collections. Test helper.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections)
}

// Has reports whether a collection name is live. Test helper.
func (s *Store) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.collections[name]
	return ok
}

type collection struct {
	store     *Store
	name      string
	dimension int

	mu      sync.Mutex
	points  []vector.Point
	dropped bool
}

// Upload bulk-inserts points. Points replace earlier points with the same ID.
func (c *collection) Upload(ctx context.Context, points []vector.Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dropped {
		return fmt.Errorf("%w: %s", vector.ErrCollectionNotFound, c.name)
	}

	existing := make(map[core.ID]int, len(c.points))
	for i, p := range c.points {
		existing[p.ID] = i
	}
	for _, p := range points {
		if len(p.Dense) != c.dimension {
			return fmt.Errorf("%w: got %d, want %d", vector.ErrDimensionMismatch, len(p.Dense), c.dimension)
		}
		if i, ok := existing[p.ID]; ok {
			c.points[i] = p
			continue
		}
		existing[p.ID] = len(c.points)
		c.points = append(c.points, p)
	}
	return nil
}

// Query narrows candidates with a dense cosine prefetch, then ranks the
// survivors by sparse dot product descending.
func (c *collection) Query(ctx context.Context, q vector.HybridQuery) ([]vector.ScoredPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dropped {
		return nil, fmt.Errorf("%w: %s", vector.ErrCollectionNotFound, c.name)
	}
	if len(q.Dense) != c.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", vector.ErrDimensionMismatch, len(q.Dense), c.dimension)
	}

	// Dense prefetch: candidate narrowing only, the cosine score is not
	// part of the final ranking.
	type candidate struct {
		idx   int
		score float32
	}
	prefetch := make([]candidate, 0, len(c.points))
	for i, p := range c.points {
		prefetch = append(prefetch, candidate{idx: i, score: cosine(q.Dense, p.Dense)})
	}
	sort.SliceStable(prefetch, func(i, j int) bool { return prefetch[i].score > prefetch[j].score })
	if q.PrefetchLimit > 0 && len(prefetch) > q.PrefetchLimit {
		prefetch = prefetch[:q.PrefetchLimit]
	}

	// Sparse re-rank over the prefetched candidates.
	hits := make([]vector.ScoredPoint, 0, len(prefetch))
	for _, cand := range prefetch {
		p := c.points[cand.idx]
		hits = append(hits, vector.ScoredPoint{
			Payload: p.Payload,
			Score:   sparseDot(q.Sparse, p.Sparse),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	return hits, nil
}

// Drop removes the collection from the store. Idempotent.
func (c *collection) Drop(ctx context.Context) error {
	c.mu.Lock()
	c.dropped = true
	c.points = nil
	c.mu.Unlock()

	c.store.mu.Lock()
	delete(c.store.collections, c.name)
	c.store.mu.Unlock()
	return nil
}

func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func sparseDot(a, b ai.SparseVector) float32 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += float64(a.Values[i]) * float64(b.Values[j])
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return float32(sum)
}
