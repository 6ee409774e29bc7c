package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/vector"
)

const (
	denseSlot  = "dense"
	sparseSlot = "sparse"

	// uploadParallelism is the worker count for bulk point uploads. Safe
	// because every request writes to its own collection.
	uploadParallelism = 4

	// uploadBatchSize is the number of points per upsert request.
	uploadBatchSize = 64
)

// Store is a REST client to a Qdrant server implementing vector.Store.
type Store struct {
	url    string
	apiKey string
	client *http.Client
	pool   *ants.Pool
	logger *slog.Logger
}

// Config holds connection settings for a Qdrant server.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// NewStore creates a Qdrant-backed store.
//
// Returns the concrete type; Close must be called to release the upload
// worker pool.
func NewStore(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("qdrant URL required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	pool, err := ants.NewPool(uploadParallelism)
	if err != nil {
		return nil, err
	}

	return &Store{
		url:    strings.TrimRight(cfg.URL, "/"),
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
		pool:   pool,
		logger: slog.Default().With("component", "qdrant-store"),
	}, nil
}

// Close releases the upload worker pool.
func (s *Store) Close() {
	s.pool.Release()
}

// CreateCollection creates a collection with a named dense slot (cosine
// distance) and an unsized sparse slot.
func (s *Store) CreateCollection(ctx context.Context, name string, denseDimension int) (vector.Collection, error) {
	if denseDimension <= 0 {
		return nil, fmt.Errorf("invalid dense dimension %d", denseDimension)
	}

	body := map[string]any{
		"vectors": map[string]any{
			denseSlot: map[string]any{
				"size":     denseDimension,
				"distance": "Cosine",
			},
		},
		"sparse_vectors": map[string]any{
			sparseSlot: map[string]any{},
		},
	}
	if err := s.doJSON(ctx, http.MethodPut, "/collections/"+name, body, nil); err != nil {
		return nil, err
	}
	return &collection{store: s, name: name}, nil
}

type collection struct {
	store *Store
	name  string
}

type pointRecord struct {
	ID      uint64         `json:"id"`
	Vector  map[string]any `json:"vector"`
	Payload vector.Payload `json:"payload"`
}

// Upload upserts points in batches across the store's worker pool
// (parallelism 4). The first batch error wins; remaining batches still run
// so the pool drains cleanly.
func (c *collection) Upload(ctx context.Context, points []vector.Point) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(points); start += uploadBatchSize {
		end := min(start+uploadBatchSize, len(points))
		batch := points[start:end]

		wg.Add(1)
		err := c.store.pool.Submit(func() {
			defer wg.Done()
			if err := c.uploadBatch(ctx, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			return err
		}
	}
	wg.Wait()
	return firstErr
}

func (c *collection) uploadBatch(ctx context.Context, batch []vector.Point) error {
	records := make([]pointRecord, len(batch))
	for i, p := range batch {
		records[i] = pointRecord{
			ID: uint64(p.ID),
			Vector: map[string]any{
				denseSlot: p.Dense,
				sparseSlot: map[string]any{
					"indices": emptyIfNil(p.Sparse).Indices,
					"values":  emptyIfNil(p.Sparse).Values,
				},
			},
			Payload: p.Payload,
		}
	}
	body := map[string]any{"points": records}
	return c.store.doJSON(ctx, http.MethodPut, "/collections/"+c.name+"/points?wait=true", body, nil)
}

type queryResponse struct {
	Result struct {
		Points []struct {
			Score   float32        `json:"score"`
			Payload vector.Payload `json:"payload"`
		} `json:"points"`
	} `json:"result"`
}

// Query runs one hybrid query: a dense prefetch narrows candidates, the
// sparse vector produces the final scores.
func (c *collection) Query(ctx context.Context, q vector.HybridQuery) ([]vector.ScoredPoint, error) {
	body := map[string]any{
		"prefetch": []map[string]any{
			{
				"query": q.Dense,
				"using": denseSlot,
				"limit": q.PrefetchLimit,
			},
		},
		"query": map[string]any{
			"indices": emptyIfNil(q.Sparse).Indices,
			"values":  emptyIfNil(q.Sparse).Values,
		},
		"using":        sparseSlot,
		"limit":        q.Limit,
		"with_payload": true,
	}

	var parsed queryResponse
	if err := c.store.doJSON(ctx, http.MethodPost, "/collections/"+c.name+"/points/query", body, &parsed); err != nil {
		return nil, err
	}

	hits := make([]vector.ScoredPoint, 0, len(parsed.Result.Points))
	for _, p := range parsed.Result.Points {
		hits = append(hits, vector.ScoredPoint{Payload: p.Payload, Score: p.Score})
	}
	return hits, nil
}

// Drop deletes the collection server-side.
func (c *collection) Drop(ctx context.Context) error {
	return c.store.doJSON(ctx, http.MethodDelete, "/collections/"+c.name, nil, nil)
}

// doJSON performs one REST call against the Qdrant server.
func (s *Store) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: qdrant %s %s", vector.ErrCollectionNotFound, method, path)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// emptyIfNil keeps sparse slots JSON-encodable as [] rather than null.
func emptyIfNil(v ai.SparseVector) ai.SparseVector {
	if v.Indices == nil {
		v.Indices = []uint32{}
	}
	if v.Values == nil {
		v.Values = []float32{}
	}
	return v
}
