package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/core"
	"github.com/poiesic/wikiq/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

// fakeQdrant records requests and serves canned responses.
type fakeQdrant struct {
	mu       sync.Mutex
	requests []recordedRequest
	queryRes string
}

func (f *fakeQdrant) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{method: r.Method, path: r.URL.Path, body: body})
		f.mu.Unlock()

		if r.Method == http.MethodPost && f.queryRes != "" {
			_, _ = w.Write([]byte(f.queryRes))
			return
		}
		_, _ = w.Write([]byte(`{"result": true, "status": "ok"}`))
	})
}

func (f *fakeQdrant) byMethod(method string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if r.method == method {
			out = append(out, r)
		}
	}
	return out
}

func newTestStore(t *testing.T, fake *fakeQdrant) *Store {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	store, err := NewStore(Config{URL: srv.URL})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestCreateCollectionSchema(t *testing.T) {
	fake := &fakeQdrant{}
	store := newTestStore(t, fake)

	_, err := store.CreateCollection(context.Background(), "req-1", 384)
	require.NoError(t, err)

	puts := fake.byMethod(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, "/collections/req-1", puts[0].path)

	vectors := puts[0].body["vectors"].(map[string]any)
	dense := vectors["dense"].(map[string]any)
	assert.Equal(t, float64(384), dense["size"])
	assert.Equal(t, "Cosine", dense["distance"])

	sparse := puts[0].body["sparse_vectors"].(map[string]any)
	assert.Contains(t, sparse, "sparse")
}

func TestUploadBatchesPoints(t *testing.T) {
	fake := &fakeQdrant{}
	store := newTestStore(t, fake)
	ctx := context.Background()

	c, err := store.CreateCollection(ctx, "req-1", 2)
	require.NoError(t, err)

	points := make([]vector.Point, 150)
	for i := range points {
		points[i] = vector.Point{
			ID:     core.ID(i + 1),
			Dense:  []float32{1, 0},
			Sparse: ai.SparseVector{Indices: []uint32{1}, Values: []float32{1}},
		}
	}
	require.NoError(t, c.Upload(ctx, points))

	var upserts []recordedRequest
	for _, r := range fake.byMethod(http.MethodPut) {
		if r.path == "/collections/req-1/points" {
			upserts = append(upserts, r)
		}
	}
	// 150 points with batch size 64 -> 3 upsert requests.
	require.Len(t, upserts, 3)

	total := 0
	for _, r := range upserts {
		total += len(r.body["points"].([]any))
	}
	assert.Equal(t, 150, total)
}

func TestQueryWireFormat(t *testing.T) {
	fake := &fakeQdrant{queryRes: `{"result": {"points": [
		{"id": 1, "score": 0.82, "payload": {"text": "Paris is the capital", "source": "Paris"}},
		{"id": 2, "score": 0.44, "payload": {"text": "France is a country", "source": "France"}}
	]}}`}
	store := newTestStore(t, fake)
	ctx := context.Background()

	c, err := store.CreateCollection(ctx, "req-1", 2)
	require.NoError(t, err)

	hits, err := c.Query(ctx, vector.HybridQuery{
		Dense:         []float32{1, 0},
		Sparse:        ai.SparseVector{Indices: []uint32{3}, Values: []float32{0.7}},
		PrefetchLimit: 32,
		Limit:         4,
	})
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "Paris", hits[0].Payload.Source)
	assert.InDelta(t, 0.82, hits[0].Score, 1e-6)

	posts := fake.byMethod(http.MethodPost)
	require.Len(t, posts, 1)
	assert.Equal(t, "/collections/req-1/points/query", posts[0].path)

	prefetch := posts[0].body["prefetch"].([]any)[0].(map[string]any)
	assert.Equal(t, "dense", prefetch["using"])
	assert.Equal(t, float64(32), prefetch["limit"])

	assert.Equal(t, "sparse", posts[0].body["using"])
	assert.Equal(t, float64(4), posts[0].body["limit"])
	assert.Equal(t, true, posts[0].body["with_payload"])
}

func TestDropDeletesCollection(t *testing.T) {
	fake := &fakeQdrant{}
	store := newTestStore(t, fake)
	ctx := context.Background()

	c, err := store.CreateCollection(ctx, "req-1", 2)
	require.NoError(t, err)
	require.NoError(t, c.Drop(ctx))

	deletes := fake.byMethod(http.MethodDelete)
	require.Len(t, deletes, 1)
	assert.Equal(t, "/collections/req-1", deletes[0].path)
}

func TestQueryAfterDropIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	t.Cleanup(srv.Close)

	store, err := NewStore(Config{URL: srv.URL})
	require.NoError(t, err)
	t.Cleanup(store.Close)

	ctx := context.Background()
	c, err := store.CreateCollection(ctx, "req-1", 2)
	require.NoError(t, err)
	require.NoError(t, c.Drop(ctx))

	_, err = c.Query(ctx, vector.HybridQuery{Dense: []float32{1, 0}, Limit: 1})
	assert.ErrorIs(t, err, vector.ErrCollectionNotFound)
}

func TestNewStoreRequiresURL(t *testing.T) {
	_, err := NewStore(Config{})
	assert.Error(t, err)
}
