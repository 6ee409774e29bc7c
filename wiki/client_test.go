package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(WithBaseURL(srv.URL), WithFetchInterval(0))
	return client, srv
}

func TestSearchTopics(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/w/rest.php/v1/search/page", r.URL.Path)
		assert.Equal(t, "capital france", r.URL.Query().Get("q"))
		assert.Equal(t, "4", r.URL.Query().Get("limit"), "one extra candidate for the disambiguation skip")

		_, _ = w.Write([]byte(`{"pages": [
			{"key": "Paris", "title": "Paris", "description": "Capital of France"},
			{"key": "Paris_(disambiguation)", "title": "Paris (disambiguation)", "description": "Topics referred to by the same term"},
			{"key": "Capital_city", "title": "Capital city", "description": "Seat of government"},
			{"key": "France", "title": "France", "description": "Country in Europe"}
		]}`))
	}))

	keys, err := client.SearchTopics(context.Background(), []string{"capital", "france"}, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"Paris", "Capital_city", "France"}, keys, "ranking order preserved, disambiguation skipped")
	assert.Equal(t, 1, calls, "exactly one outbound request per call")
}

func TestSearchTopicsCapsAtN(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pages": [
			{"key": "A"}, {"key": "B"}, {"key": "C"}
		]}`))
	}))

	keys, err := client.SearchTopics(context.Background(), []string{"x"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, keys)
}

func TestSearchTopicsUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	keys, err := client.SearchTopics(context.Background(), []string{"x"}, 3)
	assert.Error(t, err)
	assert.Empty(t, keys)
}

func TestSearchTopicsNoKeywords(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty keyword list")
	}))

	keys, err := client.SearchTopics(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFetchPages(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/Paris"):
			_, _ = w.Write([]byte("<html><body><h1>Paris</h1><p>Capital of <b>France</b>.</p></body></html>"))
		case strings.HasSuffix(r.URL.Path, "/Missing"):
			w.WriteHeader(http.StatusNotFound)
		case strings.HasSuffix(r.URL.Path, "/France"):
			_, _ = w.Write([]byte("<html><body><p>Country in Europe.</p></body></html>"))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	var keys []string
	var docs []string
	for key, text := range client.FetchPages(context.Background(), []string{"Paris", "Missing", "France"}) {
		keys = append(keys, key)
		docs = append(docs, text)
	}

	require.Equal(t, []string{"Paris", "France"}, keys, "failed fetches are silently skipped")
	assert.Contains(t, docs[0], "Paris")
	assert.Contains(t, docs[0], "**France**", "rendered HTML is converted to markdown")
	assert.Contains(t, docs[1], "Country in Europe.")
}

func TestFetchPagesEnforcesDelay(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>x</p>"))
	}))
	// Re-arm with a measurable interval.
	WithFetchInterval(50 * time.Millisecond)(client)

	start := time.Now()
	count := 0
	for range client.FetchPages(context.Background(), []string{"A", "B", "C"}) {
		count++
	}

	require.Equal(t, 3, count)
	// First fetch is immediate; the two following waits cost >= 100ms.
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestFetchPagesHonorsCancellation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>x</p>"))
	}))
	WithFetchInterval(time.Hour)(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() {
		n := 0
		for range client.FetchPages(ctx, []string{"A", "B"}) {
			n++
		}
		done <- n
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case n := <-done:
		assert.LessOrEqual(t, n, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("fetch sequence did not stop on cancellation")
	}
}

func TestFetchPagesIsLazy(t *testing.T) {
	fetched := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched++
		_, _ = w.Write([]byte("<p>x</p>"))
	}))

	for range client.FetchPages(context.Background(), []string{"A", "B", "C"}) {
		break // consumer stops early
	}
	assert.Equal(t, 1, fetched, "pages are fetched on demand, not eagerly")
}

func TestArticleURL(t *testing.T) {
	client := NewClient()
	assert.Equal(t, "https://en.wikipedia.org/wiki/Paris", client.ArticleURL("Paris"))

	de := NewClient(WithLanguage("de"))
	assert.Equal(t, "https://de.wikipedia.org/wiki/Paris", de.ArticleURL("Paris"))
}
