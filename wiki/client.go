package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/time/rate"
)

const (
	defaultLanguage  = "en"
	defaultUserAgent = "wikiq/1.0 (https://github.com/poiesic/wikiq)"

	// defaultDisambiguationDescription is the search-result description
	// Wikipedia attaches to disambiguation entries. Exact match only; other
	// locales can override it via WithDisambiguationFilter.
	defaultDisambiguationDescription = "Topics referred to by the same term"

	// defaultFetchInterval is the pause between consecutive page fetches.
	// Wikipedia blocks clients that hammer the render endpoint.
	defaultFetchInterval = 500 * time.Millisecond
)

// Client talks to the Wikipedia REST APIs for one language edition.
type Client struct {
	baseURL        string
	language       string
	userAgent      string
	disambiguation string
	limiter        *rate.Limiter
	client         *http.Client
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithLanguage sets the Wikipedia language edition. Default is "en".
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
			c.baseURL = "https://" + lang + ".wikipedia.org"
		}
	}
}

// WithDisambiguationFilter sets the description string that marks a search
// candidate as a disambiguation entry.
func WithDisambiguationFilter(description string) Option {
	return func(c *Client) {
		c.disambiguation = description
	}
}

// WithFetchInterval sets the minimum delay between consecutive page
// fetches. Zero disables the delay (tests only).
func WithFetchInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithHTTPClient sets a custom HTTP client. Default has a 30s timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Wikipedia client for the English edition by default.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:        "https://" + defaultLanguage + ".wikipedia.org",
		language:       defaultLanguage,
		userAgent:      defaultUserAgent,
		disambiguation: defaultDisambiguationDescription,
		limiter:        rate.NewLimiter(rate.Every(defaultFetchInterval), 1),
		client:         &http.Client{Timeout: 30 * time.Second},
		logger:         slog.Default().With("component", "wiki-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Pages []struct {
		Key         string `json:"key"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"pages"`
}

// SearchTopics maps keywords to a ranked list of up to n topic keys.
// Exactly one outbound request is made: n+1 candidates are requested so a
// single disambiguation entry can be skipped without losing a slot. The
// external ranking order is preserved.
func (c *Client) SearchTopics(ctx context.Context, keywords []string, n int) ([]string, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	query := url.Values{
		"q":     {strings.Join(keywords, " ")},
		"limit": {strconv.Itoa(n + 1)},
	}
	endpoint := c.baseURL + "/w/rest.php/v1/search/page?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("topic search failed: %s", resp.Status)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding topic search response: %w", err)
	}

	keys := make([]string, 0, n)
	for _, page := range parsed.Pages {
		if page.Description == c.disambiguation {
			continue
		}
		keys = append(keys, page.Key)
		if len(keys) == n {
			break
		}
	}

	c.logger.Debug("topic search", "keywords", keywords, "hits", len(keys))
	return keys, nil
}

// FetchPages lazily fetches each topic's rendered page and converts it to
// markdown, yielding (key, markdown) pairs in search-ranking order. Failed
// fetches are skipped without retry so one dead page cannot sink the
// request; the sequence is finite and non-restartable. The configured
// inter-fetch delay is enforced between requests, so total latency grows
// linearly with the key count.
func (c *Client) FetchPages(ctx context.Context, keys []string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, key := range keys {
			if err := c.limiter.Wait(ctx); err != nil {
				return
			}

			text, err := c.fetchPage(ctx, key)
			if err != nil {
				c.logger.Warn("skipping page", "key", key, "err", err)
				continue
			}
			if !yield(key, text) {
				return
			}
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, key string) (string, error) {
	endpoint := c.baseURL + "/api/rest_v1/page/html/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page fetch failed: %s", resp.Status)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	markdown, err := htmltomarkdown.ConvertString(string(html))
	if err != nil {
		return "", fmt.Errorf("converting page to markdown: %w", err)
	}
	return markdown, nil
}

// ArticleURL renders the canonical article URL for a topic key.
func (c *Client) ArticleURL(key string) string {
	return "https://" + c.language + ".wikipedia.org/wiki/" + key
}
