package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/wikiq/ai"
)

// Generator implements ai.Generator against the Groq chat completions API.
type Generator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithHTTPClient sets a custom HTTP client. Default has a 60s timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Generator) {
		if client != nil {
			g.client = client
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a generator for the configured model.
// A missing API key is a precondition failure: ai.ErrMissingAPIKey is
// returned before any request could be sent.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config, opts ...Option) (ai.Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, ai.ErrMissingAPIKey
	}

	g := &Generator{
		baseURL: strings.TrimRight(config.GenerativeHost, "/"),
		apiKey:  config.APIKey,
		model:   config.GenerativeModel,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  slog.Default().With("component", "groq-generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []ai.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage ai.Usage `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate performs exactly one chat completion call.
// Non-success statuses map onto the ai error taxonomy; no retry or backoff
// is attempted here.
func (g *Generator) Generate(ctx context.Context, messages []ai.Message) (*ai.Result, error) {
	body, err := json.Marshal(chatRequest{Model: g.model, Messages: messages})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("chat completion request failed", "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, g.statusError(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding chat completion: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contained no choices", ai.ErrBadRequest)
	}

	g.logger.Debug("chat completion",
		"model", g.model,
		"duration", time.Since(start),
		"prompt_tokens", parsed.Usage.PromptTokens,
		"completion_tokens", parsed.Usage.CompletionTokens,
	)

	return &ai.Result{
		Text:  parsed.Choices[0].Message.Content,
		Usage: parsed.Usage,
	}, nil
}

// statusError maps an upstream failure status onto the package taxonomy.
// The upstream message is preserved in the wrap for logs and operators.
func (g *Generator) statusError(resp *http.Response) error {
	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = ai.ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ai.ErrAuthentication
	case http.StatusForbidden:
		sentinel = ai.ErrPermissionDenied
	case http.StatusTooManyRequests:
		sentinel = ai.ErrRateLimited
	default:
		return fmt.Errorf("chat completion failed: %s", resp.Status)
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed errorResponse
	if json.Unmarshal(data, &parsed) == nil && parsed.Error.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, parsed.Error.Message)
	}
	return fmt.Errorf("%w: %s", sentinel, resp.Status)
}
