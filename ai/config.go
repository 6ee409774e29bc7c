// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the dense embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier used for dense text embeddings.
	// Example: "nomic-embed-text", "text-embedding-3-small"
	EmbeddingModel string

	// EmbeddingDimension is the output dimensionality of the embedding model.
	// The vector collection is sized to this value.
	EmbeddingDimension int

	// GenerativeHost is the base URL for the chat completions API.
	// Example: "https://api.groq.com/openai/v1"
	GenerativeHost string

	// GenerativeModel is the model identifier used for answer synthesis.
	// Example: "llama-3.3-70b-versatile"
	GenerativeModel string

	// APIKey authenticates requests to the generative service.
	APIKey string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier and dimensionality.
func WithEmbeddingModel(model string, dimension int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
		c.EmbeddingDimension = dimension
	}
}

// WithGenerativeHost sets the chat completions host URL.
func WithGenerativeHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerativeHost = host
	}
}

// WithGenerativeModel sets the generative model identifier.
func WithGenerativeModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerativeModel = model
	}
}

// WithAPIKey sets the generative API credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// DefaultConfig returns a Config with sensible defaults: a local
// OpenAI-compatible embedding server and the Groq chat completions API.
// The API key has no default and must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:      "http://localhost:11434/v1",
		EmbeddingModel:     "nomic-embed-text",
		EmbeddingDimension: 768,
		GenerativeHost:     "https://api.groq.com/openai/v1",
		GenerativeModel:    "llama-3.3-70b-versatile",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is complete and normalized.
// The API key is deliberately not validated here; only the generative
// client requires it and raises ErrMissingAPIKey itself.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.EmbeddingHost) == "" {
		return errors.New("embedding host required")
	}
	if strings.TrimSpace(c.EmbeddingModel) == "" {
		return errors.New("embedding model required")
	}
	if c.EmbeddingDimension <= 0 {
		return errors.New("embedding dimension must be positive")
	}
	if strings.TrimSpace(c.GenerativeHost) == "" {
		return errors.New("generative host required")
	}
	if strings.TrimSpace(c.GenerativeModel) == "" {
		return errors.New("generative model required")
	}
	return nil
}
