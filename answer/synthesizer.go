// Package answer turns retrieved context into a grounded model answer.
// The generative model is instructed to answer strictly from the supplied
// passages and to admit when they do not contain the answer.
package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/core"
)

const systemInstruction = `
You are an assistant that answers questions strictly based on the CONTEXTS below.
Do not use external knowledge or guess. If the answer is missing, say: "I don't know the answer."
Keep responses concise (1-2 sentences unless more detail is needed).
`

// Synthesizer generates grounded answers from retrieved chunks.
type Synthesizer struct {
	generator ai.Generator
	sourceURL func(key string) string
	log       *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSourceURL sets the mapping from a chunk's source key to the URL
// reported in the answer. Defaults to the identity mapping.
func WithSourceURL(fn func(key string) string) Option {
	return func(s *Synthesizer) { s.sourceURL = fn }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Synthesizer) { s.log = log }
}

// NewSynthesizer creates a synthesizer backed by the given generator.
func NewSynthesizer(generator ai.Generator, opts ...Option) (*Synthesizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	s := &Synthesizer{
		generator: generator,
		sourceURL: func(key string) string { return key },
		log:       slog.Default().With("component", "answer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Synthesize asks the generative model to answer query using only the given
// chunks. The chunks are embedded into the system turn in retrieval order,
// each wrapped in its own CONTEXT delimiter. Sources are deduplicated;
// their order in the result is not guaranteed to follow retrieval order.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, chunks []core.RetrievedChunk) (*core.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: buildSystemPrompt(chunks)},
		{Role: ai.RoleUser, Content: query},
	}

	result, err := s.generator.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	s.log.Debug("answer generated",
		"contextChunks", len(chunks),
		"completionTokens", result.Usage.CompletionTokens)

	return &core.Answer{
		Answer:  result.Text,
		Sources: s.collectSources(chunks),
		Usage:   core.Usage(result.Usage),
	}, nil
}

func buildSystemPrompt(chunks []core.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString(systemInstruction)
	for _, ch := range chunks {
		b.WriteString("\n\n<CONTEXT>\n")
		b.WriteString(ch.Text)
		b.WriteString("\n</CONTEXT>")
	}
	return b.String()
}

func (s *Synthesizer) collectSources(chunks []core.RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		if _, ok := seen[ch.Source]; ok {
			continue
		}
		seen[ch.Source] = struct{}{}
		sources = append(sources, s.sourceURL(ch.Source))
	}
	return sources
}
