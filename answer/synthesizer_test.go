package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/ai/mock"
	"github.com/poiesic/wikiq/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSynthesizerRequiresGenerator(t *testing.T) {
	_, err := NewSynthesizer(nil)
	assert.Equal(t, ErrGeneratorRequired, err)
}

func TestSynthesizeBuildsGroundedPrompt(t *testing.T) {
	gen := mock.NewMockGenerator()
	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	chunks := []core.RetrievedChunk{
		{Text: "Paris is the capital of France.", Source: "Paris", Score: 0.9},
		{Text: "France is a country in Europe.", Source: "France", Score: 0.7},
	}

	_, err = s.Synthesize(context.Background(), "What is the capital of France?", chunks)
	require.NoError(t, err)

	require.Len(t, gen.LastMessages, 2)
	system := gen.LastMessages[0]
	user := gen.LastMessages[1]

	assert.Equal(t, ai.RoleSystem, system.Role)
	assert.Contains(t, system.Content, `If the answer is missing, say: "I don't know the answer."`)
	assert.Contains(t, system.Content, "\n\n<CONTEXT>\nParis is the capital of France.\n</CONTEXT>")
	assert.Contains(t, system.Content, "\n\n<CONTEXT>\nFrance is a country in Europe.\n</CONTEXT>")
	assert.Less(t,
		strings.Index(system.Content, "Paris is the capital"),
		strings.Index(system.Content, "France is a country"),
		"chunks appear in retrieval order")

	assert.Equal(t, ai.RoleUser, user.Role)
	assert.Equal(t, "What is the capital of France?", user.Content)
}

func TestSynthesizeWithoutContext(t *testing.T) {
	gen := mock.NewMockGenerator()
	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	got, err := s.Synthesize(context.Background(), "anything?", nil)
	require.NoError(t, err)

	assert.NotContains(t, gen.LastMessages[0].Content, "<CONTEXT>",
		"no chunks means no context blocks, the model is still asked")
	assert.Empty(t, got.Sources)
}

func TestSynthesizeDeduplicatesSources(t *testing.T) {
	gen := mock.NewMockGenerator()
	s, err := NewSynthesizer(gen, WithSourceURL(func(key string) string {
		return "https://en.wikipedia.org/wiki/" + key
	}))
	require.NoError(t, err)

	chunks := []core.RetrievedChunk{
		{Text: "a", Source: "Paris"},
		{Text: "b", Source: "France"},
		{Text: "c", Source: "Paris"},
	}

	got, err := s.Synthesize(context.Background(), "q", chunks)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"https://en.wikipedia.org/wiki/Paris",
		"https://en.wikipedia.org/wiki/France",
	}, got.Sources)
}

func TestSynthesizePassesUsageThrough(t *testing.T) {
	gen := mock.NewMockGenerator()
	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	got, err := s.Synthesize(context.Background(), "q", nil)
	require.NoError(t, err)

	assert.Equal(t, "mock answer", got.Answer)
	assert.Equal(t, core.Usage{
		CompletionTime:   0.01,
		PromptTime:       0.002,
		TotalTime:        0.012,
		CompletionTokens: 5,
		PromptTokens:     42,
		TotalTokens:      47,
	}, got.Usage)
}

func TestSynthesizeRejectsEmptyQuery(t *testing.T) {
	s, err := NewSynthesizer(mock.NewMockGenerator())
	require.NoError(t, err)

	for _, query := range []string{"", "   "} {
		_, err := s.Synthesize(context.Background(), query, nil)
		assert.ErrorIs(t, err, core.ErrEmptyQuery)
	}
}

func TestSynthesizePropagatesGeneratorErrors(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(ctx context.Context, messages []ai.Message) (*ai.Result, error) {
		return nil, ai.ErrRateLimited
	}

	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "q", nil)
	assert.True(t, errors.Is(err, ai.ErrRateLimited))
}
