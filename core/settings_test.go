package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())
}

func TestSettingsValidate(t *testing.T) {
	valid := DefaultSettings()

	t.Run("results per search out of range", func(t *testing.T) {
		s := valid
		s.ResultsPerSearch = 0
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

		s.ResultsPerSearch = 11
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("chunk length out of range", func(t *testing.T) {
		s := valid
		s.ChunkLength = 99
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

		s.ChunkLength = 10001
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("overlap must stay below length", func(t *testing.T) {
		s := valid
		s.ChunkLength = 100
		s.ChunkOverlap = 100
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

		s.ChunkOverlap = 99
		assert.NoError(t, s.Validate())
	})

	t.Run("negative overlap rejected", func(t *testing.T) {
		s := valid
		s.ChunkOverlap = -1
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("top-k out of range", func(t *testing.T) {
		s := valid
		s.TopK = 17
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		s := valid
		s.Threshold = 0.76
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

		s.Threshold = -0.01
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("spelling distance out of range", func(t *testing.T) {
		s := valid
		s.SpellingDistance = 3
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("unknown generative model", func(t *testing.T) {
		s := valid
		s.GenerativeModel = "gpt-5"
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		s := Settings{
			ResultsPerSearch: 10,
			ChunkLength:      10000,
			ChunkOverlap:     2000,
			TopK:             16,
			Threshold:        0.75,
			SpellingDistance: 2,
			GenerativeModel:  "qwen/qwen3-32b",
		}
		assert.NoError(t, s.Validate())
	})
}

func TestSettingsJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(DefaultSettings())
	require.NoError(t, err)

	// The on-disk schema uses the original config.json field names.
	assert.Contains(t, string(data), `"configResultNumberPerPage":3`)
	assert.Contains(t, string(data), `"configGenerativeModel":"llama-3.3-70b-versatile"`)

	var s Settings
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, DefaultSettings(), s)
}

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("capital of France")
	b := IDFromContent("capital of France")
	c := IDFromContent("capital of Italy")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestChunkIDDistinguishesSources(t *testing.T) {
	a := Chunk{Text: "same text", Source: "Paris"}
	b := Chunk{Text: "same text", Source: "Lyon"}
	assert.NotEqual(t, a.ID(), b.ID())
}
