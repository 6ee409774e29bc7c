package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "question words and articles are dropped",
			text: "What is the capital of France?",
			want: []string{"capital", "france"},
		},
		{
			name: "punctuation separates words",
			text: "Paris,France:Europe.continent",
			want: []string{"paris", "france", "europe", "continent"},
		},
		{
			name: "order preserved and duplicates kept",
			text: "rivers of France, rivers of Spain",
			want: []string{"rivers", "france", "rivers", "spain"},
		},
		{
			name: "all stopwords yields nothing",
			text: "what is the",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractKeywords(tc.text))
		})
	}
}

func TestTopicKeywordsBypassesFiltering(t *testing.T) {
	assert.Equal(t, []string{"The", "Eiffel", "Tower"}, TopicKeywords("The Eiffel Tower"))
	assert.Empty(t, TopicKeywords("   "))
	assert.Empty(t, TopicKeywords(""))
}
