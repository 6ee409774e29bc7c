package lexical

import (
	"testing"

	"github.com/poiesic/wikiq/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedSparseDeterministic(t *testing.T) {
	e := NewSparseEmbedder()

	a := e.EmbedSparse("Paris is the capital of France")
	b := e.EmbedSparse("Paris is the capital of France")

	assert.Equal(t, a, b)
}

func TestEmbedSparseEmptyText(t *testing.T) {
	e := NewSparseEmbedder()

	assert.True(t, e.EmbedSparse("").IsEmpty())
	assert.True(t, e.EmbedSparse("the of and").IsEmpty(), "stopword-only text yields no terms")
}

func TestEmbedSparseNormalized(t *testing.T) {
	e := NewSparseEmbedder()

	v := e.EmbedSparse("paris france capital paris")
	require.False(t, v.IsEmpty())
	require.Len(t, v.Values, len(v.Indices))

	var norm float64
	for _, val := range v.Values {
		norm += float64(val) * float64(val)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)
}

func TestEmbedSparseIndicesSortedUnique(t *testing.T) {
	e := NewSparseEmbedder()

	v := e.EmbedSparse("history geography population economy culture climate")
	require.False(t, v.IsEmpty())
	for i := 1; i < len(v.Indices); i++ {
		assert.Less(t, v.Indices[i-1], v.Indices[i])
	}
}

func TestEmbedSparseTermOverlapScoring(t *testing.T) {
	e := NewSparseEmbedder()

	query := e.EmbedSparse("capital france")
	hit := e.EmbedSparse("paris became the capital city of france")
	miss := e.EmbedSparse("photosynthesis converts sunlight")

	assert.Greater(t, dot(query, hit), dot(query, miss))
	assert.InDelta(t, 0, dot(query, miss), 1e-9)
}

func TestEmbedSparseCaseInsensitive(t *testing.T) {
	e := NewSparseEmbedder()

	assert.Equal(t, e.EmbedSparse("PARIS France"), e.EmbedSparse("paris france"))
}

// dot computes the sparse dot product by merging the sorted index slices.
func dot(a, b ai.SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += float64(a.Values[i]) * float64(b.Values[j])
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
