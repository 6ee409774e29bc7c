package lexical

import (
	"hash/fnv"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/poiesic/wikiq/ai"
)

// SparseEmbedder implements ai.SparseEmbedder with a hashed log-TF scheme.
// Each term is mapped to a 32-bit hash bucket and weighted by log(1+tf),
// L2-normalized. The representation is deterministic and needs no corpus
// preparation, which suits the throwaway per-request index: the sparse rank
// reduces to term overlap between query and chunk.
type SparseEmbedder struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewSparseEmbedder creates a sparse embedder.
//
// Returns the concrete type; the zero-configuration constructor has no
// failure modes.
func NewSparseEmbedder() *SparseEmbedder {
	return &SparseEmbedder{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
		stopwords:    defaultStopwords(),
	}
}

// EmbedSparse generates the sparse vector for the given text.
// Texts with no indexable term yield an empty vector.
func (e *SparseEmbedder) EmbedSparse(text string) ai.SparseVector {
	tf := make(map[uint32]int)
	for _, tok := range e.tokenize(text) {
		tf[hashTerm(tok)]++
	}
	if len(tf) == 0 {
		return ai.SparseVector{}
	}

	indices := make([]uint32, 0, len(tf))
	for idx := range tf {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float32, len(indices))
	var norm float64
	for i, idx := range indices {
		w := math.Log1p(float64(tf[idx]))
		values[i] = float32(w)
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range values {
		values[i] = float32(float64(values[i]) / norm)
	}

	return ai.SparseVector{Indices: indices, Values: values}
}

func (e *SparseEmbedder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func hashTerm(term string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(term))
	return h.Sum32()
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "than", "so", "such", "into",
		"about", "between", "through", "during", "before", "after", "too",
		"very", "can", "will", "just", "not", "no", "nor",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
