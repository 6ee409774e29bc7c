// Package spell provides selective spelling correction for user queries.
// The dictionary is built from the documents fetched for the same request,
// so suggestions stay within the vocabulary the answer will be grounded on.
package spell

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sajari/fuzzy"
)

var wordPattern = regexp.MustCompile(`\p{Ll}+(?:'\p{Ll}+)*`)

// Corrector fixes likely typos in query words up to a configured edit
// distance. A distance of zero disables correction entirely.
type Corrector struct {
	model    *fuzzy.Model
	distance int
}

// NewCorrector builds a corrector with a dictionary trained on docs.
// When distance <= 0 the corrector is a no-op and training is skipped.
func NewCorrector(distance int, docs []string) *Corrector {
	c := &Corrector{distance: distance}
	if distance <= 0 {
		return c
	}

	model := fuzzy.NewModel()
	model.SetDepth(distance)
	model.SetThreshold(1)
	model.SetUseAutocomplete(false)
	for _, doc := range docs {
		model.Train(wordPattern.FindAllString(strings.ToLower(doc), -1))
	}
	c.model = model
	return c
}

// Correct returns the query with eligible words replaced by their best
// suggestion. Words containing an uppercase letter are assumed intentional
// (proper nouns, acronyms) and are left alone; a leading quote does not
// grant that exemption. Words with no suggestion are kept as-is.
func (c *Corrector) Correct(query string) string {
	if c.distance <= 0 || c.model == nil {
		return query
	}

	words := strings.Fields(query)
	for i, word := range words {
		if !correctable(word) {
			continue
		}
		lower := strings.ToLower(word)
		if fixed := c.model.SpellCheck(lower); fixed != "" {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// correctable reports whether a word is subject to correction: all lowercase
// with at least one letter, or opening with a quote character.
func correctable(word string) bool {
	if word == "" {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(word); r == '\'' || r == '"' {
		return true
	}
	hasLower := false
	for _, r := range word {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasLower
}
