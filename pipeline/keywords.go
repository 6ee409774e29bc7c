package pipeline

import "strings"

// stopwords is the English function-word set excluded from topic search.
// Filtering these keeps the search query focused on content-bearing terms.
var stopwords = func() map[string]struct{} {
	words := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're", "you've", "you'll", "you'd",
		"your", "yours", "yourself", "yourselves", "he", "him", "his", "himself", "she", "she's", "her", "hers", "herself",
		"it", "it's", "its", "itself", "they", "them", "their", "theirs", "themselves", "what", "which", "who", "whom",
		"this", "that", "that'll", "these", "those", "am", "is", "are", "was", "were", "be", "been", "being", "have",
		"has", "had", "having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if", "or", "because", "as",
		"until", "while", "of", "at", "by", "for", "with", "about", "against", "between", "into", "through", "during",
		"before", "after", "above", "below", "to", "from", "up", "down", "in", "out", "on", "off", "over", "under", "again",
		"further", "then", "once", "here", "there", "when", "where", "why", "how", "all", "any", "both", "each", "few",
		"more", "most", "other", "some", "such", "no", "nor", "not", "only", "own", "same", "so", "than", "too", "very", "s",
		"t", "can", "will", "just", "don", "don't", "should", "should've", "now", "d", "ll", "m", "o", "re", "ve", "y",
		"ain", "aren", "aren't", "couldn", "couldn't", "didn", "didn't", "doesn", "doesn't", "hadn", "hadn't", "hasn",
		"hasn't", "haven", "haven't", "isn", "isn't", "ma", "mightn", "mightn't", "mustn", "mustn't", "needn", "needn't",
		"shan", "shan't", "shouldn", "shouldn't", "wasn", "wasn't", "weren", "weren't", "won", "won't", "wouldn", "wouldn't",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

var punctReplacer = strings.NewReplacer(",", " ", ".", " ", ":", " ", "?", " ")

// ExtractKeywords lowercases the text, treats commas, periods, colons and
// question marks as separators, and returns the remaining words with
// stopwords removed. Word order is preserved and duplicates are kept.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, word := range strings.Fields(punctReplacer.Replace(strings.ToLower(text))) {
		if _, stop := stopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// TopicKeywords splits a user-supplied topic hint on whitespace. The hint is
// trusted as-is: no lowercasing, no stopword filtering.
func TopicKeywords(hint string) []string {
	return strings.Fields(hint)
}
