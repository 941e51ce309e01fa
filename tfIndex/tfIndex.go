package tfIndex

import "slices"

// Document is one unit of a collection: a file or a sentence together with
// its token sequence. Collections are slices so that their order can break
// ranking ties.
type Document struct {
	ID     string
	Tokens []string
}

// QueryResult is a file together with its summed tf-idf score.
type QueryResult struct {
	DocID string  `json:"id"`
	Score float64 `json:"score"`
}

// SentenceResult is a sentence with the two keys it is ranked by.
type SentenceResult struct {
	Text        string  `json:"text"`
	MatchingIDF float64 `json:"idf"`
	Density     float64 `json:"density"`
}

// Query is a set of distinct words. Words are kept sorted so that scores are
// always summed in the same order.
type Query struct {
	words []string
	set   map[string]struct{}
}

func NewQuery(tokens []string) Query {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	words := make([]string, 0, len(set))
	for word := range set {
		words = append(words, word)
	}
	slices.Sort(words)
	return Query{words: words, set: set}
}

func (query Query) Contains(word string) bool {
	_, ok := query.set[word]
	return ok
}

func (query Query) Words() []string {
	return slices.Clone(query.words)
}

func (query Query) Len() int {
	return len(query.words)
}

func TermFrequency(tokens []string) map[string]uint {
	ret := map[string]uint{}
	for _, token := range tokens {
		ret[token] += 1
	}
	return ret
}
