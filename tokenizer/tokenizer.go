package tokenizer

import "iter"

type Tokenizer interface {
	// Checks if the Tokenizer still contain tokens
	Contains() bool
	// Returns next token from the tokenizer, also moves to next tokens position
	NextToken() string
	// Returns a slice of tokens from the tokenizer
	Tokens() []string
}

// WordTokenizer turns raw text into the normalized word stream used for ranking.
type WordTokenizer interface {
	Words(text string) []string
}

// SentenceSegmenter splits a passage into sentences. The returned sequence is
// lazy and may be ranged over more than once.
type SentenceSegmenter interface {
	Sentences(text string) iter.Seq[string]
}

var (
	_ Tokenizer         = (*SimpleTokenizer)(nil)
	_ WordTokenizer     = (*English)(nil)
	_ SentenceSegmenter = (*Punkt)(nil)
)
