package tokenizer

import (
	"strings"
	"unicode"
)

// Stopwords is the NLTK English stopword list.
var Stopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're",
	"you've", "you'll", "you'd", "your", "yours", "yourself", "yourselves", "he",
	"him", "his", "himself", "she", "she's", "her", "hers", "herself", "it", "it's",
	"its", "itself", "they", "them", "their", "theirs", "themselves", "what",
	"which", "who", "whom", "this", "that", "that'll", "these", "those", "am", "is",
	"are", "was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if", "or",
	"because", "as", "until", "while", "of", "at", "by", "for", "with", "about",
	"against", "between", "into", "through", "during", "before", "after", "above",
	"below", "to", "from", "up", "down", "in", "out", "on", "off", "over", "under",
	"again", "further", "then", "once", "here", "there", "when", "where", "why",
	"how", "all", "any", "both", "each", "few", "more", "most", "other", "some",
	"such", "no", "nor", "not", "only", "own", "same", "so", "than", "too", "very",
	"s", "t", "can", "will", "just", "don", "don't", "should", "should've", "now",
	"d", "ll", "m", "o", "re", "ve", "y", "ain", "aren", "aren't", "couldn",
	"couldn't", "didn", "didn't", "doesn", "doesn't", "hadn", "hadn't", "hasn",
	"hasn't", "haven", "haven't", "isn", "isn't", "ma", "mightn", "mightn't",
	"mustn", "mustn't", "needn", "needn't", "shan", "shan't", "shouldn",
	"shouldn't", "wasn", "wasn't", "weren", "weren't", "won", "won't", "wouldn",
	"wouldn't",
}

// English lowercases words and drops punctuation and stopwords.
type English struct {
	stopwords    map[string]struct{}
	newTokenizer func(string) Tokenizer
}

// NewEnglish builds an English word tokenizer. Extra stopwords are added to
// the NLTK list.
func NewEnglish(extraStopwords ...string) *English {
	stopwords := make(map[string]struct{}, len(Stopwords)+len(extraStopwords))
	for _, word := range Stopwords {
		stopwords[word] = struct{}{}
	}
	for _, word := range extraStopwords {
		stopwords[strings.ToLower(strings.TrimSpace(word))] = struct{}{}
	}
	return &English{
		stopwords: stopwords,
		newTokenizer: func(text string) Tokenizer {
			return SimpleTokenizerFromString(text)
		},
	}
}

// Words returns the content words of text in order. Duplicates are kept.
func (english *English) Words(text string) []string {
	words := []string{}
	tokens := english.newTokenizer(strings.ToLower(text))
	for tokens.Contains() {
		token := tokens.NextToken()
		if !IsWord(token) || english.IsStopword(token) {
			continue
		}
		words = append(words, token)
	}
	return words
}

// IsStopword reports whether word (already lowercased) is filtered out.
func (english *English) IsStopword(word string) bool {
	_, ok := english.stopwords[word]
	return ok
}

// IsWord reports whether token holds at least one letter or number. Tokens
// made of punctuation, symbols, format runes or stray marks are not words.
func IsWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

var defaultEnglish = NewEnglish()

// Words tokenizes text with the default English tokenizer.
func Words(text string) []string {
	return defaultEnglish.Words(text)
}
