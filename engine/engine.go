// Package engine answers questions over a corpus in two passes: files are
// ranked by tf-idf against the whole corpus, then the sentences of the best
// files are ranked against IDF values computed over those sentences alone.
package engine

import (
	"fmt"
	"slices"

	"goqa/slog"
	"goqa/tfIndex"
	"goqa/tokenizer"
)

// Engine holds a tokenized corpus snapshot. It is immutable after New and
// safe for concurrent Answer calls.
type Engine struct {
	contents  map[string]string
	files     *tfIndex.SimpleTFINdex
	words     tokenizer.WordTokenizer
	sentences tokenizer.SentenceSegmenter
}

type Option func(*Engine)

// WithTokenizer replaces the default English word tokenizer.
func WithTokenizer(words tokenizer.WordTokenizer) Option {
	return func(engine *Engine) { engine.words = words }
}

// WithSegmenter replaces the default Punkt sentence segmenter.
func WithSegmenter(sentences tokenizer.SentenceSegmenter) Option {
	return func(engine *Engine) { engine.sentences = sentences }
}

// Answer is the outcome of a single question.
type Answer struct {
	Query     []string                 `json:"query"`
	Files     []tfIndex.QueryResult    `json:"files"`
	Sentences []tfIndex.SentenceResult `json:"sentences"`
}

// Texts returns the answered sentences in rank order.
func (answer Answer) Texts() []string {
	texts := make([]string, 0, len(answer.Sentences))
	for _, sentence := range answer.Sentences {
		texts = append(texts, sentence.Text)
	}
	return texts
}

// New tokenizes every document of corpus, in identifier order, and computes
// the file-level IDF table.
func New(corpus map[string]string, opts ...Option) (*Engine, error) {
	engine := &Engine{
		contents: make(map[string]string, len(corpus)),
		words:    tokenizer.NewEnglish(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.sentences == nil {
		punkt, err := tokenizer.NewPunkt()
		if err != nil {
			return nil, fmt.Errorf("engine.New: %w", err)
		}
		engine.sentences = punkt
	}

	names := make([]string, 0, len(corpus))
	for name := range corpus {
		names = append(names, name)
	}
	slices.Sort(names)
	docs := make([]tfIndex.Document, 0, len(names))
	for _, name := range names {
		engine.contents[name] = corpus[name]
		docs = append(docs, tfIndex.Document{ID: name, Tokens: engine.words.Words(corpus[name])})
	}
	files, err := tfIndex.NewSimpleTFIndex(docs)
	if err != nil {
		return nil, fmt.Errorf("engine.New: %w", err)
	}
	engine.files = files
	slog.Debugf("Indexed %d files, %d words, %d distinct", files.Len(), files.Words(), files.Vocabulary())
	return engine, nil
}

// Files lists the corpus identifiers in ranking tie-break order.
func (engine *Engine) Files() []string {
	return engine.files.IDs()
}

func (engine *Engine) Len() int {
	return engine.files.Len()
}

// Query tokenizes text into a query word set.
func (engine *Engine) Query(text string) tfIndex.Query {
	return tfIndex.NewQuery(engine.words.Words(text))
}

// Sentences splits the given files into passages (lines) and sentences and
// tokenizes them. Sentences without tokens are dropped and a sentence seen
// twice keeps its first position.
func (engine *Engine) Sentences(files []string) []tfIndex.Document {
	var sentences []tfIndex.Document
	seen := map[string]struct{}{}
	for _, name := range files {
		for passage := range tokenizer.Passages(engine.contents[name]) {
			for sentence := range engine.sentences.Sentences(passage) {
				if _, ok := seen[sentence]; ok {
					continue
				}
				tokens := engine.words.Words(sentence)
				if len(tokens) == 0 {
					continue
				}
				seen[sentence] = struct{}{}
				sentences = append(sentences, tfIndex.Document{ID: sentence, Tokens: tokens})
			}
		}
	}
	return sentences
}

// Answer returns the sentenceMatches best sentences from the fileMatches best
// files for question. When the chosen files hold no usable sentence the answer
// has files but no sentences.
func (engine *Engine) Answer(question string, fileMatches, sentenceMatches int) (Answer, error) {
	query := engine.Query(question)
	answer := Answer{Query: query.Words()}
	answer.Files = engine.files.QueryTopN(query, fileMatches)
	if slog.DebugEnabled() {
		engine.explain(query, answer.Files)
	}

	names := make([]string, 0, len(answer.Files))
	for _, file := range answer.Files {
		names = append(names, file.DocID)
	}
	sentences := engine.Sentences(names)
	if len(sentences) == 0 {
		slog.Warnf("No sentences found in %v", names)
		return answer, nil
	}
	idfs, err := tfIndex.ComputeIDFs(sentences)
	if err != nil {
		return answer, fmt.Errorf("Engine.Answer: %w", err)
	}
	ranked := tfIndex.RankSentences(query, sentences, idfs)
	answer.Sentences = ranked[:max(0, min(sentenceMatches, len(ranked)))]
	return answer, nil
}

// explain logs how every query word weighs in the file pass and how often it
// occurs in each chosen file.
func (engine *Engine) explain(query tfIndex.Query, files []tfIndex.QueryResult) {
	for _, word := range query.Words() {
		idf, ok := engine.files.IDF(word)
		if !ok {
			slog.Debugf("Query word `%s` is not in the corpus", word)
			continue
		}
		slog.Debugf("Query word `%s`: idf %.4f, in %d of %d files", word, idf, engine.files.DF(word), engine.files.Len())
	}
	for _, file := range files {
		slog.Debugf("File `%s` scored %.4f", file.DocID, file.Score)
		for _, word := range query.Words() {
			if tf := engine.files.TF(file.DocID, word); tf > 0 {
				slog.Debugf("File `%s` has `%s` %d times", file.DocID, word, tf)
			}
		}
	}
}
