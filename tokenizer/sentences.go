package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Punkt segments sentences with the pretrained English Punkt model, so
// abbreviations such as "Mr." do not end a sentence.
type Punkt struct {
	// The upstream tokenizer makes no concurrency guarantees.
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunkt loads the English Punkt model.
func NewPunkt() (*Punkt, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("NewPunkt: cannot load the english model: %w", err)
	}
	return &Punkt{tokenizer: tokenizer}, nil
}

// Sentences yields the trimmed, non-empty sentences of text. Segmentation runs
// when the sequence is ranged over, every time it is ranged over.
func (punkt *Punkt) Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		punkt.mu.Lock()
		segmented := punkt.tokenizer.Tokenize(text)
		punkt.mu.Unlock()
		for _, sentence := range segmented {
			trimmed := strings.TrimSpace(sentence.Text)
			if trimmed == "" {
				continue
			}
			if !yield(trimmed) {
				return
			}
		}
	}
}

// Passages splits text into its lines, skipping blank ones.
func Passages(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(text) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}
