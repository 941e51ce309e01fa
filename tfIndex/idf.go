package tfIndex

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyCollection is returned when IDF values are requested for a
// collection without any document.
var ErrEmptyCollection = errors.New("empty collection")

// ComputeIDFs maps every word seen in collection to ln(N / df), where N is the
// number of documents and df the number of documents containing the word.
// Words absent from every document have no entry.
func ComputeIDFs(collection []Document) (map[string]float64, error) {
	if len(collection) == 0 {
		return nil, fmt.Errorf("ComputeIDFs: %w", ErrEmptyCollection)
	}
	docFrequency := map[string]uint{}
	for _, doc := range collection {
		for word := range TermFrequency(doc.Tokens) {
			docFrequency[word]++
		}
	}
	total := float64(len(collection))
	idfs := make(map[string]float64, len(docFrequency))
	for word, df := range docFrequency {
		idfs[word] = math.Log(total / float64(df))
	}
	return idfs, nil
}
