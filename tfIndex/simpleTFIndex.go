package tfIndex

import (
	"fmt"
	"slices"
)

// SimpleTFINdex is an immutable, pre-tokenized collection together with the
// IDF table computed over it. It is safe for concurrent readers.
type SimpleTFINdex struct {
	docs  []Document
	byID  map[string]int
	tfs   []map[string]uint
	idfs  map[string]float64
	words uint
}

// NewSimpleTFIndex indexes docs in the given order. Identifiers must be unique.
func NewSimpleTFIndex(docs []Document) (*SimpleTFINdex, error) {
	idfs, err := ComputeIDFs(docs)
	if err != nil {
		return nil, fmt.Errorf("NewSimpleTFIndex: %w", err)
	}
	index := &SimpleTFINdex{
		docs: slices.Clone(docs),
		byID: make(map[string]int, len(docs)),
		tfs:  make([]map[string]uint, len(docs)),
		idfs: idfs,
	}
	for i, doc := range docs {
		if _, ok := index.byID[doc.ID]; ok {
			return nil, fmt.Errorf("NewSimpleTFIndex: duplicate document `%s`", doc.ID)
		}
		index.byID[doc.ID] = i
		index.tfs[i] = TermFrequency(doc.Tokens)
		index.words += uint(len(doc.Tokens))
	}
	return index, nil
}

func (simpleTFINdex *SimpleTFINdex) TF(docId string, token string) uint {
	i, ok := simpleTFINdex.byID[docId]
	if !ok {
		return 0
	}
	return simpleTFINdex.tfs[i][token]
}

func (simpleTFINdex *SimpleTFINdex) DF(token string) uint {
	df := uint(0)
	for _, tf := range simpleTFINdex.tfs {
		if _, ok := tf[token]; ok {
			df++
		}
	}
	return df
}

// IDF returns the stored IDF of token and whether the token was seen at all.
func (simpleTFINdex *SimpleTFINdex) IDF(token string) (float64, bool) {
	idf, ok := simpleTFINdex.idfs[token]
	return idf, ok
}

// IDs lists document identifiers in index order.
func (simpleTFINdex *SimpleTFINdex) IDs() []string {
	ids := make([]string, 0, len(simpleTFINdex.docs))
	for _, doc := range simpleTFINdex.docs {
		ids = append(ids, doc.ID)
	}
	return ids
}

func (simpleTFINdex *SimpleTFINdex) Len() int {
	return len(simpleTFINdex.docs)
}

// Vocabulary is the number of distinct words across the collection.
func (simpleTFINdex *SimpleTFINdex) Vocabulary() int {
	return len(simpleTFINdex.idfs)
}

// Words is the number of token occurrences across the collection.
func (simpleTFINdex *SimpleTFINdex) Words() uint {
	return simpleTFINdex.words
}

func (simpleTFIndex *SimpleTFINdex) Query(query Query) []QueryResult {
	return RankFiles(query, simpleTFIndex.docs, simpleTFIndex.idfs)
}

func (simpleTFIndex *SimpleTFINdex) QueryTopN(query Query, topN int) []QueryResult {
	results := simpleTFIndex.Query(query)
	return results[:clamp(topN, len(results))]
}
