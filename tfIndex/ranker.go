package tfIndex

import (
	"cmp"
	"slices"
)

// RankFiles scores every file by the sum of tf(w) * idf(w) over the query
// words it contains and returns them best first. Query words missing from the
// file or from idfs add nothing. Equal scores keep the order of files.
func RankFiles(query Query, files []Document, idfs map[string]float64) []QueryResult {
	ret := make([]QueryResult, 0, len(files))
	for _, file := range files {
		tf := map[string]uint{}
		for _, token := range file.Tokens {
			if query.Contains(token) {
				tf[token]++
			}
		}
		tfIdf := 0.0
		for _, word := range query.words {
			freq, ok := tf[word]
			if !ok {
				continue
			}
			if idf, ok := idfs[word]; ok {
				tfIdf += float64(freq) * idf
			}
		}
		ret = append(ret, QueryResult{DocID: file.ID, Score: tfIdf})
	}
	slices.SortStableFunc(ret, func(a, b QueryResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ret
}

// TopFiles returns the identifiers of the n best files for query.
func TopFiles(query Query, files []Document, idfs map[string]float64, n int) []string {
	results := RankFiles(query, files, idfs)
	ret := make([]string, 0, clamp(n, len(results)))
	for _, result := range results[:clamp(n, len(results))] {
		ret = append(ret, result.DocID)
	}
	return ret
}

// RankSentences scores every sentence by the idf sum of the distinct query
// words it contains, then by query term density, and returns them best first.
// Sentences equal on both keys keep their order.
func RankSentences(query Query, sentences []Document, idfs map[string]float64) []SentenceResult {
	ret := make([]SentenceResult, 0, len(sentences))
	for _, sentence := range sentences {
		matching := 0
		present := map[string]struct{}{}
		for _, token := range sentence.Tokens {
			if query.Contains(token) {
				matching++
				present[token] = struct{}{}
			}
		}
		matchingIDF := 0.0
		for _, word := range query.words {
			if _, ok := present[word]; !ok {
				continue
			}
			matchingIDF += idfs[word]
		}
		density := 0.0
		if len(sentence.Tokens) > 0 {
			density = float64(matching) / float64(len(sentence.Tokens))
		}
		ret = append(ret, SentenceResult{Text: sentence.ID, MatchingIDF: matchingIDF, Density: density})
	}
	slices.SortStableFunc(ret, func(a, b SentenceResult) int {
		if c := cmp.Compare(b.MatchingIDF, a.MatchingIDF); c != 0 {
			return c
		}
		return cmp.Compare(b.Density, a.Density)
	})
	return ret
}

// TopSentences returns the text of the n best sentences for query. Sentences
// without tokens must be filtered out by the caller.
func TopSentences(query Query, sentences []Document, idfs map[string]float64, n int) []string {
	results := RankSentences(query, sentences, idfs)
	ret := make([]string, 0, clamp(n, len(results)))
	for _, result := range results[:clamp(n, len(results))] {
		ret = append(ret, result.Text)
	}
	return ret
}

func clamp(n int, size int) int {
	return max(0, min(n, size))
}
