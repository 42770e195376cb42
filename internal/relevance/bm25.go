// Package relevance ranks memory content against a query using Okapi BM25
// and term-overlap scoring over pre-tokenized terms.
package relevance

import "math"

// Default BM25 parameters. k1 controls term-frequency saturation, b the
// degree of document-length normalization.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// BM25Batch scores each document against the query terms with Okapi BM25 and
// returns one score per document.
//
// Document frequencies are computed over the documents passed in this call;
// totalDocs and avgDocLen are corpus-wide aggregates supplied by the caller.
// An empty query or document batch yields all zeros, an empty document scores
// 0, and avgDocLen 0 is replaced by 1 to keep length normalization defined.
func BM25Batch(queryTerms []string, docs [][]string, totalDocs int, avgDocLen, k1, b float64) []float64 {
	scores := make([]float64, len(docs))
	if len(queryTerms) == 0 || len(docs) == 0 {
		return scores
	}

	totalDocsF := float64(totalDocs)
	if avgDocLen == 0 {
		avgDocLen = 1.0
	}

	// First pass: per distinct query term, the number of documents in this
	// batch containing it.
	docFreq := make(map[string]int, len(queryTerms))
	for _, term := range queryTerms {
		if _, seen := docFreq[term]; seen {
			continue
		}
		count := 0
		for _, doc := range docs {
			for _, t := range doc {
				if t == term {
					count++
					break
				}
			}
		}
		docFreq[term] = count
	}

	// Second pass: accumulate idf * tf for every query term present in the
	// document. Terms absent from a document contribute nothing.
	for i, doc := range docs {
		if len(doc) == 0 {
			continue
		}

		termFreq := make(map[string]int, len(doc))
		for _, t := range doc {
			termFreq[t]++
		}
		docLen := float64(len(doc))

		var score float64
		for _, term := range queryTerms {
			tf, ok := termFreq[term]
			if !ok {
				continue
			}
			df, ok := docFreq[term]
			if !ok {
				df = 1
			}
			dfF := float64(df)
			idf := math.Log((totalDocsF-dfF+0.5)/(dfF+0.5) + 1.0)
			tfF := float64(tf)
			tfComponent := (tfF * (k1 + 1)) / (tfF + k1*(1-b+b*docLen/avgDocLen))
			score += idf * tfComponent
		}
		scores[i] = score
	}
	return scores
}
