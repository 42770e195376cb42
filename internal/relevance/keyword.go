package relevance

import "strings"

// KeywordScore returns the fraction of distinct query terms found among the
// content terms. extraTerms (stored keyword lists and similar) are lowercased
// and matched alongside the content. Returns 0 when either side is empty.
func KeywordScore(queryTerms, contentTerms, extraTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	content := make(map[string]struct{}, len(contentTerms)+len(extraTerms))
	for _, t := range contentTerms {
		content[t] = struct{}{}
	}
	for _, t := range extraTerms {
		content[strings.ToLower(t)] = struct{}{}
	}
	if len(content) == 0 {
		return 0
	}

	distinct := make(map[string]struct{}, len(queryTerms))
	for _, t := range queryTerms {
		distinct[t] = struct{}{}
	}
	matches := 0
	for t := range distinct {
		if _, ok := content[t]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(distinct))
}
