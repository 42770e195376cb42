// Package retrieval composes the similarity, decay, and relevance engines
// into memory-level scoring. It owns no state beyond configuration: every
// call scores a caller-supplied batch and returns fresh results.
package retrieval

// HybridScore blends the semantic and keyword signals:
// alpha*semantic + (1-alpha)*keyword.
func HybridScore(semantic, keyword, alpha float64) float64 {
	return alpha*semantic + (1-alpha)*keyword
}

// CompositeScore weights relevance by current memory strength, so a strong
// old memory can outrank a weak perfect match.
func CompositeScore(hybrid, strength float64) float64 {
	return hybrid * strength
}

// NormalizeByMax scales scores into [0,1] by the maximum value. An all-zero
// or empty batch is returned unchanged.
func NormalizeByMax(scores []float64) []float64 {
	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return scores
	}
	normalized := make([]float64, len(scores))
	for i, s := range scores {
		normalized[i] = s / maxScore
	}
	return normalized
}
