package models

// ScoredMemory is a single scoring hit: the memory plus every component
// score that fed its composite.
type ScoredMemory struct {
	Memory         *Memory `json:"memory"`
	SemanticScore  float64 `json:"semantic_score"`
	KeywordScore   float64 `json:"keyword_score"`
	Strength       float64 `json:"strength"`
	HybridScore    float64 `json:"hybrid_score"`
	CompositeScore float64 `json:"composite_score"`
	Rank           int     `json:"rank"`
}

// ScoreResponse is the response for a scoring request.
type ScoreResponse struct {
	Results   []*ScoredMemory `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
}
