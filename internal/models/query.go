package models

import "fmt"

// Query represents a scoring request against a batch of memories. Vector is
// the caller-supplied query embedding; when empty, scoring degrades to the
// keyword signal only.
type Query struct {
	Text   string    `json:"text"`
	Vector []float64 `json:"vector,omitempty"`
	Limit  int       `json:"limit,omitempty"`
}

// Validate ensures the query has valid fields and sets defaults.
// Returns an error if the text is empty; otherwise normalizes the limit.
func (q *Query) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("query text cannot be empty")
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return nil
}
