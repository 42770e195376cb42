// Package similarity provides cosine similarity scoring between memory embeddings.
package similarity

import (
	"math"
	"runtime"
	"sync"
)

// parallelThreshold is the store size at which batch scoring switches from a
// plain loop to a fork-join across workers. Per-item scores are independent
// and each goroutine writes only its own output slots, so both paths produce
// identical results.
const parallelThreshold = 256

// Cosine returns the cosine similarity of a and b.
// Returns 0 when either vector is empty, the lengths differ, either norm is
// zero, or the result is not finite. Malformed input degrades to a neutral
// score instead of an error.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	result := dot / denom
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// CosineBatch scores query against every vector in store and returns one
// score per stored vector. The query norm is computed once and reused. An
// empty query, empty store, or zero-norm query yields all zeros; a stored
// vector whose length differs from the query scores 0 without affecting the
// rest of the batch.
func CosineBatch(query []float64, store [][]float64) []float64 {
	scores := make([]float64, len(store))
	if len(query) == 0 || len(store) == 0 {
		return scores
	}

	var normSq float64
	for _, x := range query {
		normSq += x * x
	}
	queryNorm := math.Sqrt(normSq)
	if queryNorm == 0 {
		return scores
	}

	if len(store) < parallelThreshold {
		for i, vec := range store {
			scores[i] = cosineWithNorm(query, queryNorm, vec)
		}
		return scores
	}

	workers := runtime.NumCPU()
	if workers > len(store) {
		workers = len(store)
	}
	chunk := (len(store) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(store); start += chunk {
		end := start + chunk
		if end > len(store) {
			end = len(store)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				scores[i] = cosineWithNorm(query, queryNorm, store[i])
			}
		}(start, end)
	}
	wg.Wait()
	return scores
}

// cosineWithNorm scores one stored vector against the query using the
// precomputed query norm.
func cosineWithNorm(query []float64, queryNorm float64, vec []float64) float64 {
	if len(vec) != len(query) {
		return 0
	}
	var dot, normV float64
	for i := range vec {
		dot += query[i] * vec[i]
		normV += vec[i] * vec[i]
	}
	denom := queryNorm * math.Sqrt(normV)
	if denom == 0 {
		return 0
	}
	result := dot / denom
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}
