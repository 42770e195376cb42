// Package cli provides CLI output utilities for kioku.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/internal/retrieval"
	"github.com/hyperjump/kioku/pkg/utils"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteScoreResults writes a scoring response to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteScoreResults(w io.Writer, response *models.ScoreResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "\nScored %d memories in %dms, showing top %d\n\n",
		response.Total, response.QueryTime, len(response.Results))
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
	return nil
}

func writeOneResult(w io.Writer, result *models.ScoredMemory) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Composite: %.4f (Semantic: %.4f, Keyword: %.4f, Strength: %.4f)\n",
		result.Rank, result.CompositeScore, result.SemanticScore, result.KeywordScore, result.Strength)
	fmt.Fprintf(w, "ID: %s | Layer: %s | Accesses: %d\n",
		result.Memory.ID, result.Memory.Layer, result.Memory.AccessCount)
	fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(result.Memory.Content, 200))
}

// WriteDecayReport writes a maintenance report to w in the given format.
func WriteDecayReport(w io.Writer, report *retrieval.DecayReport, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, report)
	}
	fmt.Fprintf(w, "Decayed %d memories\n", report.Processed)
	fmt.Fprintf(w, "Forget candidates:  %d\n", len(report.ForgetCandidates))
	for _, id := range report.ForgetCandidates {
		fmt.Fprintf(w, "  - %s\n", id)
	}
	fmt.Fprintf(w, "Promote candidates: %d\n", len(report.PromoteCandidates))
	for _, id := range report.PromoteCandidates {
		fmt.Fprintf(w, "  - %s\n", id)
	}
	return nil
}

// RankedDoc is one document with its BM25 score, for the rank command.
type RankedDoc struct {
	Rank    int     `json:"rank"`
	Index   int     `json:"index"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// WriteRankedDocs writes BM25-ranked documents to w in the given format.
func WriteRankedDocs(w io.Writer, docs []*RankedDoc, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, docs)
	}
	for _, d := range docs {
		fmt.Fprintf(w, "%3d. [%.4f] %s\n", d.Rank, d.Score, utils.Truncate(d.Content, 120))
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
