package retrieval

import (
	"sort"
	"sync"
	"time"

	"github.com/hyperjump/kioku/internal/config"
	"github.com/hyperjump/kioku/internal/decay"
	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/internal/relevance"
	"github.com/hyperjump/kioku/internal/similarity"
	"github.com/hyperjump/kioku/pkg/utils"
	"go.uber.org/zap"
)

// Scorer ranks memory batches against a query by combining semantic
// similarity, keyword relevance, and decayed strength.
type Scorer struct {
	config *config.Config
	logger *zap.Logger
}

// NewScorer creates a scorer with the given configuration and logger.
func NewScorer(cfg *config.Config, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{config: cfg, logger: logger}
}

// Score ranks mems against q as of now and returns results sorted by
// composite score, truncated to the query limit. The semantic and keyword
// passes run concurrently; the strength pass depends on neither. Ties keep
// input order.
func (s *Scorer) Score(q *models.Query, mems []*models.Memory, now time.Time) (*models.ScoreResponse, error) {
	startTime := time.Now()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	queryTerms := relevance.Tokenize(q.Text)

	var (
		semantic []float64
		keyword  []float64
		wg       sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		semantic = s.semanticScores(q.Vector, mems)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		keyword = s.keywordScores(queryTerms, mems)
	}()

	wg.Wait()

	strength := s.strengthScores(mems, now)

	results := make([]*models.ScoredMemory, len(mems))
	for i, mem := range mems {
		hybrid := HybridScore(semantic[i], keyword[i], s.config.Scoring.HybridAlpha)
		results[i] = &models.ScoredMemory{
			Memory:         mem,
			SemanticScore:  semantic[i],
			KeywordScore:   keyword[i],
			Strength:       strength[i],
			HybridScore:    hybrid,
			CompositeScore: CompositeScore(hybrid, strength[i]),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompositeScore > results[j].CompositeScore
	})

	total := len(results)
	if len(results) > q.Limit {
		results = results[:q.Limit]
	}
	for i, r := range results {
		r.Rank = i + 1
	}

	s.logger.Debug("scored memories",
		zap.String("query", q.Text),
		zap.Int("memories", len(mems)),
		zap.Int("returned", len(results)),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return &models.ScoreResponse{
		Results:   results,
		Total:     total,
		QueryTime: time.Since(startTime).Milliseconds(),
		Query:     q.Text,
	}, nil
}

// semanticScores runs batch cosine similarity of the query vector against
// every memory embedding. A missing query vector scores the whole batch 0,
// degrading to keyword-only ranking.
func (s *Scorer) semanticScores(queryVec []float64, mems []*models.Memory) []float64 {
	embeddings := make([][]float64, len(mems))
	for i, mem := range mems {
		embeddings[i] = mem.Embedding
	}
	return similarity.CosineBatch(queryVec, embeddings)
}

// keywordScores combines batch BM25 (normalized to [0,1] by the max score in
// the batch) with distinct-term overlap against content and stored keywords,
// taking the larger signal per memory.
func (s *Scorer) keywordScores(queryTerms []string, mems []*models.Memory) []float64 {
	docs := make([][]string, len(mems))
	totalLen := 0
	for i, mem := range mems {
		docs[i] = relevance.Tokenize(mem.Content)
		totalLen += len(docs[i])
	}
	avgDocLen := 0.0
	if len(docs) > 0 {
		avgDocLen = float64(totalLen) / float64(len(docs))
	}

	bm25 := relevance.BM25Batch(queryTerms, docs, len(docs), avgDocLen,
		s.config.Scoring.BM25K1, s.config.Scoring.BM25B)
	bm25 = NormalizeByMax(bm25)

	scores := make([]float64, len(mems))
	for i, mem := range mems {
		overlap := relevance.KeywordScore(queryTerms, docs[i], mem.Keywords)
		scores[i] = bm25[i]
		if overlap > scores[i] {
			scores[i] = overlap
		}
	}
	return scores
}

// strengthScores computes each memory's decayed strength as of now.
// Trace-bearing records decay all three traces in one batch call and
// collapse them with the configured weights; plain records decay their
// single strength at the layer's rate.
func (s *Scorer) strengthScores(mems []*models.Memory, now time.Time) []float64 {
	var (
		traced       []int
		traces       []decay.Trace
		elapsed      []float64
		accessCounts []int
	)
	for i, mem := range mems {
		if mem.Traces != nil {
			traced = append(traced, i)
			traces = append(traces, *mem.Traces)
			elapsed = append(elapsed, utils.DaysBetween(mem.LastAccessed, now))
			accessCounts = append(accessCounts, mem.AccessCount)
		}
	}
	decayed := decay.TracesBatch(traces, elapsed, accessCounts,
		s.config.Traces.FastDecayRate, s.config.Traces.MidDecayRate, s.config.Traces.SlowDecayRate)

	scores := make([]float64, len(mems))
	for j, i := range traced {
		scores[i] = decay.EffectiveStrength(decayed[j],
			s.config.Traces.FastWeight, s.config.Traces.MidWeight, s.config.Traces.SlowWeight)
	}
	for i, mem := range mems {
		if mem.Traces != nil {
			continue
		}
		scores[i] = decay.DecayedStrength(mem.Strength,
			utils.DaysBetween(mem.LastAccessed, now),
			s.layerRate(mem.Layer),
			mem.AccessCount,
			s.config.Decay.AccessDampeningFactor)
	}
	return scores
}

func (s *Scorer) layerRate(layer string) float64 {
	if layer == decay.LayerLongTerm {
		return s.config.Decay.LMLDecayRate
	}
	return s.config.Decay.SMLDecayRate
}
