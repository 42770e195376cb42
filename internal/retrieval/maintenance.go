package retrieval

import (
	"time"

	"github.com/hyperjump/kioku/internal/config"
	"github.com/hyperjump/kioku/internal/decay"
	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/pkg/utils"
)

// DecayReport summarizes one maintenance pass over a memory batch.
type DecayReport struct {
	Processed         int      `json:"processed"`
	ForgetCandidates  []string `json:"forget_candidates"`
	PromoteCandidates []string `json:"promote_candidates"`
}

// DecayAll applies strength decay to every memory in place as of now and
// reports which records fall below the forgetting threshold and which
// short-term records qualify for promotion. When cascade is set, trace
// strength shifts from faster traces toward slower ones after decay;
// deepSleep additionally moves mid-trace strength onward to slow.
//
// Memories are updated but never removed or re-layered here; the report
// lists candidates and the caller decides.
func DecayAll(cfg *config.Config, mems []*models.Memory, now time.Time, cascade, deepSleep bool) *DecayReport {
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
		cfg.Traces.FastDecayRate, cfg.Traces.MidDecayRate, cfg.Traces.SlowDecayRate)

	for j, i := range traced {
		t := decayed[j]
		if cascade {
			t = decay.Cascade(t, cfg.Traces.CascadeFastToMid, cfg.Traces.CascadeMidToSlow, deepSleep)
		}
		mems[i].Traces = &t
		mems[i].Strength = decay.EffectiveStrength(t,
			cfg.Traces.FastWeight, cfg.Traces.MidWeight, cfg.Traces.SlowWeight)
	}

	report := &DecayReport{Processed: len(mems)}
	for _, mem := range mems {
		if mem.Traces == nil {
			rate := cfg.Decay.SMLDecayRate
			if mem.Layer == decay.LayerLongTerm {
				rate = cfg.Decay.LMLDecayRate
			}
			mem.Strength = decay.DecayedStrength(mem.Strength,
				utils.DaysBetween(mem.LastAccessed, now),
				rate,
				mem.AccessCount,
				cfg.Decay.AccessDampeningFactor)
		}
		if decay.ShouldForget(mem.Strength, cfg.Decay.ForgettingThreshold) {
			report.ForgetCandidates = append(report.ForgetCandidates, mem.ID)
		}
		if decay.ShouldPromote(mem.Layer, mem.AccessCount, mem.Strength,
			cfg.Decay.PromotionAccessThreshold, cfg.Decay.PromotionStrengthThreshold) {
			report.PromoteCandidates = append(report.PromoteCandidates, mem.ID)
		}
	}
	return report
}

// Touch records an access: the access count increments, the fast trace (or
// plain strength) gets the configured boost, and LastAccessed moves to now.
func Touch(cfg *config.Config, mem *models.Memory, now time.Time) {
	mem.AccessCount++
	mem.LastAccessed = now
	if mem.Traces != nil {
		t := decay.BoostFast(*mem.Traces, cfg.Decay.AccessStrengthBoost)
		mem.Traces = &t
		mem.Strength = decay.EffectiveStrength(t,
			cfg.Traces.FastWeight, cfg.Traces.MidWeight, cfg.Traces.SlowWeight)
		return
	}
	mem.Strength = utils.Clamp01(mem.Strength + cfg.Decay.AccessStrengthBoost)
}
