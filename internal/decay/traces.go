package decay

import (
	"math"

	"github.com/hyperjump/kioku/pkg/utils"
)

// batchDampeningCoeff is the fixed access-dampening coefficient of the
// multi-rate batch path. Unlike DecayedStrength it is not caller-supplied.
const batchDampeningCoeff = 0.5

// Trace holds the three strength components of one memory item. Fast decays
// within days, Mid within weeks, Slow over months; each stays in [0, 1].
type Trace struct {
	Fast float64 `json:"fast"`
	Mid  float64 `json:"mid"`
	Slow float64 `json:"slow"`
}

// InitialTraces seeds a trace for a memory entering at the given strength.
// New memories carry all strength in the fast trace; migrated ones also seed
// the mid trace with half.
func InitialTraces(strength float64, isNew bool) Trace {
	strength = utils.Clamp01(strength)
	if isNew {
		return Trace{Fast: strength}
	}
	return Trace{Fast: strength, Mid: strength * 0.5}
}

// EffectiveStrength collapses a trace into a single strength using the given
// component weights, clamped to [0, 1].
func EffectiveStrength(t Trace, fastWeight, midWeight, slowWeight float64) float64 {
	return utils.Clamp01(fastWeight*t.Fast + midWeight*t.Mid + slowWeight*t.Slow)
}

// TracesBatch decays every component of every trace at its own rate.
// elapsedDays and accessCounts are parallel to traces; indexes they do not
// cover default to 0 elapsed days and 0 accesses, so a ragged batch degrades
// per item instead of failing or truncating.
func TracesBatch(traces []Trace, elapsedDays []float64, accessCounts []int, fastRate, midRate, slowRate float64) []Trace {
	out := make([]Trace, len(traces))
	for i, tr := range traces {
		days := 0.0
		if i < len(elapsedDays) {
			days = elapsedDays[i]
		}
		accesses := 0
		if i < len(accessCounts) {
			accesses = accessCounts[i]
		}
		dampening := 1 + batchDampeningCoeff*math.Log1p(float64(accesses))
		out[i] = Trace{
			Fast: utils.Clamp01(tr.Fast * math.Exp(-fastRate*days/dampening)),
			Mid:  utils.Clamp01(tr.Mid * math.Exp(-midRate*days/dampening)),
			Slow: utils.Clamp01(tr.Slow * math.Exp(-slowRate*days/dampening)),
		}
	}
	return out
}

// Cascade moves strength from faster traces toward slower ones: a fastToMid
// share of Fast always moves to Mid, and during deep sleep a midToSlow share
// of the updated Mid moves on to Slow.
func Cascade(t Trace, fastToMid, midToSlow float64, deepSleep bool) Trace {
	moved := t.Fast * fastToMid
	next := Trace{Fast: t.Fast - moved, Mid: t.Mid + moved, Slow: t.Slow}
	if deepSleep {
		moved = next.Mid * midToSlow
		next.Mid -= moved
		next.Slow += moved
	}
	next.Fast = utils.Clamp01(next.Fast)
	next.Mid = utils.Clamp01(next.Mid)
	next.Slow = utils.Clamp01(next.Slow)
	return next
}

// BoostFast raises only the fast trace on access.
func BoostFast(t Trace, boost float64) Trace {
	t.Fast = utils.Clamp01(t.Fast + boost)
	return t
}
