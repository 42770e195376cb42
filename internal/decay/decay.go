// Package decay models time-based strength decay for memory items.
//
// Memories lose strength exponentially with elapsed time. Repeated access
// dampens the effective decay rate logarithmically, so each additional access
// protects less than the one before it.
package decay

import (
	"math"

	"github.com/hyperjump/kioku/pkg/utils"
)

// Memory layers. Short-term memories decay fast and may be promoted to the
// long-term layer; long-term memories decay slowly and never promote.
const (
	LayerShortTerm = "sml"
	LayerLongTerm  = "lml"
)

// DecayedStrength returns strength after exponential decay over elapsedDays.
//
// dampening = 1 + dampeningFactor*ln(1+accessCount), so zero accesses leave
// the rate untouched and dampeningFactor >= 0 keeps the divisor >= 1. A NaN
// strength is treated as fully decayed and returns 0 before any computation.
// The result is clamped to [0, 1].
func DecayedStrength(strength, elapsedDays, decayRate float64, accessCount int, dampeningFactor float64) float64 {
	if math.IsNaN(strength) {
		return 0
	}
	dampening := 1 + dampeningFactor*math.Log1p(float64(accessCount))
	return utils.Clamp01(strength * math.Exp(-decayRate*elapsedDays/dampening))
}

// ShouldForget reports whether strength has fallen below the forgetting
// threshold. NaN strength always forgets.
func ShouldForget(strength, threshold float64) bool {
	if math.IsNaN(strength) {
		return true
	}
	return strength < threshold
}

// ShouldPromote reports whether a short-term memory qualifies for the
// long-term layer. Only the short-term layer promotes.
func ShouldPromote(layer string, accessCount int, strength float64, minAccessCount int, minStrength float64) bool {
	if layer != LayerShortTerm {
		return false
	}
	return accessCount >= minAccessCount && strength >= minStrength
}
