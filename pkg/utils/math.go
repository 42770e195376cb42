package utils

import "time"

// Clamp01 clamps x to [0, 1]. NaN passes through unchanged.
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// DaysBetween returns the number of days from `from` to `to` as a fraction.
// Returns 0 when `from` is zero or not before `to`, so stale or missing
// timestamps never produce negative elapsed time.
func DaysBetween(from, to time.Time) float64 {
	if from.IsZero() || !from.Before(to) {
		return 0
	}
	return to.Sub(from).Seconds() / 86400.0
}
