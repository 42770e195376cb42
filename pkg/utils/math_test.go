package utils

import (
	"math"
	"testing"
	"time"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"inside range", 0.5, 0.5},
		{"zero", 0, 0},
		{"one", 1, 1},
		{"below", -0.2, 0},
		{"above", 1.7, 1},
		{"negative infinity", math.Inf(-1), 0},
		{"positive infinity", math.Inf(1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.x); got != tt.want {
				t.Errorf("Clamp01(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
	if got := Clamp01(math.NaN()); !math.IsNaN(got) {
		t.Errorf("Clamp01(NaN) = %v, want NaN", got)
	}
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		from time.Time
		want float64
	}{
		{"one day", now.Add(-24 * time.Hour), 1.0},
		{"half day", now.Add(-12 * time.Hour), 0.5},
		{"same instant", now, 0},
		{"future timestamp", now.Add(time.Hour), 0},
		{"zero time", time.Time{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysBetween(tt.from, now)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DaysBetween() = %v, want %v", got, tt.want)
			}
		})
	}
}
