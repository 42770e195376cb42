package retrieval

import (
	"math"
	"testing"
	"time"

	"github.com/hyperjump/kioku/internal/config"
	"github.com/hyperjump/kioku/internal/decay"
	"github.com/hyperjump/kioku/internal/models"
)

func TestDecayAll_plainMemories(t *testing.T) {
	cfg := config.Default()
	mem := freshMemory("m1", "content", nil)
	mem.LastAccessed = testNow.Add(-10 * 24 * time.Hour)

	report := DecayAll(cfg, []*models.Memory{mem}, testNow, false, false)
	if report.Processed != 1 {
		t.Errorf("Processed = %d, want 1", report.Processed)
	}
	want := math.Exp(-cfg.Decay.SMLDecayRate * 10)
	if math.Abs(mem.Strength-want) > 1e-9 {
		t.Errorf("Strength = %v, want %v", mem.Strength, want)
	}
}

func TestDecayAll_longTermDecaysSlower(t *testing.T) {
	cfg := config.Default()
	sml := freshMemory("s", "content", nil)
	lml := freshMemory("l", "content", nil)
	lml.Layer = decay.LayerLongTerm
	for _, m := range []*models.Memory{sml, lml} {
		m.LastAccessed = testNow.Add(-30 * 24 * time.Hour)
	}

	DecayAll(cfg, []*models.Memory{sml, lml}, testNow, false, false)
	if sml.Strength >= lml.Strength {
		t.Errorf("short-term strength %v not below long-term %v", sml.Strength, lml.Strength)
	}
}

func TestDecayAll_tracedMemories(t *testing.T) {
	cfg := config.Default()
	mem := freshMemory("t", "content", nil)
	mem.Traces = &decay.Trace{Fast: 1, Mid: 0.5, Slow: 0.2}
	mem.LastAccessed = testNow.Add(-5 * 24 * time.Hour)

	DecayAll(cfg, []*models.Memory{mem}, testNow, false, false)
	if mem.Traces.Fast >= 1 {
		t.Errorf("fast trace did not decay: %v", mem.Traces.Fast)
	}
	want := decay.EffectiveStrength(*mem.Traces,
		cfg.Traces.FastWeight, cfg.Traces.MidWeight, cfg.Traces.SlowWeight)
	if mem.Strength != want {
		t.Errorf("Strength = %v, want effective strength %v", mem.Strength, want)
	}
}

func TestDecayAll_cascadeMovesFastToMid(t *testing.T) {
	cfg := config.Default()
	mem := freshMemory("t", "content", nil)
	mem.Traces = &decay.Trace{Fast: 1}

	DecayAll(cfg, []*models.Memory{mem}, testNow, true, false)
	// Zero elapsed days, so only the cascade moves strength.
	if math.Abs(mem.Traces.Fast-(1-cfg.Traces.CascadeFastToMid)) > 1e-9 {
		t.Errorf("Fast = %v after cascade", mem.Traces.Fast)
	}
	if math.Abs(mem.Traces.Mid-cfg.Traces.CascadeFastToMid) > 1e-9 {
		t.Errorf("Mid = %v after cascade", mem.Traces.Mid)
	}
	if mem.Traces.Slow != 0 {
		t.Errorf("Slow = %v, want 0 without deep sleep", mem.Traces.Slow)
	}
}

func TestDecayAll_deepSleepReachesSlow(t *testing.T) {
	cfg := config.Default()
	mem := freshMemory("t", "content", nil)
	mem.Traces = &decay.Trace{Fast: 1}

	DecayAll(cfg, []*models.Memory{mem}, testNow, true, true)
	if mem.Traces.Slow <= 0 {
		t.Errorf("Slow = %v, want > 0 in deep sleep", mem.Traces.Slow)
	}
}

func TestDecayAll_reportsCandidates(t *testing.T) {
	cfg := config.Default()
	forgotten := freshMemory("weak", "content", nil)
	forgotten.Strength = 0.5
	forgotten.LastAccessed = testNow.Add(-365 * 24 * time.Hour)
	promotable := freshMemory("strong", "content", nil)
	promotable.AccessCount = cfg.Decay.PromotionAccessThreshold
	longTerm := freshMemory("settled", "content", nil)
	longTerm.Layer = decay.LayerLongTerm
	longTerm.AccessCount = 10

	report := DecayAll(cfg, []*models.Memory{forgotten, promotable, longTerm}, testNow, false, false)
	if len(report.ForgetCandidates) != 1 || report.ForgetCandidates[0] != "weak" {
		t.Errorf("ForgetCandidates = %v, want [weak]", report.ForgetCandidates)
	}
	if len(report.PromoteCandidates) != 1 || report.PromoteCandidates[0] != "strong" {
		t.Errorf("PromoteCandidates = %v, want [strong]", report.PromoteCandidates)
	}
}

func TestTouch(t *testing.T) {
	cfg := config.Default()

	t.Run("plain memory", func(t *testing.T) {
		mem := freshMemory("m", "content", nil)
		mem.Strength = 0.5
		mem.LastAccessed = testNow.Add(-24 * time.Hour)
		Touch(cfg, mem, testNow)
		if mem.AccessCount != 1 {
			t.Errorf("AccessCount = %d, want 1", mem.AccessCount)
		}
		if !mem.LastAccessed.Equal(testNow) {
			t.Error("LastAccessed not updated")
		}
		if math.Abs(mem.Strength-(0.5+cfg.Decay.AccessStrengthBoost)) > 1e-9 {
			t.Errorf("Strength = %v after boost", mem.Strength)
		}
	})

	t.Run("traced memory boosts fast only", func(t *testing.T) {
		mem := freshMemory("t", "content", nil)
		mem.Traces = &decay.Trace{Fast: 0.5, Mid: 0.4, Slow: 0.3}
		Touch(cfg, mem, testNow)
		if math.Abs(mem.Traces.Fast-(0.5+cfg.Decay.AccessStrengthBoost)) > 1e-9 {
			t.Errorf("Fast = %v after boost", mem.Traces.Fast)
		}
		if mem.Traces.Mid != 0.4 || mem.Traces.Slow != 0.3 {
			t.Errorf("boost touched mid/slow: %+v", mem.Traces)
		}
	})
}
