package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  debug: true
scoring:
  bm25_k1: 1.2
  hybrid_alpha: 0.5
decay:
  sml_decay_rate: 0.3
traces:
  fast_weight: 0.6
  mid_weight: 0.3
  slow_weight: 0.1
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Logging.Debug {
		t.Error("expected debug true")
	}
	if cfg.Scoring.BM25K1 != 1.2 {
		t.Errorf("BM25K1 = %v, want 1.2", cfg.Scoring.BM25K1)
	}
	if cfg.Scoring.HybridAlpha != 0.5 {
		t.Errorf("HybridAlpha = %v, want 0.5", cfg.Scoring.HybridAlpha)
	}
	if cfg.Decay.SMLDecayRate != 0.3 {
		t.Errorf("SMLDecayRate = %v, want 0.3", cfg.Decay.SMLDecayRate)
	}
	if cfg.Traces.FastWeight != 0.6 {
		t.Errorf("FastWeight = %v, want 0.6", cfg.Traces.FastWeight)
	}
	// Unset fields take defaults.
	if cfg.Scoring.BM25B != DefaultBM25B {
		t.Errorf("BM25B = %v, want default %v", cfg.Scoring.BM25B, DefaultBM25B)
	}
	if cfg.Decay.LMLDecayRate != DefaultLMLDecayRate {
		t.Errorf("LMLDecayRate = %v, want default %v", cfg.Decay.LMLDecayRate, DefaultLMLDecayRate)
	}
	if cfg.Traces.FastDecayRate != DefaultFastDecayRate {
		t.Errorf("FastDecayRate = %v, want default %v", cfg.Traces.FastDecayRate, DefaultFastDecayRate)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scoring: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Scoring.BM25K1 != DefaultBM25K1 || cfg.Scoring.BM25B != DefaultBM25B {
		t.Errorf("unexpected BM25 defaults: %+v", cfg.Scoring)
	}
	if cfg.Scoring.DefaultLimit != DefaultLimit {
		t.Errorf("DefaultLimit = %d, want %d", cfg.Scoring.DefaultLimit, DefaultLimit)
	}
	if cfg.Decay.PromotionAccessThreshold != DefaultPromotionAccessThreshold {
		t.Errorf("PromotionAccessThreshold = %d, want %d",
			cfg.Decay.PromotionAccessThreshold, DefaultPromotionAccessThreshold)
	}
	sum := cfg.Traces.FastWeight + cfg.Traces.MidWeight + cfg.Traces.SlowWeight
	if sum != 1.0 {
		t.Errorf("default trace weights sum to %v, want 1.0", sum)
	}
}

func TestApplyDefaults_keepsExplicitWeights(t *testing.T) {
	cfg := &Config{}
	cfg.Traces.FastWeight = 1.0
	ApplyDefaults(cfg)
	if cfg.Traces.FastWeight != 1.0 || cfg.Traces.MidWeight != 0 || cfg.Traces.SlowWeight != 0 {
		t.Errorf("explicit weights overwritten: %+v", cfg.Traces)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Scoring.HybridAlpha = 0.9
	cfg.Decay.ForgettingThreshold = 0.25
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Scoring.HybridAlpha != 0.9 {
		t.Errorf("HybridAlpha = %v, want 0.9", loaded.Scoring.HybridAlpha)
	}
	if loaded.Decay.ForgettingThreshold != 0.25 {
		t.Errorf("ForgettingThreshold = %v, want 0.25", loaded.Decay.ForgettingThreshold)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/kioku/config.yaml"); got != filepath.Join(home, "kioku/config.yaml") {
		t.Errorf("ExpandPath(~/...) = %q", got)
	}
	if got := ExpandPath("/etc/kioku.yaml"); got != "/etc/kioku.yaml" {
		t.Errorf("ExpandPath(abs) = %q, want unchanged", got)
	}
	if got := ExpandPath("relative.yaml"); got != "relative.yaml" {
		t.Errorf("ExpandPath(rel) = %q, want unchanged", got)
	}
	if got := ExpandPath("~"); !strings.HasPrefix(got, home) {
		t.Errorf("ExpandPath(~) = %q, want home", got)
	}
}
