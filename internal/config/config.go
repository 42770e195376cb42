// Package config provides configuration loading and structs for the kioku CLI.
//
// Configuration covers host-layer tunables only: the arguments the CLI feeds
// the scoring kernels. The kernels themselves take every parameter explicitly
// and never read configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Scoring ScoringConfig `yaml:"scoring"`
	Decay   DecayConfig   `yaml:"decay"`
	Traces  TracesConfig  `yaml:"traces"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// ScoringConfig holds retrieval scoring settings.
type ScoringConfig struct {
	BM25K1       float64 `yaml:"bm25_k1"`
	BM25B        float64 `yaml:"bm25_b"`
	HybridAlpha  float64 `yaml:"hybrid_alpha"`
	DefaultLimit int     `yaml:"default_limit"`
}

// DecayConfig holds single-strength decay and layer-transition settings.
type DecayConfig struct {
	SMLDecayRate               float64 `yaml:"sml_decay_rate"`
	LMLDecayRate               float64 `yaml:"lml_decay_rate"`
	AccessDampeningFactor      float64 `yaml:"access_dampening_factor"`
	ForgettingThreshold        float64 `yaml:"forgetting_threshold"`
	PromotionAccessThreshold   int     `yaml:"promotion_access_threshold"`
	PromotionStrengthThreshold float64 `yaml:"promotion_strength_threshold"`
	AccessStrengthBoost        float64 `yaml:"access_strength_boost"`
}

// TracesConfig holds multi-rate trace weights, decay rates, and cascade shares.
type TracesConfig struct {
	FastWeight       float64 `yaml:"fast_weight"`
	MidWeight        float64 `yaml:"mid_weight"`
	SlowWeight       float64 `yaml:"slow_weight"`
	FastDecayRate    float64 `yaml:"fast_decay_rate"`
	MidDecayRate     float64 `yaml:"mid_decay_rate"`
	SlowDecayRate    float64 `yaml:"slow_decay_rate"`
	CascadeFastToMid float64 `yaml:"cascade_fast_to_mid"`
	CascadeMidToSlow float64 `yaml:"cascade_mid_to_slow"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Save writes the config to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(ExpandPath(path), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading "~" or "~/" against the home directory.
// All other paths are returned unchanged.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
