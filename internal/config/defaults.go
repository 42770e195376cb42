package config

// Default scoring and decay parameters. The decay rates and trace weights
// mirror the host application's shipped tuning: the fast trace dominates
// day-scale recall, the slow trace preserves month-scale memories.
const (
	DefaultBM25K1      = 1.5
	DefaultBM25B       = 0.75
	DefaultHybridAlpha = 0.7
	DefaultLimit       = 10

	DefaultSMLDecayRate               = 0.15
	DefaultLMLDecayRate               = 0.02
	DefaultAccessDampeningFactor      = 0.5
	DefaultForgettingThreshold        = 0.1
	DefaultPromotionAccessThreshold   = 3
	DefaultPromotionStrengthThreshold = 0.7
	DefaultAccessStrengthBoost        = 0.02

	DefaultFastWeight       = 0.2
	DefaultMidWeight        = 0.3
	DefaultSlowWeight       = 0.5
	DefaultFastDecayRate    = 0.20
	DefaultMidDecayRate     = 0.05
	DefaultSlowDecayRate    = 0.005
	DefaultCascadeFastToMid = 0.1
	DefaultCascadeMidToSlow = 0.05
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Scoring.BM25K1 == 0 {
		cfg.Scoring.BM25K1 = DefaultBM25K1
	}
	if cfg.Scoring.BM25B == 0 {
		cfg.Scoring.BM25B = DefaultBM25B
	}
	if cfg.Scoring.HybridAlpha == 0 {
		cfg.Scoring.HybridAlpha = DefaultHybridAlpha
	}
	if cfg.Scoring.DefaultLimit == 0 {
		cfg.Scoring.DefaultLimit = DefaultLimit
	}
	if cfg.Decay.SMLDecayRate == 0 {
		cfg.Decay.SMLDecayRate = DefaultSMLDecayRate
	}
	if cfg.Decay.LMLDecayRate == 0 {
		cfg.Decay.LMLDecayRate = DefaultLMLDecayRate
	}
	if cfg.Decay.AccessDampeningFactor == 0 {
		cfg.Decay.AccessDampeningFactor = DefaultAccessDampeningFactor
	}
	if cfg.Decay.ForgettingThreshold == 0 {
		cfg.Decay.ForgettingThreshold = DefaultForgettingThreshold
	}
	if cfg.Decay.PromotionAccessThreshold == 0 {
		cfg.Decay.PromotionAccessThreshold = DefaultPromotionAccessThreshold
	}
	if cfg.Decay.PromotionStrengthThreshold == 0 {
		cfg.Decay.PromotionStrengthThreshold = DefaultPromotionStrengthThreshold
	}
	if cfg.Decay.AccessStrengthBoost == 0 {
		cfg.Decay.AccessStrengthBoost = DefaultAccessStrengthBoost
	}
	if cfg.Traces.FastWeight == 0 && cfg.Traces.MidWeight == 0 && cfg.Traces.SlowWeight == 0 {
		cfg.Traces.FastWeight = DefaultFastWeight
		cfg.Traces.MidWeight = DefaultMidWeight
		cfg.Traces.SlowWeight = DefaultSlowWeight
	}
	if cfg.Traces.FastDecayRate == 0 {
		cfg.Traces.FastDecayRate = DefaultFastDecayRate
	}
	if cfg.Traces.MidDecayRate == 0 {
		cfg.Traces.MidDecayRate = DefaultMidDecayRate
	}
	if cfg.Traces.SlowDecayRate == 0 {
		cfg.Traces.SlowDecayRate = DefaultSlowDecayRate
	}
	if cfg.Traces.CascadeFastToMid == 0 {
		cfg.Traces.CascadeFastToMid = DefaultCascadeFastToMid
	}
	if cfg.Traces.CascadeMidToSlow == 0 {
		cfg.Traces.CascadeMidToSlow = DefaultCascadeMidToSlow
	}
}
