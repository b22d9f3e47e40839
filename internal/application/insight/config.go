package insight

// Config carries the engine tuning table. It is built once at startup from
// the service configuration and injected everywhere; call sites never carry
// their own thresholds.
type Config struct {
	// DirectionThresholdPct is the dead band for stable classification.
	DirectionThresholdPct float64
	// StreakLookbackDays bounds streak recomputation.
	StreakLookbackDays int
	// SleepDebtBaselineHours is used when no personal sleep baseline exists.
	SleepDebtBaselineHours float64
	// Streaks are the tracked streak definitions.
	Streaks []StreakDefinition
	// Patterns tunes the causality engine.
	Patterns PatternConfig
}

// PatternConfig tunes correlation mining and trend scanning.
type PatternConfig struct {
	// MinHistoryDays gates the detector entirely.
	MinHistoryDays int
	// MinSamples is the minimum number of paired driver/outcome observations.
	MinSamples int
	// MinConfidence is the emission floor for correlations.
	MinConfidence float64
	// TrendWindowDays is how far back the trend scan looks (5-10).
	TrendWindowDays int
	// TrendMinDays is the minimum run of same-direction daily changes.
	TrendMinDays int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DirectionThresholdPct:  5.0,
		StreakLookbackDays:     60,
		SleepDebtBaselineHours: 7.5,
		Streaks:                DefaultStreakDefinitions(),
		Patterns: PatternConfig{
			MinHistoryDays:  14,
			MinSamples:      5,
			MinConfidence:   0.5,
			TrendWindowDays: 7,
			TrendMinDays:    3,
		},
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DirectionThresholdPct <= 0 {
		c.DirectionThresholdPct = def.DirectionThresholdPct
	}
	if c.StreakLookbackDays <= 0 {
		c.StreakLookbackDays = def.StreakLookbackDays
	}
	if c.SleepDebtBaselineHours <= 0 {
		c.SleepDebtBaselineHours = def.SleepDebtBaselineHours
	}
	if len(c.Streaks) == 0 {
		c.Streaks = def.Streaks
	}
	if c.Patterns.MinHistoryDays <= 0 {
		c.Patterns.MinHistoryDays = def.Patterns.MinHistoryDays
	}
	if c.Patterns.MinSamples <= 0 {
		c.Patterns.MinSamples = def.Patterns.MinSamples
	}
	if c.Patterns.MinConfidence <= 0 {
		c.Patterns.MinConfidence = def.Patterns.MinConfidence
	}
	if c.Patterns.TrendWindowDays <= 0 {
		c.Patterns.TrendWindowDays = def.Patterns.TrendWindowDays
	}
	if c.Patterns.TrendMinDays <= 0 {
		c.Patterns.TrendMinDays = def.Patterns.TrendMinDays
	}
	return c
}
