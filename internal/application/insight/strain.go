package insight

import (
	"math"

	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

// Strain term caps and divisors. Each contribution saturates before the sum
// so a single huge input cannot dominate the scale.
const (
	strainMax = 21.0

	strainStepsCap     = 8.0
	strainStepsDivisor = 2000.0

	strainDrainCap     = 8.0
	strainDrainDivisor = 12.0

	strainIntensityCap     = 5.0
	strainIntensityDivisor = 20.0
)

// Strain computes the additive daily load score, capped at 21 and rounded to
// 1 decimal. Missing inputs contribute nothing; HasData reports whether any
// input was present at all. The target band derives from the day's recovery
// zone.
func Strain(day metrics.DailyMetrics, recovery insight.RecoveryScore) insight.StrainScore {
	var total float64
	hasData := false

	if day.Steps != nil {
		hasData = true
		total += math.Min(strainStepsCap, float64(*day.Steps)/strainStepsDivisor)
	}
	if day.BodyBatteryDrained != nil {
		hasData = true
		total += math.Min(strainDrainCap, *day.BodyBatteryDrained/strainDrainDivisor)
	}
	if day.IntensityMinutes != nil {
		hasData = true
		total += math.Min(strainIntensityCap, float64(*day.IntensityMinutes)/strainIntensityDivisor)
	}

	if total > strainMax {
		total = strainMax
	}

	low, high := strainTarget(recovery)
	return insight.StrainScore{
		Score:      round1(total),
		TargetLow:  low,
		TargetHigh: high,
		HasData:    hasData,
	}
}

// strainTarget maps the recovery zone to the suggested strain band. Without
// a computable recovery score there is no guidance, so the full range is
// returned.
func strainTarget(recovery insight.RecoveryScore) (float64, float64) {
	if !recovery.Computable() {
		return 0, strainMax
	}
	switch recovery.Zone {
	case insight.ZoneGreen:
		return 14, strainMax
	case insight.ZoneYellow:
		return 8, 14
	default:
		return 0, 8
	}
}
