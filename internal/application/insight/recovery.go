package insight

import (
	"math"

	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

// Sub-score weights for the recovery composite.
const (
	weightHRV         = 1.5
	weightSleep       = 1.0
	weightBodyBattery = 1.0

	fallbackSleepTarget = 8.0 // hours, used when no personal baseline exists
)

// Recovery computes the daily recovery composite for one day against its
// baselines. Each available sub-score is clamped to [0,100] and weighted;
// the daily result rounds to an integer. The weekly aggregator averages the
// same scores to 1 decimal instead; that is a display-precision difference,
// not a second formula.
func Recovery(day metrics.DailyMetrics, baselines insight.Baselines) insight.RecoveryScore {
	var parts []insight.SubScore

	if s := hrvSubScore(day, baselines.HRV7); s != nil {
		parts = append(parts, *s)
	}
	if s := sleepSubScore(day, baselines.Sleep7); s != nil {
		parts = append(parts, *s)
	}
	if day.BodyBatteryCharged != nil {
		parts = append(parts, insight.SubScore{
			Kind:   insight.SubScoreBodyBattery,
			Score:  clamp(*day.BodyBatteryCharged, 0, 100),
			Weight: weightBodyBattery,
		})
	}

	if len(parts) == 0 {
		return insight.RecoveryScore{Score: 0}
	}

	var sum, totalWeight float64
	for _, p := range parts {
		sum += p.Score * p.Weight
		totalWeight += p.Weight
	}
	score := int(math.Round(sum / totalWeight))

	return insight.RecoveryScore{
		Score: score,
		Zone:  insight.ZoneForRecovery(score),
		Parts: parts,
	}
}

// hrvSubScore scores HRV against the personal 7-day baseline, falling back
// to the device-provided weekly average with slightly flatter coefficients.
func hrvSubScore(day metrics.DailyMetrics, baseline *float64) *insight.SubScore {
	if day.HRV == nil {
		return nil
	}
	if baseline != nil && *baseline > 0 {
		return &insight.SubScore{
			Kind:   insight.SubScoreHRV,
			Score:  clamp((*day.HRV / *baseline)*80+20, 0, 100),
			Weight: weightHRV,
		}
	}
	if day.HRVWeeklyAvg != nil && *day.HRVWeeklyAvg > 0 {
		return &insight.SubScore{
			Kind:   insight.SubScoreHRV,
			Score:  clamp((*day.HRV / *day.HRVWeeklyAvg)*75+25, 0, 100),
			Weight: weightHRV,
		}
	}
	return nil
}

func sleepSubScore(day metrics.DailyMetrics, baseline *float64) *insight.SubScore {
	if day.SleepHours == nil {
		return nil
	}
	hours := *day.SleepHours
	if baseline != nil && *baseline > 0 {
		return &insight.SubScore{
			Kind:   insight.SubScoreSleep,
			Score:  clamp((hours / *baseline)*85+15, 0, 100),
			Weight: weightSleep,
		}
	}
	deepPct := 0.0
	if day.SleepDeepPct != nil {
		deepPct = *day.SleepDeepPct
	}
	return &insight.SubScore{
		Kind:   insight.SubScoreSleep,
		Score:  clamp(hours/fallbackSleepTarget*85+deepPct/20*15, 0, 100),
		Weight: weightSleep,
	}
}
