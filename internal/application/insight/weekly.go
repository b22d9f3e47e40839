package insight

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

const weeklyWindowDays = 7

// AggregateWeekly builds the trailing 7-day rollup for a date-descending
// history. The history should extend beyond the window so every scored day
// has baseline context and the pattern detector has enough depth.
func AggregateWeekly(history []metrics.DailyMetrics, cfg Config) insight.WeeklySummary {
	cfg = cfg.withDefaults()

	summary := insight.WeeklySummary{
		Correlations: []insight.Correlation{},
		Streaks:      []insight.Streak{},
		TrendAlerts:  []insight.TrendAlert{},
	}
	if len(history) == 0 {
		return summary
	}

	scored := ScoreHistory(history, cfg)
	window := trailingWindow(scored, weeklyWindowDays)

	type dayRef struct {
		date  time.Time
		score int
	}

	var recoveries, strains, sleeps []float64
	var bestDay, worstDay *dayRef

	for _, day := range window {
		if day.Recovery.Computable() {
			recoveries = append(recoveries, float64(day.Recovery.Score))
			switch day.Recovery.Zone {
			case insight.ZoneGreen:
				summary.GreenDays++
			case insight.ZoneYellow:
				summary.YellowDays++
			default:
				summary.RedDays++
			}
			// Strict comparisons keep the first (most recent) day on ties.
			if bestDay == nil || day.Recovery.Score > bestDay.score {
				bestDay = &dayRef{date: day.Metrics.Date, score: day.Recovery.Score}
			}
			if worstDay == nil || day.Recovery.Score < worstDay.score {
				worstDay = &dayRef{date: day.Metrics.Date, score: day.Recovery.Score}
			}
		}
		if day.Strain.HasData {
			strains = append(strains, day.Strain.Score)
		}
		if day.Metrics.SleepHours != nil {
			sleeps = append(sleeps, *day.Metrics.SleepHours)
		}
	}

	// Weekly averages reuse the daily formulas; only the display precision
	// differs (1 decimal for recovery/strain, 2 for sleep).
	if len(recoveries) > 0 {
		summary.AvgRecovery = ptr(round1(stat.Mean(recoveries, nil)))
	}
	if len(strains) > 0 {
		summary.AvgStrain = ptr(round1(stat.Mean(strains, nil)))
	}
	if len(sleeps) > 0 {
		summary.AvgSleep = ptr(round2(stat.Mean(sleeps, nil)))
	}
	if bestDay != nil {
		summary.BestDay = ptr(bestDay.date)
	}
	if worstDay != nil {
		summary.WorstDay = ptr(worstDay.date)
	}

	summary.TotalSleepDebt = sleepDebt(window, history, cfg)

	for _, def := range cfg.Streaks {
		s := TrackStreak(history, def, cfg.StreakLookbackDays)
		if s.IsActive {
			summary.Streaks = append(summary.Streaks, s)
		}
	}

	if correlations := DetectCorrelations(scored, cfg.Patterns); len(correlations) > 0 {
		// Only the strongest finding is surfaced.
		summary.Correlations = append(summary.Correlations, correlations[0])
	}
	summary.TrendAlerts = DetectTrends(scored, cfg.Patterns)

	return summary
}

// ScoreHistory computes recovery and strain for every day of a
// date-descending history, each against its own trailing baselines. Day i
// never sees data newer than itself.
func ScoreHistory(history []metrics.DailyMetrics, cfg Config) []ScoredDay {
	cfg = cfg.withDefaults()
	scored := make([]ScoredDay, len(history))
	for i := range history {
		trailing := history[i:]
		baselines := ComputeBaselines(trailing)
		recovery := Recovery(history[i], baselines)
		scored[i] = ScoredDay{
			Metrics:  history[i],
			Recovery: recovery,
			Strain:   Strain(history[i], recovery),
		}
	}
	return scored
}

// trailingWindow keeps the scored days within `days` calendar days of the
// newest one, so a gappy week still spans exactly one week of wall time.
func trailingWindow(scored []ScoredDay, days int) []ScoredDay {
	if len(scored) == 0 {
		return nil
	}
	cutoff := scored[0].Metrics.Date.AddDate(0, 0, -(days - 1))
	for i, d := range scored {
		if d.Metrics.Date.Before(cutoff) {
			return scored[:i]
		}
	}
	return scored
}

// sleepDebt accumulates the shortfall against the personal 7-day sleep
// baseline (7.5h default when no baseline exists) across window days with
// sleep data. Surplus nights never pay debt down.
func sleepDebt(window []ScoredDay, history []metrics.DailyMetrics, cfg Config) float64 {
	target := cfg.SleepDebtBaselineHours
	if b := ComputeBaselines(history).Sleep7; b != nil {
		target = *b
	}
	var debt float64
	for _, day := range window {
		if day.Metrics.SleepHours == nil {
			continue
		}
		if shortfall := target - *day.Metrics.SleepHours; shortfall > 0 {
			debt += shortfall
		}
	}
	return round2(debt)
}
