package insight

import (
	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

const (
	// DefaultStreakLookbackDays bounds how far back a streak recomputation
	// scans.
	DefaultStreakLookbackDays = 60

	defaultStepsGoal      = 10000
	sleepConsistencyHours = 7.0
)

// StreakPredicate reports whether a single day qualifies for a streak.
type StreakPredicate func(m metrics.DailyMetrics) bool

// StreakDefinition names a predicate so the result can be surfaced.
type StreakDefinition struct {
	Name      string
	Qualifies StreakPredicate
}

// DefaultStreakDefinitions returns the built-in streaks: nights with at
// least 7 hours of sleep, and days meeting the step goal (10000 when the
// device reports none).
func DefaultStreakDefinitions() []StreakDefinition {
	return []StreakDefinition{
		{
			Name: "sleep_consistency",
			Qualifies: func(m metrics.DailyMetrics) bool {
				return m.SleepHours != nil && *m.SleepHours >= sleepConsistencyHours
			},
		},
		{
			Name: "step_goal",
			Qualifies: func(m metrics.DailyMetrics) bool {
				if m.Steps == nil {
					return false
				}
				goal := defaultStepsGoal
				if m.StepsGoal != nil && *m.StepsGoal > 0 {
					goal = *m.StepsGoal
				}
				return *m.Steps >= goal
			},
		},
	}
}

// TrackStreak recomputes one streak over a date-descending history. The
// current run starts at the most recent day and breaks on the first
// non-qualifying day or calendar gap; the best run is the longest contiguous
// qualifying run anywhere inside the lookback window, current run included.
func TrackStreak(history []metrics.DailyMetrics, def StreakDefinition, lookbackDays int) insight.Streak {
	s := insight.Streak{Name: def.Name}
	if len(history) == 0 {
		return s
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultStreakLookbackDays
	}

	cutoff := history[0].Date.AddDate(0, 0, -(lookbackDays - 1))
	var rows []metrics.DailyMetrics
	for _, m := range history {
		if m.Date.Before(cutoff) {
			break
		}
		rows = append(rows, m)
	}
	if len(rows) == 0 {
		return s
	}

	if def.Qualifies(rows[0]) {
		s.CurrentCount = 1
		last := rows[0].Date
		s.LastDate = &last
		for i := 1; i < len(rows); i++ {
			if !def.Qualifies(rows[i]) || !contiguous(rows[i], rows[i-1]) {
				break
			}
			s.CurrentCount++
		}
	}

	run := 0
	for i := 0; i < len(rows); i++ {
		if !def.Qualifies(rows[i]) {
			run = 0
			continue
		}
		if run > 0 && contiguous(rows[i], rows[i-1]) {
			run++
		} else {
			run = 1
		}
		if run > s.BestCount {
			s.BestCount = run
		}
	}
	if s.CurrentCount > s.BestCount {
		s.BestCount = s.CurrentCount
	}

	s.IsActive = s.CurrentCount > 0
	return s
}

// contiguous reports whether older is the calendar day right before newer.
func contiguous(older, newer metrics.DailyMetrics) bool {
	return metrics.SameDate(older.Date.AddDate(0, 0, 1), newer.Date)
}
