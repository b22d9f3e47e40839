package insight

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

// ScoredDay pairs one raw day with its computed scores. Histories handed to
// the detector are date-descending, like everywhere else in the engine.
type ScoredDay struct {
	Metrics  metrics.DailyMetrics
	Recovery insight.RecoveryScore
	Strain   insight.StrainScore
}

// driverSpec is a candidate cause: a metric measured on day D.
type driverSpec struct {
	key   string
	label string
	value func(d ScoredDay) *float64
}

// outcomeSpec is a candidate effect: a metric measured on day D+1. The
// materiality threshold is expressed in the outcome's own unit so the
// emitted impact stays explainable.
type outcomeSpec struct {
	key         string
	label       string
	unit        string
	materiality float64
	value       func(d ScoredDay) *float64
}

// The candidate table is fixed and ordered, which keeps the detector
// deterministic for identical input.
var (
	patternDrivers = []driverSpec{
		{key: "strain", label: "strain", value: func(d ScoredDay) *float64 {
			if !d.Strain.HasData {
				return nil
			}
			return ptr(d.Strain.Score)
		}},
		{key: "sleep", label: "sleep", value: func(d ScoredDay) *float64 {
			return d.Metrics.SleepHours
		}},
		{key: "stress", label: "stress", value: func(d ScoredDay) *float64 {
			return d.Metrics.AvgStress
		}},
	}

	patternOutcomes = []outcomeSpec{
		{key: "recovery", label: "recovery", unit: "points", materiality: 5.0, value: func(d ScoredDay) *float64 {
			if !d.Recovery.Computable() {
				return nil
			}
			return ptr(float64(d.Recovery.Score))
		}},
		{key: "hrv", label: "HRV", unit: "ms", materiality: 3.0, value: func(d ScoredDay) *float64 {
			return d.Metrics.HRV
		}},
	}
)

// DetectCorrelations mines lag-1 relationships: a driver on day D against an
// outcome on day D+1, paired only across consecutive calendar days so no
// pair ever looks past its own date. Findings below the sample, confidence
// or materiality floors are dropped; survivors are sorted by confidence
// descending (title breaks ties).
func DetectCorrelations(days []ScoredDay, cfg PatternConfig) []insight.Correlation {
	found := []insight.Correlation{}
	if len(days) < cfg.MinHistoryDays {
		return found
	}

	for _, drv := range patternDrivers {
		for _, out := range patternOutcomes {
			if drv.key == out.key {
				continue
			}
			if c := mineLagged(days, drv, out, cfg); c != nil {
				found = append(found, *c)
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Confidence != found[j].Confidence {
			return found[i].Confidence > found[j].Confidence
		}
		return found[i].Title < found[j].Title
	})
	return found
}

func mineLagged(days []ScoredDay, drv driverSpec, out outcomeSpec, cfg PatternConfig) *insight.Correlation {
	var xs, ys []float64
	// days[i] is one day newer than days[i+1] when the dates are adjacent.
	for i := 0; i+1 < len(days); i++ {
		newer, older := days[i], days[i+1]
		if !contiguousDay(older.Metrics.Date, newer.Metrics.Date) {
			continue
		}
		x := drv.value(older)
		y := out.value(newer)
		if x == nil || y == nil {
			continue
		}
		xs = append(xs, *x)
		ys = append(ys, *y)
	}

	n := len(xs)
	if n < cfg.MinSamples {
		return nil
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || r == 0 {
		return nil
	}

	confidence := round2(consistency(xs, ys, r) * float64(n) / float64(n+5))
	if confidence <= cfg.MinConfidence {
		return nil
	}

	impact, ok := medianSplitImpact(xs, ys)
	if !ok || math.Abs(impact) < out.materiality {
		return nil
	}

	patternType := insight.PatternPositive
	if r < 0 {
		patternType = insight.PatternNegative
	}

	return &insight.Correlation{
		PatternType: patternType,
		Category:    drv.key,
		Title:       fmt.Sprintf("%s drives next-day %s", drv.label, out.label),
		Description: describeCorrelation(drv, out, impact, n),
		Impact:      impact,
		Confidence:  confidence,
		SampleSize:  n,
	}
}

// consistency is the fraction of paired observations whose co-deviation
// from the means agrees with the overall correlation sign.
func consistency(xs, ys []float64, r float64) float64 {
	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)
	agree := 0
	for i := range xs {
		if (xs[i]-meanX)*(ys[i]-meanY)*r > 0 {
			agree++
		}
	}
	return float64(agree) / float64(len(xs))
}

// medianSplitImpact estimates the effect size as the difference between the
// mean outcome following above-median driver days and the mean outcome
// following below-median driver days, in the outcome's own unit.
func medianSplitImpact(xs, ys []float64) (float64, bool) {
	med, err := stats.Median(xs)
	if err != nil {
		return 0, false
	}
	var high, low []float64
	for i, x := range xs {
		switch {
		case x > med:
			high = append(high, ys[i])
		case x < med:
			low = append(low, ys[i])
		}
	}
	if len(high) == 0 || len(low) == 0 {
		return 0, false
	}
	return round1(stat.Mean(high, nil) - stat.Mean(low, nil)), true
}

func describeCorrelation(drv driverSpec, out outcomeSpec, impact float64, n int) string {
	tendency := "higher"
	if impact < 0 {
		tendency = "lower"
	}
	return fmt.Sprintf("Days with higher %s are followed by %s %s the next day (%+.1f %s vs low-%s days, %d paired days).",
		drv.label, tendency, out.label, impact, out.unit, drv.label, n)
}

// trendSpec is one metric tracked by the trend scanner. beneficial marks
// whether a rising value is good news for the user.
type trendSpec struct {
	key        string
	beneficial bool
	value      func(m metrics.DailyMetrics) *float64
}

var trendMetrics = []trendSpec{
	{key: "hrv", beneficial: true, value: func(m metrics.DailyMetrics) *float64 { return m.HRV }},
	{key: "resting_hr", beneficial: false, value: func(m metrics.DailyMetrics) *float64 { return m.RestingHR }},
	{key: "sleep_hours", beneficial: true, value: func(m metrics.DailyMetrics) *float64 { return m.SleepHours }},
	{key: "stress", beneficial: false, value: func(m metrics.DailyMetrics) *float64 { return m.AvgStress }},
}

// DetectTrends flags sustained same-direction movement ending at the most
// recent day. Direction and severity are health-semantic: a climbing harmful
// metric is a declining trend with severity concern, a sliding beneficial
// metric is a declining trend with severity warning, and any move in the
// healthy direction is improving/positive.
func DetectTrends(days []ScoredDay, cfg PatternConfig) []insight.TrendAlert {
	alerts := []insight.TrendAlert{}
	if len(days) < cfg.MinHistoryDays {
		return alerts
	}

	window := days
	if len(window) > cfg.TrendWindowDays {
		window = window[:cfg.TrendWindowDays]
	}

	for _, spec := range trendMetrics {
		if a := scanTrend(window, spec, cfg.TrendMinDays); a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts
}

func scanTrend(window []ScoredDay, spec trendSpec, minDays int) *insight.TrendAlert {
	// Values newest-first, skipping days the device did not report.
	var values []float64
	for _, d := range window {
		if v := spec.value(d.Metrics); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) < minDays+1 {
		return nil
	}

	first := values[0] - values[1]
	if first == 0 {
		return nil
	}
	rising := first > 0

	// Count the run of same-direction daily changes ending at the newest day.
	runDays := 1
	for i := 1; i < len(values)-1; i++ {
		step := values[i] - values[i+1]
		if step == 0 || (step > 0) != rising {
			break
		}
		runDays++
	}
	if runDays < minDays {
		return nil
	}

	oldest := values[runDays]
	if oldest == 0 {
		return nil
	}
	changePct := round1((values[0] - oldest) / oldest * 100)

	improving := rising == spec.beneficial
	alert := insight.TrendAlert{
		Metric:    spec.key,
		Days:      runDays,
		ChangePct: changePct,
	}
	switch {
	case improving:
		alert.Direction = insight.TrendImproving
		alert.Severity = insight.SeverityPositive
	case spec.beneficial:
		alert.Direction = insight.TrendDeclining
		alert.Severity = insight.SeverityWarning
	default:
		alert.Direction = insight.TrendDeclining
		alert.Severity = insight.SeverityConcern
	}
	return &alert
}

func contiguousDay(older, newer time.Time) bool {
	return metrics.SameDate(older.AddDate(0, 0, 1), newer)
}
