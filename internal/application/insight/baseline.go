package insight

import (
	"github.com/montanaflynn/stats"

	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

const (
	// Window7 and Window30 are the two supported baseline windows.
	Window7  = 7
	Window30 = 30

	// minBaselineSamples is the floor below which a baseline is reported
	// as missing rather than computed from too little data.
	minBaselineSamples = 3
)

// Baseline computes a rolling average over the first `window` entries of a
// date-descending series. Nil entries are skipped; fewer than three valid
// samples yields nil (insufficient data, distinct from zero). The result is
// rounded to 2 decimals.
func Baseline(values []*float64, window int) *float64 {
	if window <= 0 {
		return nil
	}
	if len(values) > window {
		values = values[:window]
	}
	samples := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			samples = append(samples, *v)
		}
	}
	if len(samples) < minBaselineSamples {
		return nil
	}
	mean, err := stats.Mean(samples)
	if err != nil {
		return nil
	}
	return ptr(round2(mean))
}

// ComputeBaselines derives all tracked baselines for the newest day of a
// date-descending history. The newest day itself is part of its window.
func ComputeBaselines(history []metrics.DailyMetrics) insight.Baselines {
	hrv := collect(history, func(m metrics.DailyMetrics) *float64 { return m.HRV })
	sleep := collect(history, func(m metrics.DailyMetrics) *float64 { return m.SleepHours })
	rhr := collect(history, func(m metrics.DailyMetrics) *float64 { return m.RestingHR })
	steps := collect(history, func(m metrics.DailyMetrics) *float64 { return intAsFloat(m.Steps) })
	stress := collect(history, func(m metrics.DailyMetrics) *float64 { return m.AvgStress })

	return insight.Baselines{
		HRV7:        Baseline(hrv, Window7),
		HRV30:       Baseline(hrv, Window30),
		Sleep7:      Baseline(sleep, Window7),
		Sleep30:     Baseline(sleep, Window30),
		RestingHR7:  Baseline(rhr, Window7),
		RestingHR30: Baseline(rhr, Window30),
		Steps7:      Baseline(steps, Window7),
		Stress7:     Baseline(stress, Window7),
	}
}

func collect(history []metrics.DailyMetrics, field func(metrics.DailyMetrics) *float64) []*float64 {
	out := make([]*float64, len(history))
	for i, m := range history {
		out[i] = field(m)
	}
	return out
}
