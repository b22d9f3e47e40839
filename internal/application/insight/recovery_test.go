package insight

import (
	"testing"

	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

func TestRecovery_AllThreeSubScores(t *testing.T) {
	// hrv at baseline -> 100, sleep at baseline -> 100, body battery 70:
	// (100*1.5 + 100*1.0 + 70*1.0) / 3.5 = 91.43 -> 91.
	day := metrics.DailyMetrics{
		HRV:                ptr(50.0),
		SleepHours:         ptr(8.0),
		BodyBatteryCharged: ptr(70.0),
	}
	baselines := insight.Baselines{HRV7: ptr(50.0), Sleep7: ptr(8.0)}

	got := Recovery(day, baselines)
	if got.Score != 91 {
		t.Fatalf("expected score 91, got %d", got.Score)
	}
	if got.Zone != insight.ZoneGreen {
		t.Fatalf("expected green zone, got %s", got.Zone)
	}
	if len(got.Parts) != 3 {
		t.Fatalf("expected 3 sub-scores, got %d", len(got.Parts))
	}
	kinds := map[insight.SubScoreKind]insight.SubScore{}
	for _, p := range got.Parts {
		kinds[p.Kind] = p
	}
	if kinds[insight.SubScoreHRV].Weight != 1.5 || kinds[insight.SubScoreHRV].Score != 100 {
		t.Fatalf("unexpected hrv sub-score: %+v", kinds[insight.SubScoreHRV])
	}
	if kinds[insight.SubScoreBodyBattery].Score != 70 {
		t.Fatalf("unexpected body battery sub-score: %+v", kinds[insight.SubScoreBodyBattery])
	}
}

func TestRecovery_NoDataScoresZero(t *testing.T) {
	got := Recovery(metrics.DailyMetrics{}, insight.Baselines{})
	if got.Score != 0 {
		t.Fatalf("expected 0, got %d", got.Score)
	}
	if got.Computable() {
		t.Fatal("expected non-computable result without sub-scores")
	}
}

func TestRecovery_HRVFallsBackToDeviceWeeklyAvg(t *testing.T) {
	day := metrics.DailyMetrics{
		HRV:          ptr(50.0),
		HRVWeeklyAvg: ptr(50.0),
	}
	got := Recovery(day, insight.Baselines{})
	if len(got.Parts) != 1 || got.Parts[0].Kind != insight.SubScoreHRV {
		t.Fatalf("expected single hrv sub-score, got %+v", got.Parts)
	}
	// 50/50 * 75 + 25 = 100.
	if got.Parts[0].Score != 100 {
		t.Fatalf("expected fallback hrv sub-score 100, got %v", got.Parts[0].Score)
	}
}

func TestRecovery_HRVWithoutAnyBaselineIsSkipped(t *testing.T) {
	got := Recovery(metrics.DailyMetrics{HRV: ptr(50.0)}, insight.Baselines{})
	if got.Computable() {
		t.Fatalf("expected no sub-scores, got %+v", got.Parts)
	}
}

func TestRecovery_SleepFallbackFormula(t *testing.T) {
	// 8h/8h * 85 + 20/20 * 15 = 100.
	day := metrics.DailyMetrics{SleepHours: ptr(8.0), SleepDeepPct: ptr(20.0)}
	got := Recovery(day, insight.Baselines{})
	if len(got.Parts) != 1 || got.Parts[0].Score != 100 {
		t.Fatalf("expected sleep fallback sub-score 100, got %+v", got.Parts)
	}

	// Missing deep sleep contributes nothing to the fallback.
	day = metrics.DailyMetrics{SleepHours: ptr(4.0)}
	got = Recovery(day, insight.Baselines{})
	// 4/8 * 85 = 42.5 -> weighted mean of one part -> round to 43.
	if got.Score != 43 {
		t.Fatalf("expected 43, got %d", got.Score)
	}
}

func TestRecovery_SubScoresClampToHundred(t *testing.T) {
	day := metrics.DailyMetrics{
		HRV:                ptr(500.0),
		SleepHours:         ptr(20.0),
		BodyBatteryCharged: ptr(100.0),
	}
	baselines := insight.Baselines{HRV7: ptr(50.0), Sleep7: ptr(8.0)}
	got := Recovery(day, baselines)
	if got.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", got.Score)
	}
	for _, p := range got.Parts {
		if p.Score < 0 || p.Score > 100 {
			t.Fatalf("sub-score out of bounds: %+v", p)
		}
	}
}

func TestRecovery_BoundsHold(t *testing.T) {
	days := []metrics.DailyMetrics{
		{HRV: ptr(1.0), SleepHours: ptr(0.5), BodyBatteryCharged: ptr(0.0)},
		{HRV: ptr(200.0), SleepHours: ptr(14.0), BodyBatteryCharged: ptr(100.0)},
		{SleepHours: ptr(0.0)},
	}
	baselines := insight.Baselines{HRV7: ptr(60.0), Sleep7: ptr(7.5)}
	for i, day := range days {
		got := Recovery(day, baselines)
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("case %d: score out of bounds: %d", i, got.Score)
		}
	}
}
