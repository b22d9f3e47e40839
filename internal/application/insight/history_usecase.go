package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fit-insights/internal/domain/insight"
	"fit-insights/internal/domain/metrics"
)

// HistoryProvider 取得使用者的日量測歷史（日期遞減、不重複）。
// The caller contract from the query layer applies: rows are deduplicated,
// date-descending and scoped to exactly one user.
type HistoryProvider interface {
	GetHistory(ctx context.Context, userID uuid.UUID, asOf time.Time, days int) ([]metrics.DailyMetrics, error)
}

const (
	// baselineContextDays extends every fetch so the oldest requested day
	// still has a full 30-day baseline window behind it.
	baselineContextDays = 30

	defaultHistoryDays = 30
	maxHistoryDays     = 90
)

// HistoryInput identifies the window to compute.
type HistoryInput struct {
	UserID uuid.UUID
	AsOf   time.Time // defaults to today (UTC)
	Days   int       // defaults to 30, clamped to [1, 90]
}

// HistoryUseCase turns raw daily rows into DayRecords. It holds no state
// between calls; every invocation recomputes from the fetched window.
type HistoryUseCase struct {
	provider HistoryProvider
	cfg      Config
	now      func() time.Time
}

// NewHistoryUseCase 建立計分卡查詢用例。
func NewHistoryUseCase(provider HistoryProvider, cfg Config) *HistoryUseCase {
	return &HistoryUseCase{
		provider: provider,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
}

// Execute returns one DayRecord per requested day, newest first. The weekly
// summary is attached only to the most recent record.
func (u *HistoryUseCase) Execute(ctx context.Context, input HistoryInput) ([]insight.DayRecord, error) {
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	days := input.Days
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = u.now().UTC()
	}

	history, err := u.provider.GetHistory(ctx, input.UserID, asOf, days+baselineContextDays)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	requested := len(history)
	if requested > days {
		requested = days
	}

	records := make([]insight.DayRecord, 0, requested)
	for i := 0; i < requested; i++ {
		records = append(records, u.buildDay(history[i:]))
	}

	if len(records) > 0 {
		summary := AggregateWeekly(history, u.cfg)
		records[0].WeeklySummary = &summary
	}
	return records, nil
}

// Weekly computes the trailing 7-day summary alone.
func (u *HistoryUseCase) Weekly(ctx context.Context, userID uuid.UUID, asOf time.Time) (insight.WeeklySummary, error) {
	if userID == uuid.Nil {
		return insight.WeeklySummary{}, fmt.Errorf("user id is required")
	}
	if asOf.IsZero() {
		asOf = u.now().UTC()
	}
	history, err := u.provider.GetHistory(ctx, userID, asOf, weeklyWindowDays+baselineContextDays)
	if err != nil {
		return insight.WeeklySummary{}, fmt.Errorf("get history: %w", err)
	}
	return AggregateWeekly(history, u.cfg), nil
}

// buildDay assembles one scorecard from the day at trailing[0] and the rows
// behind it. Baselines include the day itself as the newest window entry.
func (u *HistoryUseCase) buildDay(trailing []metrics.DailyMetrics) insight.DayRecord {
	day := trailing[0]
	baselines := ComputeBaselines(trailing)
	recovery := Recovery(day, baselines)

	return insight.DayRecord{
		Date: day.Date,
		Sleep: insight.SleepDetail{
			TotalHours: day.SleepHours,
			DeepPct:    day.SleepDeepPct,
			RemPct:     day.SleepRemPct,
			Score:      day.SleepScore,
			Efficiency: day.SleepEfficiency,
		},
		HRV: insight.HRVDetail{
			Current:   day.HRV,
			Direction: Direction(day.HRV, baselines.HRV7, u.cfg.DirectionThresholdPct, false),
		},
		Recovery: recovery,
		Strain:   Strain(day, recovery),
		Activity: insight.ActivityDetail{
			Steps:            day.Steps,
			StepsGoal:        day.StepsGoal,
			ActiveCalories:   day.ActiveCalories,
			IntensityMinutes: day.IntensityMinutes,
		},
		RestingHR: day.RestingHR,
		// Lower resting heart rate is better, so the label is inverted.
		RHRDirection: Direction(day.RestingHR, baselines.RestingHR7, u.cfg.DirectionThresholdPct, true),
		Baselines:    baselines,
	}
}
