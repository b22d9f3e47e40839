package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"fit-insights/internal/domain/metrics"
)

// MetricsRepo 提供 daily_metrics 的 Postgres 讀取；同步寫入由外部管線負責。
type MetricsRepo struct {
	db *sql.DB
}

// NewMetricsRepo 建立量測資料存取實例。
func NewMetricsRepo(db *sql.DB) *MetricsRepo {
	return &MetricsRepo{db: db}
}

// GetHistory 取單一使用者截至 asOf 的日量測（日期遞減，至多 days 筆）。
// 唯一鍵 (user_id, metric_date) 由資料表保證，不需去重。
func (r *MetricsRepo) GetHistory(ctx context.Context, userID uuid.UUID, asOf time.Time, days int) ([]metrics.DailyMetrics, error) {
	const q = `
SELECT metric_date, hrv, hrv_weekly_avg,
       sleep_hours, sleep_deep_pct, sleep_rem_pct, sleep_score, sleep_efficiency,
       body_battery_charged, body_battery_drained,
       steps, steps_goal, active_calories, intensity_minutes,
       avg_stress, resting_hr
FROM daily_metrics
WHERE user_id = $1 AND metric_date <= $2
ORDER BY metric_date DESC
LIMIT $3;
`
	rows, err := r.db.QueryContext(ctx, q, userID, asOf, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []metrics.DailyMetrics
	for rows.Next() {
		var m metrics.DailyMetrics
		var (
			hrv, hrvWeekly                               sql.NullFloat64
			sleepHours, deepPct, remPct, score, eff      sql.NullFloat64
			bbCharged, bbDrained, avgStress, restingHR   sql.NullFloat64
			steps, stepsGoal, activeCal, intensityMins   sql.NullInt64
		)
		if err := rows.Scan(
			&m.Date,
			&hrv, &hrvWeekly,
			&sleepHours, &deepPct, &remPct, &score, &eff,
			&bbCharged, &bbDrained,
			&steps, &stepsGoal, &activeCal, &intensityMins,
			&avgStress, &restingHR,
		); err != nil {
			return nil, err
		}
		m.HRV = floatPtr(hrv)
		m.HRVWeeklyAvg = floatPtr(hrvWeekly)
		m.SleepHours = floatPtr(sleepHours)
		m.SleepDeepPct = floatPtr(deepPct)
		m.SleepRemPct = floatPtr(remPct)
		m.SleepScore = floatPtr(score)
		m.SleepEfficiency = floatPtr(eff)
		m.BodyBatteryCharged = floatPtr(bbCharged)
		m.BodyBatteryDrained = floatPtr(bbDrained)
		m.Steps = intPtr(steps)
		m.StepsGoal = intPtr(stepsGoal)
		m.ActiveCalories = intPtr(activeCal)
		m.IntensityMinutes = intPtr(intensityMins)
		m.AvgStress = floatPtr(avgStress)
		m.RestingHR = floatPtr(restingHR)
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListSubscribers 取啟用中的每週摘要訂閱者。
func (r *MetricsRepo) ListSubscribers(ctx context.Context) ([]uuid.UUID, error) {
	const q = `
SELECT user_id FROM digest_subscribers WHERE enabled ORDER BY user_id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
