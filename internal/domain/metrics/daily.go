package metrics

import (
	"errors"
	"fmt"
	"time"
)

// DailyMetrics 為「使用者 × 日期」的同步量測資料，一天最多一筆。
// All measurement fields are optional: a nil pointer means the device never
// reported the value that day, which is distinct from a reported zero.
type DailyMetrics struct {
	Date time.Time

	HRV          *float64 // ms, overnight average
	HRVWeeklyAvg *float64 // device-provided 7-day average, scoring fallback

	SleepHours      *float64
	SleepDeepPct    *float64
	SleepRemPct     *float64
	SleepScore      *float64
	SleepEfficiency *float64

	BodyBatteryCharged *float64 // 0-100
	BodyBatteryDrained *float64 // 0-100

	Steps            *int
	StepsGoal        *int
	ActiveCalories   *int
	IntensityMinutes *int

	AvgStress *float64 // 0-100
	RestingHR *float64 // bpm
}

// ValidationError 收集多個驗證失敗原因。
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("daily metrics validation failed: %v", e.Reasons)
}

// Validate 檢查欄位是否符合基本完整性條件。
func (m DailyMetrics) Validate() error {
	var reasons []string

	if m.Date.IsZero() {
		reasons = append(reasons, "date is required")
	}

	for name, v := range map[string]*float64{
		"hrv":            m.HRV,
		"hrv_weekly_avg": m.HRVWeeklyAvg,
		"sleep_hours":    m.SleepHours,
		"resting_hr":     m.RestingHR,
	} {
		if v != nil && *v < 0 {
			reasons = append(reasons, name+" must be >= 0")
		}
	}

	for name, v := range map[string]*float64{
		"sleep_deep_pct":       m.SleepDeepPct,
		"sleep_rem_pct":        m.SleepRemPct,
		"sleep_score":          m.SleepScore,
		"sleep_efficiency":     m.SleepEfficiency,
		"body_battery_charged": m.BodyBatteryCharged,
		"body_battery_drained": m.BodyBatteryDrained,
		"avg_stress":           m.AvgStress,
	} {
		if v != nil && (*v < 0 || *v > 100) {
			reasons = append(reasons, name+" must be within 0-100")
		}
	}

	for name, v := range map[string]*int{
		"steps":             m.Steps,
		"steps_goal":        m.StepsGoal,
		"active_calories":   m.ActiveCalories,
		"intensity_minutes": m.IntensityMinutes,
	} {
		if v != nil && *v < 0 {
			reasons = append(reasons, name+" must be >= 0")
		}
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// IsValidationError 檢查錯誤是否為日量測資料的驗證錯誤。
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SameDate 比對兩個時間是否落在同一個日曆日。
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
