package insight

import (
	"time"
)

// Direction 表示目前值相對基準線的走勢分類。
type Direction string

const (
	DirectionStable Direction = "stable"
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
)

// DirectionIndicator 回報目前值、基準線與變化幅度。
type DirectionIndicator struct {
	Direction Direction `json:"direction"`
	ChangePct float64   `json:"change_pct"`
	Baseline  float64   `json:"baseline"`
	Current   float64   `json:"current"`
}

// Zone 為每日恢復分數的紅黃綠分區。
type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneYellow Zone = "yellow"
	ZoneRed    Zone = "red"

	ZoneGreenMin  = 67
	ZoneYellowMin = 34
)

// ZoneForRecovery 依恢復分數分區：>=67 green、34-66 yellow、<34 red。
func ZoneForRecovery(score int) Zone {
	switch {
	case score >= ZoneGreenMin:
		return ZoneGreen
	case score >= ZoneYellowMin:
		return ZoneYellow
	default:
		return ZoneRed
	}
}

// SubScoreKind 標記恢復分數的子項來源。
type SubScoreKind string

const (
	SubScoreHRV         SubScoreKind = "hrv"
	SubScoreSleep       SubScoreKind = "sleep"
	SubScoreBodyBattery SubScoreKind = "body_battery"
)

// SubScore 為加權前的單一子分數，固定以 kind 標記來源，
// 讓加權邏輯可以獨立驗證。
type SubScore struct {
	Kind   SubScoreKind `json:"kind"`
	Score  float64      `json:"score"`
	Weight float64      `json:"weight"`
}

// RecoveryScore 為每日恢復計分結果；Parts 為空表示當日沒有任何
// 可用子分數（分數回報 0，且不列入週統計的分區計數）。
type RecoveryScore struct {
	Score int        `json:"score"`
	Zone  Zone       `json:"zone,omitempty"`
	Parts []SubScore `json:"parts,omitempty"`
}

// Computable 回報當日是否有任何子分數可用。
func (r RecoveryScore) Computable() bool {
	return len(r.Parts) > 0
}

// StrainScore 為每日負荷分數（0-21，1 位小數）與目標區間。
type StrainScore struct {
	Score      float64 `json:"score"`
	TargetLow  float64 `json:"target_low"`
	TargetHigh float64 `json:"target_high"`
	HasData    bool    `json:"-"`
}

// Baselines 為各指標的 7 日 / 30 日滾動基準線；nil 表示樣本不足。
type Baselines struct {
	HRV7        *float64 `json:"hrv_7d"`
	HRV30       *float64 `json:"hrv_30d"`
	Sleep7      *float64 `json:"sleep_7d"`
	Sleep30     *float64 `json:"sleep_30d"`
	RestingHR7  *float64 `json:"resting_hr_7d"`
	RestingHR30 *float64 `json:"resting_hr_30d"`
	Steps7      *float64 `json:"steps_7d"`
	Stress7     *float64 `json:"stress_7d"`
}

// SleepDetail 回傳當日睡眠原始欄位。
type SleepDetail struct {
	TotalHours *float64 `json:"total_hours"`
	DeepPct    *float64 `json:"deep_pct"`
	RemPct     *float64 `json:"rem_pct"`
	Score      *float64 `json:"score"`
	Efficiency *float64 `json:"efficiency"`
}

// HRVDetail 回傳當日 HRV 與其相對基準線的走勢。
type HRVDetail struct {
	Current   *float64            `json:"current"`
	Direction *DirectionIndicator `json:"direction"`
}

// ActivityDetail 回傳當日活動欄位。
type ActivityDetail struct {
	Steps            *int `json:"steps"`
	StepsGoal        *int `json:"steps_goal"`
	ActiveCalories   *int `json:"active_calories"`
	IntensityMinutes *int `json:"intensity_minutes"`
}

// DayRecord 為單日計分卡；WeeklySummary 僅出現在回應的第一筆（最新日）。
type DayRecord struct {
	Date          time.Time           `json:"date"`
	Sleep         SleepDetail         `json:"sleep"`
	HRV           HRVDetail           `json:"hrv"`
	Recovery      RecoveryScore       `json:"recovery"`
	Strain        StrainScore         `json:"strain"`
	Activity      ActivityDetail      `json:"activity"`
	RestingHR     *float64            `json:"resting_hr"`
	RHRDirection  *DirectionIndicator `json:"rhr_direction"`
	Baselines     Baselines           `json:"baselines"`
	WeeklySummary *WeeklySummary      `json:"weekly_summary,omitempty"`
}

// Streak 為連續達標天數統計；每次查詢重新計算，不跨呼叫保存。
type Streak struct {
	Name         string     `json:"name"`
	CurrentCount int        `json:"current_count"`
	BestCount    int        `json:"best_count"`
	IsActive     bool       `json:"is_active"`
	LastDate     *time.Time `json:"last_date,omitempty"`
}

// PatternType 標記關聯方向。
type PatternType string

const (
	PatternPositive PatternType = "positive"
	PatternNegative PatternType = "negative"
)

// Correlation 為因果引擎輸出的單一關聯發現。
type Correlation struct {
	PatternType PatternType `json:"pattern_type"`
	Category    string      `json:"category"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      float64     `json:"impact"`
	Confidence  float64     `json:"confidence"`
	SampleSize  int         `json:"sample_size"`
}

// TrendDirection 為健康語意的趨勢方向：declining 代表往壞的方向走，
// 不論指標數值本身是升是降。
type TrendDirection string

const (
	TrendDeclining TrendDirection = "declining"
	TrendImproving TrendDirection = "improving"
)

// Severity 為趨勢警示等級。
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityConcern  Severity = "concern"
	SeverityPositive Severity = "positive"
)

// TrendAlert 為持續同向變化的警示。
type TrendAlert struct {
	Metric    string         `json:"metric"`
	Direction TrendDirection `json:"direction"`
	Days      int            `json:"days"`
	ChangePct float64        `json:"change_pct"`
	Severity  Severity       `json:"severity"`
}

// WeeklySummary 為近 7 日彙總。
type WeeklySummary struct {
	GreenDays      int           `json:"green_days"`
	YellowDays     int           `json:"yellow_days"`
	RedDays        int           `json:"red_days"`
	AvgRecovery    *float64      `json:"avg_recovery"`
	AvgStrain      *float64      `json:"avg_strain"`
	AvgSleep       *float64      `json:"avg_sleep"`
	TotalSleepDebt float64       `json:"total_sleep_debt"`
	BestDay        *time.Time    `json:"best_day,omitempty"`
	WorstDay       *time.Time    `json:"worst_day,omitempty"`
	Correlations   []Correlation `json:"correlations"`
	Streaks        []Streak      `json:"streaks"`
	TrendAlerts    []TrendAlert  `json:"trend_alerts"`
}
