package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fit-insights/internal/domain/insight"
)

// SubscriberSource 列出啟用中的摘要訂閱者。
type SubscriberSource interface {
	ListSubscribers(ctx context.Context) ([]uuid.UUID, error)
}

// WeeklyReporter 計算單一使用者的每週彙總。
type WeeklyReporter interface {
	Weekly(ctx context.Context, userID uuid.UUID, asOf time.Time) (insight.WeeklySummary, error)
}

// Notifier 寄送通知。
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// Engine 為每位訂閱者產生每週摘要並送出通知。
type Engine struct {
	subscribers SubscriberSource
	reporter    WeeklyReporter
	notifier    Notifier
	now         func() time.Time
}

// NewEngine 建立摘要推播引擎。
func NewEngine(subscribers SubscriberSource, reporter WeeklyReporter, notifier Notifier) *Engine {
	return &Engine{
		subscribers: subscribers,
		reporter:    reporter,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Run 執行當期所有訂閱者的摘要推播。單一訂閱者失敗不中斷其他人。
func (e *Engine) Run(ctx context.Context, asOf time.Time) error {
	subs, err := e.subscribers.ListSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	if asOf.IsZero() {
		asOf = e.now().UTC()
	}

	for _, userID := range subs {
		summary, err := e.reporter.Weekly(ctx, userID, asOf)
		if err != nil {
			continue
		}
		if err := e.notifier.SendMessage(ctx, formatMessage(userID, asOf, summary)); err != nil {
			continue
		}
	}
	return nil
}

// formatMessage 將彙總整理為純文字摘要。
func formatMessage(userID uuid.UUID, asOf time.Time, s insight.WeeklySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weekly recap for %s (week ending %s)\n", shortID(userID), asOf.Format("2006-01-02"))
	fmt.Fprintf(&b, "Zones: %d green / %d yellow / %d red\n", s.GreenDays, s.YellowDays, s.RedDays)
	if s.AvgRecovery != nil {
		fmt.Fprintf(&b, "Avg recovery: %.1f\n", *s.AvgRecovery)
	}
	if s.AvgStrain != nil {
		fmt.Fprintf(&b, "Avg strain: %.1f\n", *s.AvgStrain)
	}
	if s.AvgSleep != nil {
		fmt.Fprintf(&b, "Avg sleep: %.2fh (debt %.2fh)\n", *s.AvgSleep, s.TotalSleepDebt)
	}
	for _, streak := range s.Streaks {
		fmt.Fprintf(&b, "Streak %s: %d days\n", streak.Name, streak.CurrentCount)
	}
	for _, c := range s.Correlations {
		fmt.Fprintf(&b, "Pattern: %s\n", c.Title)
	}
	for _, a := range s.TrendAlerts {
		fmt.Fprintf(&b, "Trend: %s %s over %d days (%+.1f%%)\n", a.Metric, a.Direction, a.Days, a.ChangePct)
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
