package digest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"fit-insights/internal/domain/insight"
)

func fptr(v float64) *float64 { return &v }

type fakeSubscribers struct {
	list []uuid.UUID
	err  error
}

func (f fakeSubscribers) ListSubscribers(context.Context) ([]uuid.UUID, error) {
	return f.list, f.err
}

type fakeReporter struct {
	summaries map[uuid.UUID]insight.WeeklySummary
	errFor    map[uuid.UUID]error
}

func (f fakeReporter) Weekly(_ context.Context, userID uuid.UUID, _ time.Time) (insight.WeeklySummary, error) {
	if err := f.errFor[userID]; err != nil {
		return insight.WeeklySummary{}, err
	}
	return f.summaries[userID], nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendMessage(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func TestEngine_Run(t *testing.T) {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	summary := insight.WeeklySummary{
		GreenDays:   4,
		YellowDays:  2,
		RedDays:     1,
		AvgRecovery: fptr(72.5),
		AvgSleep:    fptr(7.1),
	}

	notifier := &fakeNotifier{}
	engine := NewEngine(
		fakeSubscribers{list: []uuid.UUID{userID}},
		fakeReporter{summaries: map[uuid.UUID]insight.WeeklySummary{userID: summary}},
		notifier,
	)

	if err := engine.Run(context.Background(), asOf); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if !strings.Contains(msg, "4 green / 2 yellow / 1 red") {
		t.Errorf("zone line missing: %s", msg)
	}
	if !strings.Contains(msg, "Avg recovery: 72.5") {
		t.Errorf("recovery line missing: %s", msg)
	}
	if !strings.Contains(msg, "week ending 2025-03-31") {
		t.Errorf("date missing: %s", msg)
	}
}

func TestEngine_Run_ContinuesPastFailures(t *testing.T) {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	broken := uuid.New()
	healthy := uuid.New()

	notifier := &fakeNotifier{}
	engine := NewEngine(
		fakeSubscribers{list: []uuid.UUID{broken, healthy}},
		fakeReporter{
			summaries: map[uuid.UUID]insight.WeeklySummary{healthy: {GreenDays: 3}},
			errFor:    map[uuid.UUID]error{broken: errors.New("no data")},
		},
		notifier,
	)

	if err := engine.Run(context.Background(), asOf); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected the healthy subscriber to be notified, got %d messages", len(notifier.sent))
	}
}

func TestEngine_Run_SubscriberListError(t *testing.T) {
	engine := NewEngine(fakeSubscribers{err: errors.New("db down")}, fakeReporter{}, &fakeNotifier{})
	if err := engine.Run(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when subscriber listing fails")
	}
}

func TestFormatMessage_IncludesPatternsAndTrends(t *testing.T) {
	userID := uuid.New()
	summary := insight.WeeklySummary{
		Streaks: []insight.Streak{{Name: "step_goal", CurrentCount: 6}},
		Correlations: []insight.Correlation{{
			Title: "High strain days precede lower recovery",
		}},
		TrendAlerts: []insight.TrendAlert{{
			Metric:    "resting_hr",
			Direction: insight.TrendDeclining,
			Days:      4,
			ChangePct: 6.2,
		}},
	}

	msg := formatMessage(userID, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), summary)
	if !strings.Contains(msg, "Streak step_goal: 6 days") {
		t.Errorf("streak line missing: %s", msg)
	}
	if !strings.Contains(msg, "High strain days precede lower recovery") {
		t.Errorf("pattern line missing: %s", msg)
	}
	if !strings.Contains(msg, "resting_hr declining over 4 days (+6.2%)") {
		t.Errorf("trend line missing: %s", msg)
	}
}
