package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authinfra "fit-insights/internal/infrastructure/auth"
	"fit-insights/internal/infrastructure/config"
)

func testConfig() config.Config {
	return config.Config{
		Auth:  config.AuthConfig{Secret: "test-secret"},
		Store: config.StoreConfig{UseMemory: true, SeedDays: 60},
		Insight: config.InsightConfig{
			DirectionThresholdPct:  5.0,
			StreakLookbackDays:     60,
			SleepDebtBaselineHours: 7.5,
			Patterns: config.PatternsConfig{
				MinHistoryDays:  14,
				MinSamples:      5,
				MinConfidence:   0.5,
				TrendWindowDays: 7,
				TrendMinDays:    3,
			},
		},
	}
}

func authedRequest(t *testing.T, method, target string, userID uuid.UUID) *http.Request {
	t.Helper()
	token, err := authinfra.Sign("test-secret", userID, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestServer_Ping(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "pong" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestServer_Ping_MethodNotAllowed(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ping", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestServer_Health(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["db"] != "not_configured" {
		t.Errorf("unexpected db status: %v", body["db"])
	}
	if body["memory_store"] != true {
		t.Errorf("memory store should be active: %v", body)
	}
}

func TestServer_InsightsRequireAuth(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	for _, target := range []string{
		"/api/insights/history",
		"/api/insights/daily",
		"/api/insights/weekly",
	} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", target, rec.Code)
		}
	}
}

func TestServer_InsightsRejectBadToken(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/insights/daily", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error_code"] != errCodeUnauthorized {
		t.Errorf("unexpected error code: %v", body)
	}
}

func TestServer_InsightHistory(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/insights/history?days=7", DemoUserID))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["count"] != float64(7) {
		t.Errorf("expected 7 records, got %v", body["count"])
	}
	days, ok := body["days"].([]interface{})
	if !ok || len(days) != 7 {
		t.Fatalf("unexpected days payload: %v", body["days"])
	}
	// Weekly summary rides on the newest record only.
	first := days[0].(map[string]interface{})
	if _, ok := first["weekly_summary"]; !ok {
		t.Error("newest record should include weekly_summary")
	}
	second := days[1].(map[string]interface{})
	if _, ok := second["weekly_summary"]; ok {
		t.Error("older records should omit weekly_summary")
	}
}

func TestServer_InsightHistory_BadDate(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/insights/history?date=31-03-2025", DemoUserID))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServer_InsightDaily(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/insights/daily", DemoUserID))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	day, ok := body["day"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a day record: %v", body)
	}
	if _, ok := day["recovery"]; !ok {
		t.Errorf("day record missing recovery: %v", day)
	}
	if _, ok := day["weekly_summary"]; ok {
		t.Errorf("single-day record should not carry a weekly summary")
	}
}

func TestServer_InsightDaily_UnknownUserHasNoData(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/insights/daily", uuid.New()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["day"] != nil {
		t.Errorf("expected null day for user without data: %v", body)
	}
}

func TestServer_InsightWeekly(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/insights/weekly", DemoUserID))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	summary, ok := body["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected summary: %v", body)
	}
	for _, key := range []string{"green_days", "yellow_days", "red_days", "correlations", "streaks", "trend_alerts"} {
		if _, ok := summary[key]; !ok {
			t.Errorf("summary missing %q: %v", key, summary)
		}
	}
}
