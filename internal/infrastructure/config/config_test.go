package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg = applyDefaults(cfg)

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Insight.DirectionThresholdPct != 5.0 {
		t.Errorf("expected 5.0, got %v", cfg.Insight.DirectionThresholdPct)
	}
	if cfg.Insight.Patterns.MinHistoryDays != 14 {
		t.Errorf("expected 14, got %d", cfg.Insight.Patterns.MinHistoryDays)
	}
	if cfg.Insight.SleepDebtBaselineHours != 7.5 {
		t.Errorf("expected 7.5, got %v", cfg.Insight.SleepDebtBaselineHours)
	}
	if cfg.Notifier.Telegram.Interval != 24*time.Hour {
		t.Errorf("expected 24h, got %v", cfg.Notifier.Telegram.Interval)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("USE_MEMORY_STORE", "true")
	defer os.Unsetenv("HTTP_ADDR")
	defer os.Unsetenv("USE_MEMORY_STORE")

	cfg := Config{}
	cfg = applyEnv(cfg)

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.HTTP.Addr)
	}
	if !cfg.Store.UseMemory {
		t.Error("expected memory store to be enabled")
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
http:
  addr: ":3000"
insight:
  direction_threshold_pct: 3.0
  patterns:
    min_confidence: 0.6
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Addr != ":3000" {
		t.Errorf("expected :3000, got %s", cfg.HTTP.Addr)
	}
	if cfg.Insight.DirectionThresholdPct != 3.0 {
		t.Errorf("expected 3.0, got %v", cfg.Insight.DirectionThresholdPct)
	}
	if cfg.Insight.Patterns.MinConfidence != 0.6 {
		t.Errorf("expected 0.6, got %v", cfg.Insight.Patterns.MinConfidence)
	}
	// Unset fields still receive defaults.
	if cfg.Insight.Patterns.MinSamples != 5 {
		t.Errorf("expected 5, got %d", cfg.Insight.Patterns.MinSamples)
	}
}

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.HTTP.Addr)
	}
}
