package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 儲存 HTTP API 及外部相依的執行設定。
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	DB       DBConfig       `yaml:"db"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
	Insight  InsightConfig  `yaml:"insight"`
	Notifier NotifierConfig `yaml:"notifier"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxIdleTime  time.Duration `yaml:"max_idle_time"`
}

type AuthConfig struct {
	Secret string `yaml:"secret"`
}

// StoreConfig 控制量測資料來源；未設定資料庫時使用記憶體內合成資料。
type StoreConfig struct {
	UseMemory bool `yaml:"use_memory"`
	SeedDays  int  `yaml:"seed_days"`
}

// InsightConfig 為洞察引擎的調校表，對應應用層的 Config。
type InsightConfig struct {
	DirectionThresholdPct  float64        `yaml:"direction_threshold_pct"`
	StreakLookbackDays     int            `yaml:"streak_lookback_days"`
	SleepDebtBaselineHours float64        `yaml:"sleep_debt_baseline_hours"`
	Patterns               PatternsConfig `yaml:"patterns"`
}

type PatternsConfig struct {
	MinHistoryDays  int     `yaml:"min_history_days"`
	MinSamples      int     `yaml:"min_samples"`
	MinConfidence   float64 `yaml:"min_confidence"`
	TrendWindowDays int     `yaml:"trend_window_days"`
	TrendMinDays    int     `yaml:"trend_min_days"`
}

type NotifierConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Token    string        `yaml:"token"`
	ChatID   int64         `yaml:"chat_id"`
	Interval time.Duration `yaml:"interval"`
}

// LoadFromFile 從 YAML 組態檔載入設定。
func LoadFromFile(path string) (Config, error) {
	// 嘗試載入 .env 檔案（如果存在）
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 5
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 2
	}
	if cfg.DB.MaxIdleTime == 0 {
		cfg.DB.MaxIdleTime = 15 * time.Minute
	}
	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = "dev-secret-change-me"
	}
	if cfg.Store.SeedDays == 0 {
		cfg.Store.SeedDays = 120
	}
	if cfg.Insight.DirectionThresholdPct == 0 {
		cfg.Insight.DirectionThresholdPct = 5.0
	}
	if cfg.Insight.StreakLookbackDays == 0 {
		cfg.Insight.StreakLookbackDays = 60
	}
	if cfg.Insight.SleepDebtBaselineHours == 0 {
		cfg.Insight.SleepDebtBaselineHours = 7.5
	}
	if cfg.Insight.Patterns.MinHistoryDays == 0 {
		cfg.Insight.Patterns.MinHistoryDays = 14
	}
	if cfg.Insight.Patterns.MinSamples == 0 {
		cfg.Insight.Patterns.MinSamples = 5
	}
	if cfg.Insight.Patterns.MinConfidence == 0 {
		cfg.Insight.Patterns.MinConfidence = 0.5
	}
	if cfg.Insight.Patterns.TrendWindowDays == 0 {
		cfg.Insight.Patterns.TrendWindowDays = 7
	}
	if cfg.Insight.Patterns.TrendMinDays == 0 {
		cfg.Insight.Patterns.TrendMinDays = 3
	}
	if cfg.Notifier.Telegram.Interval == 0 {
		cfg.Notifier.Telegram.Interval = 24 * time.Hour
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("DB_DSN"); val != "" {
		cfg.DB.DSN = val
	}
	if val := os.Getenv("AUTH_SECRET"); val != "" {
		cfg.Auth.Secret = val
	}
	if val := os.Getenv("USE_MEMORY_STORE"); val != "" {
		cfg.Store.UseMemory = (val == "true")
	}
	if val := os.Getenv("SEED_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Store.SeedDays = n
		}
	}
	if val := os.Getenv("TELEGRAM_TOKEN"); val != "" {
		cfg.Notifier.Telegram.Token = val
	}
	if val := os.Getenv("TELEGRAM_CHAT_ID"); val != "" {
		if id, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Notifier.Telegram.ChatID = id
		}
	}
	if val := os.Getenv("TELEGRAM_ENABLED"); val != "" {
		cfg.Notifier.Telegram.Enabled = (val == "true")
	}
	if val := os.Getenv("DIGEST_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Notifier.Telegram.Interval = d
		}
	}
	return cfg
}
