package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fit-insights/internal/application/digest"
	appinsight "fit-insights/internal/application/insight"
	"fit-insights/internal/infra/memory"
	authinfra "fit-insights/internal/infrastructure/auth"
	"fit-insights/internal/infrastructure/config"
	"fit-insights/internal/infrastructure/notify"
	"fit-insights/internal/infrastructure/persistence/postgres"
)

// DemoUserID 為記憶體模式下合成資料的固定使用者。
var DemoUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	mux       *http.ServeMux
	store     *memory.Store
	historyUC *appinsight.HistoryUseCase
	verifier  *authinfra.Verifier
	db        *sql.DB
	tgClient  *notify.TelegramClient
	tgConfig  config.TelegramConfig
	digester  *digest.Engine
}

// NewServer 建立 API 伺服器；未提供資料庫時退回記憶體合成資料。
func NewServer(cfg config.Config, db *sql.DB) *Server {
	var store *memory.Store
	var provider appinsight.HistoryProvider
	var subscribers digest.SubscriberSource

	if db != nil && !cfg.Store.UseMemory {
		repo := postgres.NewMetricsRepo(db)
		provider = repo
		subscribers = repo
	} else {
		store = memory.NewStore()
		store.SeedSynthetic(DemoUserID, time.Now().UTC(), cfg.Store.SeedDays)
		provider = store
		subscribers = store
	}

	engineCfg := appinsight.Config{
		DirectionThresholdPct:  cfg.Insight.DirectionThresholdPct,
		StreakLookbackDays:     cfg.Insight.StreakLookbackDays,
		SleepDebtBaselineHours: cfg.Insight.SleepDebtBaselineHours,
		Patterns: appinsight.PatternConfig{
			MinHistoryDays:  cfg.Insight.Patterns.MinHistoryDays,
			MinSamples:      cfg.Insight.Patterns.MinSamples,
			MinConfidence:   cfg.Insight.Patterns.MinConfidence,
			TrendWindowDays: cfg.Insight.Patterns.TrendWindowDays,
			TrendMinDays:    cfg.Insight.Patterns.TrendMinDays,
		},
	}
	historyUC := appinsight.NewHistoryUseCase(provider, engineCfg)

	var tgClient *notify.TelegramClient
	if cfg.Notifier.Telegram.Enabled && cfg.Notifier.Telegram.Token != "" && cfg.Notifier.Telegram.ChatID != 0 {
		tgClient = notify.NewTelegramClient(cfg.Notifier.Telegram.Token, cfg.Notifier.Telegram.ChatID, "DIGEST")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		store:     store,
		historyUC: historyUC,
		verifier:  authinfra.NewVerifier(cfg.Auth.Secret),
		db:        db,
		tgClient:  tgClient,
		tgConfig:  cfg.Notifier.Telegram,
	}
	if tgClient != nil {
		s.digester = digest.NewEngine(subscribers, historyUC, tgClient)
		go s.startDigestJob()
	}
	s.registerRoutes()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Store 主要用於測試注入初始資料。
func (s *Server) Store() *memory.Store {
	return s.store
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/api/ping", s.wrapGet(s.handlePing))
	s.mux.Handle("/api/health", s.wrapGet(s.handleHealth))
	s.mux.Handle("/api/insights/history", s.requireAuth(s.wrapGet(s.handleInsightHistory)))
	s.mux.Handle("/api/insights/daily", s.requireAuth(s.wrapGet(s.handleInsightDaily)))
	s.mux.Handle("/api/insights/weekly", s.requireAuth(s.wrapGet(s.handleInsightWeekly)))
}
