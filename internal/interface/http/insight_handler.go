package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	appinsight "fit-insights/internal/application/insight"
)

func (s *Server) handleInsightHistory(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}
	days := parseIntDefault(r.URL.Query().Get("days"), 0)

	records, err := s.historyUC.Execute(r.Context(), appinsight.HistoryInput{
		UserID: currentUserID(r),
		AsOf:   asOf,
		Days:   days,
	})
	if err != nil {
		log.Printf("insight history failed: %v", err)
		writeError(w, http.StatusInternalServerError, errCodeInternal, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(records),
		"days":    records,
	})
}

func (s *Server) handleInsightDaily(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}

	records, err := s.historyUC.Execute(r.Context(), appinsight.HistoryInput{
		UserID: currentUserID(r),
		AsOf:   asOf,
		Days:   1,
	})
	if err != nil {
		log.Printf("insight daily failed: %v", err)
		writeError(w, http.StatusInternalServerError, errCodeInternal, "internal error")
		return
	}
	if len(records) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"day":     nil,
		})
		return
	}

	// 單日查詢不附每週彙總。
	day := records[0]
	day.WeeklySummary = nil
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"day":     day,
	})
}

func (s *Server) handleInsightWeekly(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}

	summary, err := s.historyUC.Weekly(r.Context(), currentUserID(r), asOf)
	if err != nil {
		log.Printf("insight weekly failed: %v", err)
		writeError(w, http.StatusInternalServerError, errCodeInternal, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"summary": summary,
	})
}

// startDigestJob 週期性執行摘要推播。
func (s *Server) startDigestJob() {
	interval := s.tgConfig.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := s.digester.Run(ctx, time.Now().UTC()); err != nil {
			log.Printf("digest run failed: %v", err)
		}
		cancel()
	}
}
