package httpapi

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"status":    "alive",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "not_configured"
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err == nil {
			dbStatus = "ok"
		} else {
			dbStatus = "unavailable"
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"db":             dbStatus,
		"memory_store":   s.store != nil,
		"digest_enabled": s.digester != nil,
		"time":           time.Now().UTC().Format(time.RFC3339),
	})
}
