package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/server/handlers"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(cfg config.Config, deps Deps) {
	submit := handlers.NewSubmitHandler(cfg.Sites(), deps.Limiter, deps.Notifier, s.logger)
	s.router.Post("/api/submit", submit.ServeHTTP)

	if deps.Health != nil {
		s.router.Get("/health", deps.Health.HealthHandler)
	}
	s.router.Get("/version", handlers.VersionHandler)

	if cfg.Metrics.Enabled {
		s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
	}
}

// writeErrorBody mirrors the handlers package envelope for router-level
// responses (404/405).
func writeErrorBody(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": code})
}
