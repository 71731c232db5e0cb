// Package server assembles the HTTP surface: router, middleware, and
// the submission pipeline endpoint.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/mailer"
	"github.com/formrelay/formrelay/internal/ratelimit"
	"github.com/formrelay/formrelay/internal/server/handlers"
	servermw "github.com/formrelay/formrelay/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    config.ServerConfig
	logger *zap.Logger
}

// Deps are the pipeline collaborators the server wires into handlers.
// The limiter is passed in as an explicit dependency; nothing outside
// the submit handler touches its state.
type Deps struct {
	Limiter  *ratelimit.Limiter
	Notifier mailer.Notifier
	Health   *handlers.HealthManager
}

// New creates a new HTTP server instance. logger may be nil.
func New(cfg config.Config, deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware order: RequestID → logging → recovery, so panics are
	// logged with their request id.
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestLogger(logger))
	r.Use(servermw.Recovery(logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeErrorBody(w, http.StatusNotFound, "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeErrorBody(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	s := &Server{
		router: r,
		cfg:    cfg.Server,
		logger: logger,
	}

	s.registerRoutes(cfg, deps)

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	s.logger.Info("starting HTTP server", zap.String("addr", addr))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}
