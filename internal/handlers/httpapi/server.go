package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/apiarylab/swarmtrack/internal/services/alerting"
	"github.com/apiarylab/swarmtrack/internal/services/introduction"
	"github.com/apiarylab/swarmtrack/internal/services/registry"
	"github.com/apiarylab/swarmtrack/internal/services/session"
	"github.com/apiarylab/swarmtrack/internal/services/stats"
)

// operatorHeader carries the authenticated operator identity, injected by the
// gateway in front of this service
const operatorHeader = "X-Operator-ID"

// Config holds the dependencies for the HTTP server
type Config struct {
	Addr          string
	Sessions      session.Service
	Registry      registry.Service
	Introductions introduction.Service
	Alerts        alerting.Service
	Stats         stats.Service
	Logger        *slog.Logger
}

// Server exposes the requeening engine over HTTP
type Server struct {
	sessions      session.Service
	registry      registry.Service
	introductions introduction.Service
	alerts        alerting.Service
	stats         stats.Service
	logger        *slog.Logger
	httpServer    *http.Server
}

// New creates a new HTTP server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Sessions == nil || cfg.Registry == nil || cfg.Introductions == nil || cfg.Alerts == nil || cfg.Stats == nil {
		return nil, errors.New("all services must be provided")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		sessions:      cfg.Sessions,
		registry:      cfg.Registry,
		introductions: cfg.Introductions,
		alerts:        cfg.Alerts,
		stats:         cfg.Stats,
		logger:        logger,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /sites/{siteID}/sessions", s.operator(s.handleOpenSession))
	mux.Handle("GET /sites/{siteID}/sessions/active", s.operator(s.handleActiveSession))
	mux.Handle("POST /sessions/{sessionID}/close", s.operator(s.handleCloseSession))
	mux.Handle("POST /sessions/{sessionID}/colonies", s.operator(s.handleRegisterColony))
	mux.Handle("POST /sessions/{sessionID}/introductions", s.operator(s.handleIntroduce))
	mux.Handle("GET /sessions/{sessionID}/stats", s.operator(s.handleSessionStats))
	mux.Handle("POST /colonies/{colonyID}/outcome", s.operator(s.handleRecordOutcome))
	mux.Handle("POST /colonies/{colonyID}/reintroductions", s.operator(s.handleReintroduce))
	mux.Handle("GET /colonies/{colonyID}/events", s.operator(s.handleColonyEvents))
	mux.Handle("GET /colonies/{colonyID}/alerts", s.operator(s.handleColonyAlerts))
	mux.Handle("GET /alerts/upcoming", s.operator(s.handleUpcomingAlerts))
	mux.Handle("GET /stats/overview", s.operator(s.handleOverviewStats))

	return s.logged(mux)
}

// operator rejects requests missing the operator identity header before the
// handler runs
func (s *Server) operator(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(operatorHeader) == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{
				Error: "missing operator identity",
				Kind:  "unauthorized",
			})
			return
		}
		next(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Start serves HTTP until the listener fails or Stop is called
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
