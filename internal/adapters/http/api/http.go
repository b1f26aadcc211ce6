// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/standings/internal/domain/types"
	"golang.org/x/time/rate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StandingsDependencies
	HistoryDependencies
	AdminDependencies
}

// Board mirrors the read shape returned by the standings query.
type Board = types.Board

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	standingsHandler *StandingsHandler
	historyHandler   *HistoryHandler
	dashboardHandler *DashboardHandler
	adminHandler     *AdminHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	rateLimit      rate.Limit
	burst          int
	maxUploadBytes int64
}

// WithAdminRateLimit bounds admin POSTs to limit per second with burst.
func WithAdminRateLimit(limit float64, burst int) Option {
	return func(c *serverConfig) {
		if limit > 0 && burst > 0 {
			c.rateLimit = rate.Limit(limit)
			c.burst = burst
		}
	}
}

// WithMaxUploadBytes caps the request body of an upload.
func WithMaxUploadBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxUploadBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{rateLimit: 1, burst: 5, maxUploadBytes: 10 << 20}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Server{
		healthHandler:    NewHealthHandler(),
		standingsHandler: NewStandingsHandler(deps),
		historyHandler:   NewHistoryHandler(deps),
		dashboardHandler: NewDashboardHandler(deps, deps),
		adminHandler:     NewAdminHandler(deps, rate.NewLimiter(cfg.rateLimit, cfg.burst), cfg.maxUploadBytes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/api/history", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
	mux.HandleFunc("/admin/publish", MetricsMiddleware(s.adminHandler.HandlePublish, "publish"))
	mux.HandleFunc("/admin", MetricsMiddleware(s.adminHandler.HandleAdmin, "admin"))
	mux.HandleFunc("/", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
