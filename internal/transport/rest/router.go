package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/metrics"
	"github.com/heartmarshall/rastreio-bot/internal/transport/middleware"
)

// RouterDeps holds everything the HTTP surface needs.
type RouterDeps struct {
	Logger    *slog.Logger
	Health    *HealthHandler
	Dashboard *DashboardHandler
	Metrics   *metrics.Metrics
	CORS      config.CORSConfig
	// Auth guards /api routes when non-nil.
	Auth middleware.Middleware
	// RateLimit throttles /api routes when non-nil.
	RateLimit middleware.Middleware
}

// NewRouter mounts the probes, /metrics and the dashboard API.
func NewRouter(d RouterDeps) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/stats", d.Dashboard.Stats)
	api.HandleFunc("GET /api/conversations", d.Dashboard.Conversations)
	api.HandleFunc("GET /api/conversations/{id}", d.Dashboard.Conversation)
	api.HandleFunc("GET /api/tracking-data", d.Dashboard.Tracking)
	api.HandleFunc("GET /api/system-logs", d.Dashboard.SystemLogs)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	mux.Handle("GET /metrics", d.Metrics.Handler())
	mux.Handle("/api/", middleware.Chain(d.RateLimit, d.Auth)(api))

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Logger(d.Logger, d.Metrics),
		middleware.CORS(d.CORS),
	)(mux)
}
