package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/service/matcher"
	"github.com/heartmarshall/citizenship-glossary/internal/transport/middleware"
	"github.com/heartmarshall/citizenship-glossary/internal/transport/rest"
)

// RouterDeps are the handlers and settings mounted by NewRouter.
// Metrics and Limiter may be nil.
type RouterDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Matcher *matcher.Service
	Health  *rest.HealthHandler
	Metrics http.Handler
	Limiter *middleware.RateLimiter
}

// NewRouter builds the HTTP handler. API routes are rate limited; health checks
// and /metrics are not.
func NewRouter(deps RouterDeps) http.Handler {
	matchHandler := rest.NewMatchHandler(deps.Logger, deps.Matcher, deps.Config.Server.MaxBodyBytes)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/match", matchHandler.Match)
	api.HandleFunc("GET /api/v1/glossary", matchHandler.Glossary)

	var apiHandler http.Handler = api
	if deps.Limiter != nil {
		apiHandler = deps.Limiter.Limit()(api)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.Config.CORS),
	)(mux)
}
