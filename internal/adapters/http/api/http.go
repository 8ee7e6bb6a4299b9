// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/okian/exoplanets/internal/domain/model"
	"github.com/okian/exoplanets/internal/domain/performance"
	"github.com/okian/exoplanets/internal/domain/types"
	"github.com/okian/exoplanets/pkg/logger"
	"golang.org/x/time/rate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ExoplanetDependencies
	ModelDependencies
	StatsProvider
}

// ExoplanetDependencies defines the catalog read operations.
type ExoplanetDependencies interface {
	List(ctx context.Context) []model.Planet
	Get(ctx context.Context, id string) types.Lookup
}

// ModelDependencies defines the model performance lookup.
type ModelDependencies interface {
	ModelPerformance(ctx context.Context, mission performance.Mission) (model.PerformanceSummary, bool)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	exoplanetHandler *ExoplanetHandler
	modelHandler     *ModelHandler

	cors    CORSConfig
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		exoplanetHandler: NewExoplanetHandler(deps),
		modelHandler:     NewModelHandler(deps),
		cors:             PermissiveCORS(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds a chi router carrying the middleware stack and every API
// route. More routes can be attached to it before serving.
func (s *Server) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	s.Register(ctx, r)
	return r
}

// Register installs the middleware stack on r and attaches all API routes.
// r must not have routes yet.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	log := s.logger
	if log == nil {
		log = logger.Get()
	}
	log = log.Named("api")

	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.cors))
	if s.limiter != nil {
		r.Use(rateLimitMiddleware(s.limiter))
	}

	r.NotFound(MetricsMiddleware(handleNotFound, "unknown"))
	r.MethodNotAllowed(MetricsMiddleware(handleMethodNotAllowed, "unknown"))

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/exoplanets", MetricsMiddleware(s.exoplanetHandler.HandleList, "exoplanets"))
	// chi never matches a param against an empty segment; the empty id is
	// still a valid key.
	r.Get("/exoplanets/", MetricsMiddleware(s.exoplanetHandler.HandleGet, "exoplanet"))
	r.Get("/exoplanets/{planet_id}", MetricsMiddleware(s.exoplanetHandler.HandleGet, "exoplanet"))
	r.Get("/ai_model", MetricsMiddleware(s.modelHandler.HandleGet, "ai_model"))

	log.Debug(ctx, "api routes registered")
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

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", nil)
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
