package api

import (
	"net/http"

	"insertion-route-service/internal/api/handlers"
	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/metrics"
	"insertion-route-service/internal/ports"
	"insertion-route-service/internal/services"

	"golang.org/x/time/rate"
)

// Deps are the adapters and settings the HTTP API is wired with.
// Cache, Metrics, and PlansLimiter are optional.
type Deps struct {
	Instances    ports.InstanceRepository
	Plans        ports.SolutionRepository
	Cache        ports.SolutionCache
	Metrics      *metrics.Metrics
	DefaultFleet domain.FleetConfig
	Options      services.ConstructorOptions
	PlansLimiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	instanceHandler := &handlers.InstanceHandler{Repo: d.Instances}
	planHandler := &handlers.PlanHandler{
		Instances:    d.Instances,
		Plans:        d.Plans,
		Cache:        d.Cache,
		DefaultFleet: d.DefaultFleet,
		Options:      d.Options,
	}

	var createPlan http.Handler = http.HandlerFunc(planHandler.Create)
	if d.PlansLimiter != nil {
		createPlan = rateLimitMiddleware(d.PlansLimiter, createPlan)
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /instances", instanceHandler.List)
	mux.HandleFunc("POST /instances", instanceHandler.Create)
	mux.HandleFunc("GET /instances/{name}", instanceHandler.Get)
	mux.Handle("POST /plans", createPlan)
	mux.HandleFunc("GET /plans/{id}", planHandler.Get)

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
		return requestIDMiddleware(loggingMiddleware(metricsMiddleware(d.Metrics, mux)))
	}
	return requestIDMiddleware(loggingMiddleware(mux))
}
