package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"farewatch/backend/internal/api"
	"farewatch/backend/internal/config"
	"farewatch/backend/internal/jobs"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/metrics"
	"farewatch/backend/internal/middleware"
	"farewatch/backend/internal/workers"
)

// RegisterRoutes wires dependencies, starts the tracker jobs and alert
// worker, and returns the configured router.
func RegisterRoutes(cfg *config.Config, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Store, upSince))

	// Start the alert worker before the jobs that feed it
	alertWorker := workers.NewAlertWorker(deps.Notifiers, deps.Repo.Alert, metricsReg)
	go alertWorker.Start(context.Background())

	jobsContainer := jobs.InitializeJobs(
		context.Background(),
		deps.Config,
		deps.Store,
		deps.Services.Throttle,
		deps.Repo.PricePoints,
		metricsReg,
	)
	jobsHandler := api.NewJobsHandler(jobsContainer)

	RegisterAPIRoutes(r, deps, jobsHandler, metricsReg)

	return r
}
