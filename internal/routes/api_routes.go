package routes

import (
	"github.com/go-chi/chi/v5"

	"farewatch/backend/internal/api"
	"farewatch/backend/internal/metrics"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, jobsHandler *api.JobsHandler, metricsReg *metrics.MetricsRegistry) {

	r.Route("/api/v1", func(v1 chi.Router) {
		// Flight queries
		v1.Get("/flights", api.ListFlightsHandler(deps.Services.Listings))
		v1.Get("/flights/search", api.SearchFlightsHandler(deps.Services.Listings))
		v1.Get("/flights/route", api.FlightsByRouteHandler(deps.Services.Listings))

		// Demo booking
		v1.Post("/bookings", api.BookFlightHandler(metricsReg))

		// Price history
		v1.Get("/prices/route", api.RoutePricesHandler(deps.Repo.PricePoints))

		// Alert history
		v1.Get("/alerts/recent", api.RecentAlertsHandler(deps.Repo.Alert))
		v1.Get("/alerts/stats", api.AlertStatsHandler(deps.Repo.Alert))

		// Snapshot store status
		v1.Get("/status", api.StoreStatusHandler(deps.Store))

		// Background jobs management
		v1.Post("/admin/jobs/price-watch", jobsHandler.TriggerPriceWatch())
		v1.Post("/admin/jobs/route-refresh", jobsHandler.TriggerRouteRefresh())
	})
}
