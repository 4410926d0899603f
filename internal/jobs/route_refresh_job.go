package jobs

import (
	"context"
	"time"

	"farewatch/backend/internal/config"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/metrics"
	"farewatch/backend/internal/providers"
	"farewatch/backend/internal/store"
)

// refreshBudget is deliberately high so the crawl captures every fare; the
// price-watch job applies the real alert threshold afterwards.
const refreshBudget = 1000

// RouteRefreshJob crawls current fares for each watched route and appends
// the results to that route's snapshot file.
type RouteRefreshJob struct {
	store    *store.SnapshotStore
	provider *providers.TavilyProvider
	routes   []config.WatchedRoute
	metrics  *metrics.MetricsRegistry
}

// NewRouteRefreshJob creates a refresh job over the watched routes.
func NewRouteRefreshJob(
	st *store.SnapshotStore,
	provider *providers.TavilyProvider,
	routes []config.WatchedRoute,
	reg *metrics.MetricsRegistry,
) *RouteRefreshJob {
	return &RouteRefreshJob{
		store:    st,
		provider: provider,
		routes:   routes,
		metrics:  reg,
	}
}

// Run refreshes every watched route once. A route that fails is logged and
// skipped so the rest still refresh.
func (j *RouteRefreshJob) Run(ctx context.Context) error {
	start := time.Now()

	refreshed := 0
	for _, route := range j.routes {
		fares, err := j.provider.FetchFares(ctx, route.From, route.To, refreshBudget)
		if err != nil {
			logging.Warn("Route refresh failed",
				"from", route.From,
				"to", route.To,
				"error", err.Error(),
			)
			continue
		}

		snapshot := store.NewSearchSnapshot(fares)
		if err := j.store.AppendSearch(ctx, route.From, route.To, snapshot); err != nil {
			logging.Warn("Failed to append snapshot",
				"from", route.From,
				"to", route.To,
				"error", err.Error(),
			)
			continue
		}
		refreshed++
	}

	if j.metrics != nil {
		j.metrics.JobDuration.WithLabelValues("route_refresh").Observe(time.Since(start).Seconds())
	}
	logging.Info("Route refresh completed",
		"routes_watched", len(j.routes),
		"routes_refreshed", refreshed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// RunScheduled runs the job immediately and then on every tick until the
// context is cancelled.
func (j *RouteRefreshJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.Error("Route refresh initial run failed", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Route refresh scheduled run failed", "error", err.Error())
			}
		case <-ctx.Done():
			return
		}
	}
}
