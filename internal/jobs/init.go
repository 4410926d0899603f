package jobs

import (
	"context"

	"farewatch/backend/internal/cache"
	"farewatch/backend/internal/config"
	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/metrics"
	"farewatch/backend/internal/providers"
	"farewatch/backend/internal/store"
)

// JobsContainer holds the background jobs for manual triggering.
type JobsContainer struct {
	PriceWatch   *PriceWatchJob
	RouteRefresh *RouteRefreshJob
}

// InitializeJobs builds the tracker jobs and starts them on their schedules
// when the tracker is enabled. The refresh job only runs when routes are
// configured.
func InitializeJobs(
	ctx context.Context,
	cfg *config.Config,
	st *store.SnapshotStore,
	throttle cache.Cache,
	priceRepo *repositories.PricePointRepo,
	reg *metrics.MetricsRegistry,
) *JobsContainer {
	provider := providers.NewTavilyProvider(cfg.TavilyBaseURL, cfg.TavilyAPIKey)

	container := &JobsContainer{
		PriceWatch:   NewPriceWatchJob(st, throttle, priceRepo, reg, cfg.PriceThreshold, cfg.ThrottleWindow),
		RouteRefresh: NewRouteRefreshJob(st, provider, cfg.WatchRoutes, reg),
	}

	if cfg.TrackerEnabled {
		go container.PriceWatch.RunScheduled(ctx, cfg.WatchInterval)
		if len(cfg.WatchRoutes) > 0 {
			go container.RouteRefresh.RunScheduled(ctx, cfg.RefreshInterval)
		}
	}

	return container
}
