package api

import (
	"farewatch/backend/internal/cache"
	"farewatch/backend/internal/config"
	"farewatch/backend/internal/db"
	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/metrics"
	"farewatch/backend/internal/notify"
	"farewatch/backend/internal/services"
	"farewatch/backend/internal/store"
)

type Repositories struct {
	Alert       *repositories.AlertRepo
	PricePoints *repositories.PricePointRepo
}

type Services struct {
	Listings *services.ListingService
	Throttle cache.Cache
}

type Dependencies struct {
	Config    *config.Config
	Store     *store.SnapshotStore
	Repo      *Repositories
	Services  *Services
	Notifiers []notify.Notifier
}

// InitDependencies wires the snapshot store, databases, cache, services and
// notifiers from configuration. Price history quietly stays off without
// Postgres; everything else is always available.
func InitDependencies(cfg *config.Config, reg *metrics.MetricsRegistry) (*Dependencies, error) {
	snapshotStore := store.NewSnapshotStore(cfg.DataDir)

	orm, err := db.InitORM(cfg.PostgresDSN(), cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	repos := &Repositories{
		Alert: repositories.NewAlertRepo(orm),
	}

	if dsn := cfg.PostgresDSN(); dsn != "" {
		conn, err := db.InitPostgres(dsn)
		if err != nil {
			return nil, err
		}
		repos.PricePoints = repositories.NewPricePointRepo(conn)
	} else {
		logging.Info("Price history disabled, no Postgres configured")
	}

	throttle := cache.New(cfg.CacheBackend, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.ThrottleWindow)

	var notifiers []notify.Notifier
	if cfg.DiscordWebhookURL != "" {
		notifiers = append(notifiers, notify.NewDiscordNotifier(cfg.DiscordWebhookURL))
	} else {
		logging.Warn("No Discord webhook configured, alerts will not be delivered")
	}

	return &Dependencies{
		Config: cfg,
		Store:  snapshotStore,
		Repo:   repos,
		Services: &Services{
			Listings: services.NewListingService(snapshotStore, reg),
			Throttle: throttle,
		},
		Notifiers: notifiers,
	}, nil
}
