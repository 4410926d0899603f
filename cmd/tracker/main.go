package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"farewatch/backend/internal/cache"
	"farewatch/backend/internal/config"
	"farewatch/backend/internal/db"
	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/jobs"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/notify"
	"farewatch/backend/internal/store"
	"farewatch/backend/internal/workers"
)

// Standalone price-tracking agent: runs the refresh and watch jobs without
// the HTTP API, for deployments where the server and tracker are split.
func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Farewatch tracker starting",
		"data_dir", cfg.DataDir,
		"routes_watched", len(cfg.WatchRoutes),
		"price_threshold", cfg.PriceThreshold,
	)

	snapshotStore := store.NewSnapshotStore(cfg.DataDir)

	orm, err := db.InitORM(cfg.PostgresDSN(), cfg.SQLitePath)
	if err != nil {
		logging.Error("Failed to open alert database", "error", err.Error())
		os.Exit(1)
	}
	alertRepo := repositories.NewAlertRepo(orm)

	var priceRepo *repositories.PricePointRepo
	if dsn := cfg.PostgresDSN(); dsn != "" {
		conn, err := db.InitPostgres(dsn)
		if err != nil {
			logging.Error("Failed to connect to Postgres", "error", err.Error())
			os.Exit(1)
		}
		priceRepo = repositories.NewPricePointRepo(conn)
	}

	throttle := cache.New(cfg.CacheBackend, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.ThrottleWindow)
	defer throttle.Close()

	var notifiers []notify.Notifier
	if cfg.DiscordWebhookURL != "" {
		notifiers = append(notifiers, notify.NewDiscordNotifier(cfg.DiscordWebhookURL))
	} else {
		logging.Warn("No Discord webhook configured, alerts will not be delivered")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alertWorker := workers.NewAlertWorker(notifiers, alertRepo, nil)
	go alertWorker.Start(ctx)

	// Tracker binary always runs the jobs, regardless of TRACKER_ENABLED.
	cfg.TrackerEnabled = true
	jobs.InitializeJobs(ctx, cfg, snapshotStore, throttle, priceRepo, nil)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logging.Info("Farewatch tracker shutting down")
}
