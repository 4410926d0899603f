package jobs

import (
	"context"
	"fmt"
	"time"

	"farewatch/backend/internal/cache"
	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/metrics"
	"farewatch/backend/internal/models/entities"
	"farewatch/backend/internal/notify"
	"farewatch/backend/internal/services"
	"farewatch/backend/internal/store"
	"farewatch/backend/internal/workers"
)

// PriceWatchJob scans the latest search of every snapshot file and queues a
// notification for each fare at or under the alert threshold. Repeat alerts
// for the same airline/destination/price are throttled for a window.
type PriceWatchJob struct {
	store     *store.SnapshotStore
	throttle  cache.Cache
	priceRepo *repositories.PricePointRepo
	metrics   *metrics.MetricsRegistry

	threshold float64
	window    time.Duration
}

// NewPriceWatchJob creates a price watch job. priceRepo and metrics may be
// nil; price history and counters are then skipped.
func NewPriceWatchJob(
	st *store.SnapshotStore,
	throttle cache.Cache,
	priceRepo *repositories.PricePointRepo,
	reg *metrics.MetricsRegistry,
	threshold float64,
	window time.Duration,
) *PriceWatchJob {
	return &PriceWatchJob{
		store:     st,
		throttle:  throttle,
		priceRepo: priceRepo,
		metrics:   reg,
		threshold: threshold,
		window:    window,
	}
}

// Run executes one scan over all snapshot files.
func (j *PriceWatchJob) Run(ctx context.Context) error {
	start := time.Now()

	snapshots, err := j.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("price watch scan failed: %w", err)
	}

	scanned, queued, throttled := 0, 0, 0
	for _, snap := range snapshots {
		if snap.Record == nil || len(snap.Record.Searches) == 0 {
			continue
		}

		origin, destination := services.SplitRoute(snap.Record.Route)
		latest := snap.Record.Searches[len(snap.Record.Searches)-1]

		for _, flight := range latest.Flights {
			scanned++
			j.recordPricePoint(ctx, snap.Record.Route, flight.Airline, flight.Price, flight.Source)

			if flight.Price > j.threshold {
				continue
			}

			key := fmt.Sprintf("alert:%s_%s_%v", flight.Airline, destination, flight.Price)
			if _, found := j.throttle.Get(key); found {
				throttled++
				if j.metrics != nil {
					j.metrics.AlertsThrottledTotal.Inc()
				}
				continue
			}

			alert := notify.Alert{
				Airline:     flight.Airline,
				Origin:      origin,
				Destination: destination,
				Price:       flight.Price,
				Timestamp:   flight.Timestamp,
			}
			select {
			case workers.AlertQueue <- workers.AlertRequest{Alert: alert}:
				j.throttle.Set(key, true, j.window)
				queued++
			default:
				logging.Warn("Alert queue full, dropping alert",
					"destination", destination,
					"price", flight.Price,
				)
			}
		}
	}

	if j.metrics != nil {
		j.metrics.JobDuration.WithLabelValues("price_watch").Observe(time.Since(start).Seconds())
	}
	logging.Info("Price watch scan completed",
		"fares_scanned", scanned,
		"alerts_queued", queued,
		"alerts_throttled", throttled,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// RunScheduled runs the job immediately and then on every tick until the
// context is cancelled.
func (j *PriceWatchJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.Error("Price watch initial run failed", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Price watch scheduled run failed", "error", err.Error())
			}
		case <-ctx.Done():
			return
		}
	}
}

func (j *PriceWatchJob) recordPricePoint(ctx context.Context, route, airline string, price float64, source string) {
	if j.priceRepo == nil {
		return
	}
	point := &entities.PricePoint{
		Route:      route,
		Airline:    airline,
		Price:      price,
		Source:     source,
		ObservedAt: time.Now(),
	}
	if err := j.priceRepo.Insert(ctx, point); err != nil {
		logging.Warn("Failed to record price point", "route", route, "error", err.Error())
	}
}
