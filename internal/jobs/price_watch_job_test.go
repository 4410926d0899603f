package jobs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"farewatch/backend/internal/cache"
	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/models"
	"farewatch/backend/internal/store"
	"farewatch/backend/internal/workers"
)

func drainAlertQueue(t *testing.T) {
	t.Helper()
	for {
		select {
		case <-workers.AlertQueue:
		default:
			return
		}
	}
}

func seedSnapshot(t *testing.T, dir string, record models.RawSearchRecord) {
	t.Helper()
	origin, destination := "Vancouver", "Toronto"
	data, _ := json.Marshal(record)
	name := store.FilePrefix + origin + "_" + destination + store.FileSuffix
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("Failed to seed snapshot: %v", err)
	}
}

func TestPriceWatchJob_QueuesAlertsUnderThreshold(t *testing.T) {
	drainAlertQueue(t)
	dir := t.TempDir()
	seedSnapshot(t, dir, models.RawSearchRecord{
		Route: "Vancouver to Toronto",
		Searches: []models.SearchSnapshot{
			{
				Flights: []models.RawFlight{
					{Airline: "Air Canada", Price: 450.00, Source: "tavily_search", Timestamp: "2026-03-09T10:00:00Z"},
					{Airline: "WestJet", Price: 189.00, Source: "tavily_search", Timestamp: "2026-03-09T10:00:00Z"},
				},
				TotalFlightsFound: 2,
			},
		},
	})

	st := store.NewSnapshotStore(dir)
	throttle := cache.NewMemoryCache(time.Minute, time.Minute)
	job := NewPriceWatchJob(st, throttle, nil, nil, 300.00, 30*time.Minute)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	select {
	case req := <-workers.AlertQueue:
		if req.Alert.Airline != "WestJet" || req.Alert.Price != 189.00 {
			t.Errorf("Unexpected alert queued: %+v", req.Alert)
		}
		if req.Alert.Origin != "Vancouver" || req.Alert.Destination != "Toronto" {
			t.Errorf("Unexpected alert route: %+v", req.Alert)
		}
	default:
		t.Fatal("Expected an alert for the fare under threshold")
	}

	select {
	case req := <-workers.AlertQueue:
		t.Fatalf("Unexpected second alert: %+v", req.Alert)
	default:
	}
}

func TestPriceWatchJob_ThrottlesRepeatAlerts(t *testing.T) {
	drainAlertQueue(t)
	dir := t.TempDir()
	seedSnapshot(t, dir, models.RawSearchRecord{
		Route: "Vancouver to Toronto",
		Searches: []models.SearchSnapshot{
			{
				Flights: []models.RawFlight{
					{Airline: "WestJet", Price: 189.00, Source: "tavily_search", Timestamp: "2026-03-09T10:00:00Z"},
				},
				TotalFlightsFound: 1,
			},
		},
	})

	st := store.NewSnapshotStore(dir)
	throttle := cache.NewMemoryCache(time.Minute, time.Minute)
	job := NewPriceWatchJob(st, throttle, nil, nil, 300.00, 30*time.Minute)
	ctx := context.Background()

	if err := job.Run(ctx); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	queued := 0
	for {
		select {
		case <-workers.AlertQueue:
			queued++
			continue
		default:
		}
		break
	}
	if queued != 1 {
		t.Errorf("Expected 1 alert across both runs, got %d", queued)
	}
}

func TestPriceWatchJob_ThresholdIsInclusive(t *testing.T) {
	drainAlertQueue(t)
	dir := t.TempDir()
	seedSnapshot(t, dir, models.RawSearchRecord{
		Route: "Vancouver to Toronto",
		Searches: []models.SearchSnapshot{
			{
				Flights: []models.RawFlight{
					{Airline: "Porter Airlines", Price: 300.00, Source: "tavily_search", Timestamp: "2026-03-09T10:00:00Z"},
				},
				TotalFlightsFound: 1,
			},
		},
	})

	st := store.NewSnapshotStore(dir)
	throttle := cache.NewMemoryCache(time.Minute, time.Minute)
	job := NewPriceWatchJob(st, throttle, nil, nil, 300.00, 30*time.Minute)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	select {
	case req := <-workers.AlertQueue:
		if req.Alert.Price != 300.00 {
			t.Errorf("Unexpected alert: %+v", req.Alert)
		}
	default:
		t.Fatal("Expected an alert for a fare exactly at the threshold")
	}
}

func newTestPriceRepo(t *testing.T) *repositories.PricePointRepo {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE price_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		route TEXT NOT NULL,
		airline TEXT NOT NULL,
		price REAL NOT NULL,
		source TEXT NOT NULL,
		observed_at TIMESTAMP NOT NULL
	)`)
	return repositories.NewPricePointRepo(db)
}

func TestPriceWatchJob_RecordsEveryScannedFare(t *testing.T) {
	drainAlertQueue(t)
	dir := t.TempDir()
	seedSnapshot(t, dir, models.RawSearchRecord{
		Route: "Vancouver to Toronto",
		Searches: []models.SearchSnapshot{
			{
				Flights: []models.RawFlight{
					{Airline: "Air Canada", Price: 450.00, Source: "Tavily Web Crawl", Timestamp: "2026-03-09T10:00:00Z"},
					{Airline: "WestJet", Price: 189.00, Source: "Tavily Web Crawl", Timestamp: "2026-03-09T10:00:00Z"},
				},
				TotalFlightsFound: 2,
			},
		},
	})

	st := store.NewSnapshotStore(dir)
	throttle := cache.NewMemoryCache(time.Minute, time.Minute)
	priceRepo := newTestPriceRepo(t)
	job := NewPriceWatchJob(st, throttle, priceRepo, nil, 300.00, 30*time.Minute)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	drainAlertQueue(t)

	// Every scanned fare is recorded, above or below the alert threshold.
	points, err := priceRepo.RecentByRoute(context.Background(), "Vancouver to Toronto", time.Hour)
	if err != nil {
		t.Fatalf("RecentByRoute failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 price points, got %d", len(points))
	}
	prices := map[float64]bool{}
	for _, p := range points {
		prices[p.Price] = true
		if p.Source != "Tavily Web Crawl" {
			t.Errorf("Expected source copied from the fare, got %q", p.Source)
		}
		if p.ObservedAt.IsZero() {
			t.Error("Expected observation time stamped")
		}
	}
	if !prices[450.00] || !prices[189.00] {
		t.Errorf("Expected both fares recorded, got %v", prices)
	}
}

func TestPriceWatchJob_MissingDirFails(t *testing.T) {
	drainAlertQueue(t)
	st := store.NewSnapshotStore(filepath.Join(t.TempDir(), "missing"))
	throttle := cache.NewMemoryCache(time.Minute, time.Minute)
	job := NewPriceWatchJob(st, throttle, nil, nil, 300.00, 30*time.Minute)

	if err := job.Run(context.Background()); err == nil {
		t.Error("Expected an error when the snapshot dir is missing")
	}
}
