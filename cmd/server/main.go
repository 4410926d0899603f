package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farewatch/backend/internal/config"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Farewatch starting up",
		"environment", cfg.AppEnv,
		"data_dir", cfg.DataDir,
		"tracker_enabled", cfg.TrackerEnabled,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	upSince := time.Now()

	// Initialize router with Chi; this also wires dependencies and starts
	// the tracker jobs and alert worker.
	router := routes.RegisterRoutes(cfg, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	logging.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.AppEnv,
	)

	log.Printf("Starting server on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
