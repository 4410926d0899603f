package api

import (
	"encoding/json"
	"net/http"
	"time"

	"farewatch/backend/internal/store"
)

// ServiceStatus reports one dependency's health.
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// HealthCheckResponse is the GET /healthCheck body.
type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(st *store.SnapshotStore, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]ServiceStatus)

		storeStatus := "ok"
		storeDetails := "Snapshot directory readable"
		if _, err := st.List(r.Context()); err != nil {
			storeStatus = "down"
			storeDetails = err.Error()
		}
		services["snapshot_store"] = ServiceStatus{
			Status:  storeStatus,
			Details: storeDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := HealthCheckResponse{
			Status:   overallStatus,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Services: services,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
