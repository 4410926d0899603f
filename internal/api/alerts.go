package api

import (
	"net/http"
	"strconv"
	"time"

	"farewatch/backend/internal/db/repositories"
)

// RecentAlertsHandler handles GET /api/v1/alerts/recent?hours=N (default 24).
func RecentAlertsHandler(alertRepo *repositories.AlertRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hours := 24
		if qs := r.URL.Query().Get("hours"); qs != "" {
			h, err := strconv.Atoi(qs)
			if err != nil || h <= 0 {
				respondWithError(w, http.StatusBadRequest, "Invalid hours parameter")
				return
			}
			hours = h
		}

		alerts, err := alertRepo.Recent(r.Context(), time.Duration(hours)*time.Hour)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load alert history")
			return
		}
		respondWithSuccess(w, http.StatusOK, &alerts)
	}
}

// AlertStatsHandler handles GET /api/v1/alerts/stats.
func AlertStatsHandler(alertRepo *repositories.AlertRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := alertRepo.Stats(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load alert stats")
			return
		}
		respondWithSuccess(w, http.StatusOK, stats)
	}
}
