package api

import (
	"net/http"
	"strconv"
	"time"

	"farewatch/backend/internal/constants"
	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/models/entities"
)

// RoutePriceHistory is the GET /api/v1/prices/route response body.
type RoutePriceHistory struct {
	Route       string                `json:"route"`
	LowestPrice float64               `json:"lowest_price"`
	Points      []entities.PricePoint `json:"points"`
}

// RoutePricesHandler handles GET /api/v1/prices/route?origin=&destination=
// with an optional hours window (default 168). Returns the fares the
// tracker observed for the route plus the lowest one in the window.
func RoutePricesHandler(priceRepo *repositories.PricePointRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if priceRepo == nil {
			respondWithError(w, http.StatusServiceUnavailable, "Price history is not enabled")
			return
		}

		origin := r.URL.Query().Get("origin")
		destination := r.URL.Query().Get("destination")
		if origin == "" || destination == "" {
			respondWithError(w, http.StatusBadRequest, "origin and destination are required")
			return
		}

		hours := 168
		if qs := r.URL.Query().Get("hours"); qs != "" {
			h, err := strconv.Atoi(qs)
			if err != nil || h <= 0 {
				respondWithError(w, http.StatusBadRequest, "Invalid hours parameter")
				return
			}
			hours = h
		}
		window := time.Duration(hours) * time.Hour

		route := origin + constants.RouteSeparator + destination
		points, err := priceRepo.RecentByRoute(r.Context(), route, window)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load price history")
			return
		}
		lowest, err := priceRepo.LowestByRoute(r.Context(), route, window)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load price history")
			return
		}

		history := RoutePriceHistory{
			Route:       route,
			LowestPrice: lowest,
			Points:      points,
		}
		respondWithSuccess(w, http.StatusOK, &history)
	}
}
