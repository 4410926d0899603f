package api

import (
	"net/http"
	"strconv"

	"farewatch/backend/internal/models"
	"farewatch/backend/internal/services"
)

// ListFlightsHandler handles GET /api/v1/flights. Every request re-reads
// the snapshot files and synthesizes a fresh set of listings.
func ListFlightsHandler(listings *services.ListingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flights := listings.ListAll(r.Context())
		respondWithSuccess(w, http.StatusOK, &flights)
	}
}

// SearchFlightsHandler handles GET /api/v1/flights/search with optional
// origin, destination and maxPrice query parameters.
func SearchFlightsHandler(listings *services.ListingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := models.SearchCriteria{
			Origin:      r.URL.Query().Get("origin"),
			Destination: r.URL.Query().Get("destination"),
		}

		if qs := r.URL.Query().Get("maxPrice"); qs != "" {
			maxPrice, err := strconv.ParseFloat(qs, 64)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid maxPrice parameter")
				return
			}
			criteria.MaxPrice = &maxPrice
		}

		flights := listings.Search(r.Context(), criteria)
		respondWithSuccess(w, http.StatusOK, &flights)
	}
}

// FlightsByRouteHandler handles GET /api/v1/flights/route. Both origin and
// destination are required.
func FlightsByRouteHandler(listings *services.ListingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.URL.Query().Get("origin")
		destination := r.URL.Query().Get("destination")
		if origin == "" || destination == "" {
			respondWithError(w, http.StatusBadRequest, "origin and destination are required")
			return
		}

		flights := listings.ByRoute(r.Context(), origin, destination)
		respondWithSuccess(w, http.StatusOK, &flights)
	}
}
