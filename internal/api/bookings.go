package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/metrics"
	"farewatch/backend/internal/models"
)

// BookFlightHandler handles POST /api/v1/bookings. Bookings are a demo
// feature: the request is logged and acknowledged with a confirmation code,
// nothing is reserved or charged.
func BookFlightHandler(reg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var booking models.BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid booking payload")
			return
		}

		code := strings.ToUpper(uuid.NewString()[:8])
		logging.Info("Flight booked",
			"confirmation_code", code,
			"airline", booking.Airline,
			"flight_number", booking.FlightNumber,
			"origin", booking.Origin,
			"destination", booking.Destination,
			"price", booking.Price,
		)

		if reg != nil {
			reg.BookingsTotal.Inc()
		}

		confirmation := models.BookingConfirmation{
			ConfirmationCode: code,
			BookedAt:         time.Now().UTC(),
		}
		respondWithSuccess(w, http.StatusCreated, &confirmation)
	}
}
