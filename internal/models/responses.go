package models

import "time"

// APIResponse is the JSON envelope returned by every API endpoint.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// BookingRequest is the demo booking payload. Bookings are acknowledged and
// logged only; there is no inventory or payment behind them.
type BookingRequest struct {
	FlightID     int     `json:"flightId"`
	Airline      string  `json:"airline"`
	FlightNumber string  `json:"flightNumber"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Price        float64 `json:"price"`
	Passenger    string  `json:"passenger"`
}

// BookingConfirmation is the demo booking acknowledgement.
type BookingConfirmation struct {
	ConfirmationCode string    `json:"confirmationCode"`
	BookedAt         time.Time `json:"bookedAt"`
}

// AlertStats aggregates sent price alerts over common windows.
type AlertStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	ThisWeek int `json:"this_week"`
}
