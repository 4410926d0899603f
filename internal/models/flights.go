package models

// RawFlight is one crawled fare inside a search snapshot. Prices are copied
// through as-is; the crawler does no currency validation.
type RawFlight struct {
	Airline   string  `json:"airline"`
	Price     float64 `json:"price"`
	Source    string  `json:"source"`
	Timestamp string  `json:"timestamp"`
}

// SearchSnapshot is one crawl run for a route. Only the most recent snapshot
// in a RawSearchRecord is consulted when listings are synthesized.
type SearchSnapshot struct {
	SearchTimestamp   string      `json:"search_timestamp"`
	Flights           []RawFlight `json:"flights"`
	TotalFlightsFound int         `json:"total_flights_found"`
}

// RawSearchRecord is the on-disk shape of one flight_prices_*.json file.
type RawSearchRecord struct {
	Route    string           `json:"route"`
	Searches []SearchSnapshot `json:"searches"`
}

// FlightListing is a display-ready flight synthesized from a raw record.
// IDs restart at 1 for every synthesis pass over a single record.
type FlightListing struct {
	ID             int     `json:"id"`
	Airline        string  `json:"airline"`
	FlightNumber   string  `json:"flightNumber"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Price          float64 `json:"price"`
	SeatsAvailable int     `json:"seatsAvailable"`
	Source         string  `json:"source"`
	Timestamp      string  `json:"timestamp"`
}

// SearchCriteria are the optional flight search filters. Nil fields are not
// applied; supplied fields are ANDed together.
type SearchCriteria struct {
	Origin      string
	Destination string
	MaxPrice    *float64
}

// StoreStats summarizes the snapshot directory.
type StoreStats struct {
	TotalRoutes  int      `json:"total_routes"`
	TotalFlights int      `json:"total_flights"`
	Routes       []string `json:"routes"`
}
