package constants

import "time"

// MultipleAirlines is the placeholder airline name written by the price
// crawler when it cannot attribute a fare to a single carrier.
const MultipleAirlines = "Multiple Airlines"

// RouteSeparator splits a free-text route like "Vancouver to Toronto".
const RouteSeparator = " to "

// UnknownPlace is the fallback for a route side that cannot be parsed.
const UnknownPlace = "Unknown"

// CarrierPool is the set of airlines substituted for the MultipleAirlines
// placeholder when listings are synthesized.
var CarrierPool = []string{
	"Air Canada",
	"WestJet",
	"Porter Airlines",
	"Delta",
	"United",
	"American Airlines",
}

// CarrierCodes maps an airline name to its IATA carrier codes. Airlines not
// present here fall back to the first code of MultipleAirlines.
var CarrierCodes = map[string][]string{
	"Air Canada":        {"AC"},
	"WestJet":           {"WS"},
	"Porter Airlines":   {"PD"},
	"Delta":             {"DL"},
	"United":            {"UA"},
	"American Airlines": {"AA"},
	MultipleAirlines:    {"AC", "WS", "PD", "DL"},
}

// RouteDurations holds flight durations for known (origin, destination)
// pairs. Unknown pairs use DefaultFlightDuration.
var RouteDurations = map[string]time.Duration{
	RouteKey("Vancouver", "Toronto"): 4*time.Hour + 30*time.Minute,
	RouteKey("Toronto", "Vancouver"): 4*time.Hour + 45*time.Minute,
	RouteKey("Vancouver", "Calgary"): 1*time.Hour + 30*time.Minute,
	RouteKey("Toronto", "Montreal"):  1*time.Hour + 15*time.Minute,
}

// DefaultFlightDuration is used for route pairs with no entry in RouteDurations.
const DefaultFlightDuration = 2 * time.Hour

// RouteKey builds the lookup key for RouteDurations.
func RouteKey(origin, destination string) string {
	return origin + "|" + destination
}

// Departure window and seat bounds for synthesized listings.
const (
	DepartureHourMin  = 6
	DepartureHourMax  = 21
	SeatsAvailableMin = 1
	SeatsAvailableMax = 30
	FlightNumberMin   = 1000
	FlightNumberMax   = 9999
)
