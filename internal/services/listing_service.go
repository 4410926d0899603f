package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"farewatch/backend/internal/constants"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/metrics"
	"farewatch/backend/internal/models"
	"farewatch/backend/internal/store"
)

// ListingService synthesizes display-ready flight listings from raw price
// snapshots. Listings are regenerated on every call: timing, flight numbers
// and seat counts are randomized each time to simulate live inventory, so
// two calls over the same data agree only on the non-random fields.
type ListingService struct {
	store   *store.SnapshotStore
	metrics *metrics.MetricsRegistry

	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewListingService creates a listing service over the given snapshot store.
// The metrics registry may be nil.
func NewListingService(st *store.SnapshotStore, reg *metrics.MetricsRegistry) *ListingService {
	return &ListingService{
		store:   st,
		metrics: reg,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// intn draws from the service's RNG; the lock keeps concurrent requests safe.
func (s *ListingService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Synthesize builds one listing per flight in the record's most recent
// search snapshot, numbered from 1 in input order. A nil record or a record
// with no searches contributes nothing.
func (s *ListingService) Synthesize(record *models.RawSearchRecord, route string) []models.FlightListing {
	if record == nil || len(record.Searches) == 0 {
		return nil
	}

	latest := record.Searches[len(record.Searches)-1]
	origin, destination := SplitRoute(route)

	duration, ok := constants.RouteDurations[constants.RouteKey(origin, destination)]
	if !ok {
		duration = constants.DefaultFlightDuration
	}

	listings := make([]models.FlightListing, 0, len(latest.Flights))
	for i, raw := range latest.Flights {
		airline := raw.Airline
		if airline == constants.MultipleAirlines {
			airline = constants.CarrierPool[s.intn(len(constants.CarrierPool))]
		}

		departure := s.randomDeparture()

		listings = append(listings, models.FlightListing{
			ID:             i + 1,
			Airline:        airline,
			FlightNumber:   s.randomFlightNumber(airline),
			Origin:         origin,
			Destination:    destination,
			DepartureTime:  departure.Format(time.RFC3339),
			ArrivalTime:    departure.Add(duration).Format(time.RFC3339),
			Price:          raw.Price,
			SeatsAvailable: constants.SeatsAvailableMin + s.intn(constants.SeatsAvailableMax-constants.SeatsAvailableMin+1),
			Source:         raw.Source,
			Timestamp:      raw.Timestamp,
		})
	}

	if s.metrics != nil {
		s.metrics.ListingsSynthesizedTotal.Add(float64(len(listings)))
	}
	return listings
}

// ListAll synthesizes listings for every snapshot file, concatenated in
// filename order. Each file is numbered from 1 independently, so ids repeat
// across files. Storage failures degrade to an empty result.
func (s *ListingService) ListAll(ctx context.Context) []models.FlightListing {
	snapshots, err := s.store.ReadAll(ctx)
	if err != nil {
		logging.Error("Snapshot storage unavailable", "error", err.Error())
		if s.metrics != nil {
			s.metrics.StoreFailuresTotal.Inc()
		}
		return []models.FlightListing{}
	}

	all := []models.FlightListing{}
	for _, snap := range snapshots {
		if snap.Record == nil {
			continue
		}
		all = append(all, s.Synthesize(snap.Record, snap.Record.Route)...)
	}
	return all
}

// Search filters ListAll by the supplied criteria. Origin and destination
// match as case-insensitive substrings, MaxPrice is an inclusive upper
// bound, and all supplied criteria must pass.
func (s *ListingService) Search(ctx context.Context, criteria models.SearchCriteria) []models.FlightListing {
	matched := []models.FlightListing{}
	for _, listing := range s.ListAll(ctx) {
		if criteria.Origin != "" && !containsFold(listing.Origin, criteria.Origin) {
			continue
		}
		if criteria.Destination != "" && !containsFold(listing.Destination, criteria.Destination) {
			continue
		}
		if criteria.MaxPrice != nil && listing.Price > *criteria.MaxPrice {
			continue
		}
		matched = append(matched, listing)
	}
	return matched
}

// ByRoute is Search with only origin and destination supplied.
func (s *ListingService) ByRoute(ctx context.Context, origin, destination string) []models.FlightListing {
	return s.Search(ctx, models.SearchCriteria{Origin: origin, Destination: destination})
}

// SplitRoute parses a free-text "A to B" route on the first " to ". Without
// a separator the whole string is the origin; empty sides fall back to
// "Unknown".
func SplitRoute(route string) (origin, destination string) {
	if idx := strings.Index(route, constants.RouteSeparator); idx >= 0 {
		origin = route[:idx]
		destination = route[idx+len(constants.RouteSeparator):]
	} else {
		origin = route
	}

	if origin == "" {
		origin = constants.UnknownPlace
	}
	if destination == "" {
		destination = constants.UnknownPlace
	}
	return origin, destination
}

// randomDeparture picks a time on the next calendar day, hour 06-21,
// minute 00-59, in the clock's local zone.
func (s *ListingService) randomDeparture() time.Time {
	tomorrow := s.now().AddDate(0, 0, 1)
	hour := constants.DepartureHourMin + s.intn(constants.DepartureHourMax-constants.DepartureHourMin+1)
	minute := s.intn(60)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, minute, 0, 0, tomorrow.Location())
}

// randomFlightNumber builds a carrier code plus a 4-digit number. Airlines
// with several codes get one at random; unrecognized airlines fall back to
// the first code of the multi-airline placeholder.
func (s *ListingService) randomFlightNumber(airline string) string {
	codes, ok := constants.CarrierCodes[airline]
	if !ok || len(codes) == 0 {
		codes = constants.CarrierCodes[constants.MultipleAirlines][:1]
	}

	code := codes[0]
	if len(codes) > 1 {
		code = codes[s.intn(len(codes))]
	}

	number := constants.FlightNumberMin + s.intn(constants.FlightNumberMax-constants.FlightNumberMin+1)
	return fmt.Sprintf("%s%d", code, number)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
