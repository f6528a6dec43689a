package planner

import (
	"fmt"
	"time"

	"github.com/stupnd/trippy-sub001/internal/domain"
)

// Synthetic candidates stand in for a live supplier response so the same
// route always yields the same list. Every field below is a pure function
// of (seed, item index); there is no randomness and no wall-clock read.

var hubAirports = []string{"ATL", "ORD", "DFW", "DEN", "JFK", "LHR", "AMS", "FRA"}

var carriers = []string{"Delta", "United", "American", "Lufthansa", "KLM", "British Airways"}

// RouteSeed derives the generator seed from origin+destination using a
// polynomial rolling hash (h = 31*h + byte, wrapped to signed 32 bits,
// absolute value). Keep this exact algorithm stable: regenerated fixtures
// depend on it.
func RouteSeed(origin, destination string) int {
	var h int32
	for _, b := range []byte(origin + destination) {
		h = 31*h + int32(b)
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

// GenerateFlights produces 10-12 reproducible round-trip flight candidates
// for a route and date range.
func GenerateFlights(origin, destination string, start, end time.Time) []domain.CandidateOption {
	seed := RouteSeed(origin, destination)
	count := 10 + seed%3

	basePrice := float64(300 + seed%301) // 300..600
	baseDuration := 180 + (seed*7)%241   // 180..420 minutes

	out := make([]domain.CandidateOption, 0, count)
	for i := 0; i < count; i++ {
		s := seed + i*1000

		price := basePrice * (0.85 + 0.3*float64(s%100)/100)
		duration := baseDuration + (s*3)%60

		flight := &domain.FlightDetails{
			Airline:         carriers[s%len(carriers)],
			Origin:          origin,
			Destination:     destination,
			Departure:       clockAt(s / 7),
			ReturnDeparture: clockAt(s / 11),
			DurationMin:     duration,
			Layovers:        layoversFor(s),
		}
		out = append(out, domain.CandidateOption{
			ID:       fmt.Sprintf("gen-%s-%s-%s-%s-%d", origin, destination, start.Format("2006-01-02"), end.Format("2006-01-02"), i),
			Category: domain.CategoryFlight,
			Price:    float64(int(price*100)) / 100,
			Flight:   flight,
		})
	}
	return out
}

// layoversFor draws the layover count from the fixed 20/50/30 distribution
// for 0/1/2 stops, with hubs chosen round-robin off the item seed.
func layoversFor(s int) []domain.Layover {
	var n int
	switch r := s % 10; {
	case r < 2:
		n = 0
	case r < 7:
		n = 1
	default:
		n = 2
	}
	if n == 0 {
		return nil
	}
	out := make([]domain.Layover, n)
	for j := 0; j < n; j++ {
		out[j] = domain.Layover{
			Airport:  hubAirports[(s/10+j)%len(hubAirports)],
			DwellMin: 45 + (s*(j+3))%76, // 45..120
		}
	}
	return out
}

// clockAt maps a seed-derived value onto 06:00..20:00 in 15-minute steps.
func clockAt(v int) string {
	slot := v % 57 // 56 quarter hours between 06:00 and 20:00, inclusive
	if slot < 0 {
		slot = -slot
	}
	minutes := 360 + slot*15
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
