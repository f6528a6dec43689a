package supplier

import (
	"encoding/json"

	"github.com/stupnd/trippy-sub001/internal/domain"
)

// Wire shapes for the travel-search API. Kept separate from the domain so
// supplier schema drift stays inside this package.

type flightRecord struct {
	ID              string  `json:"id"`
	Airline         string  `json:"airline"`
	Price           float64 `json:"price"`
	DurationMin     int     `json:"duration_minutes"`
	Departure       string  `json:"departure_time"`
	ReturnDeparture string  `json:"return_departure_time"`
	Layovers        []struct {
		Airport  string `json:"airport"`
		DwellMin int    `json:"dwell_minutes"`
	} `json:"layovers"`
}

type lodgingRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Nightly  float64  `json:"nightly_price"`
	Rating   float64  `json:"rating"`
	Features []string `json:"features"`
}

func mapFlights(origin, destination string, records []flightRecord) []domain.CandidateOption {
	out := make([]domain.CandidateOption, 0, len(records))
	for _, r := range records {
		f := &domain.FlightDetails{
			Airline:         r.Airline,
			Origin:          origin,
			Destination:     destination,
			Departure:       r.Departure,
			ReturnDeparture: r.ReturnDeparture,
			DurationMin:     r.DurationMin,
		}
		for _, l := range r.Layovers {
			f.Layovers = append(f.Layovers, domain.Layover{Airport: l.Airport, DwellMin: l.DwellMin})
		}
		raw, _ := json.Marshal(r)
		out = append(out, domain.CandidateOption{
			ID:       r.ID,
			Category: domain.CategoryFlight,
			Price:    r.Price,
			Flight:   f,
			RawJSON:  raw,
		})
	}
	return out
}

func mapLodging(records []lodgingRecord) []domain.CandidateOption {
	out := make([]domain.CandidateOption, 0, len(records))
	for _, r := range records {
		raw, _ := json.Marshal(r)
		out = append(out, domain.CandidateOption{
			ID:       r.ID,
			Category: domain.CategoryLodging,
			Price:    r.Nightly,
			Lodging: &domain.LodgingDetails{
				Name:     r.Name,
				Rating:   r.Rating,
				Features: r.Features,
			},
			RawJSON: raw,
		})
	}
	return out
}
