package domain

type OptionCategory string

const (
	CategoryFlight  OptionCategory = "flight"
	CategoryLodging OptionCategory = "lodging"
)

type Layover struct {
	Airport  string
	DwellMin int
}

type FlightDetails struct {
	Airline         string
	Origin          string
	Destination     string
	Departure       string // "HH:MM", outbound leg
	ReturnDeparture string // "HH:MM", return leg
	DurationMin     int    // airborne minutes, excludes layover dwell
	Layovers        []Layover
}

// TotalDurationMin is airborne time plus layover dwell.
func (f FlightDetails) TotalDurationMin() int {
	total := f.DurationMin
	for _, l := range f.Layovers {
		total += l.DwellMin
	}
	return total
}

type LodgingDetails struct {
	Name     string
	Rating   float64 // 0..5
	Features []string
}

// CandidateOption is a flight or lodging item; exactly one of Flight and
// Lodging is set. Immutable once scored. Price is the round-trip total for
// flights and per-night for lodging.
type CandidateOption struct {
	ID       string
	Category OptionCategory
	Price    float64
	Flight   *FlightDetails
	Lodging  *LodgingDetails
	RawJSON  []byte // full supplier payload when available
}

type ScoredOption struct {
	CandidateOption
	Score       int // 0..100
	IsCheapest  bool
	IsFastest   bool
	IsBestValue bool
}
