package domain

import "time"

type TripFacts struct {
	ID        string
	City      string
	Country   string
	StartDate time.Time
	EndDate   time.Time
	Travelers int
	Currency  string // always "USD"
}

// MemberPreference is one member's wishlist for a trip. Every field is
// optional; only the owning member writes it.
type MemberPreference struct {
	TripID   string
	MemberID string

	Origin            *string
	NightlyBudgetMin  *float64
	NightlyBudgetMax  *float64
	LodgingType       *string
	Interests         []string
	FlightFlexibility string // ""|low|medium|high
	BudgetSensitivity string // ""|low|medium|high
}

// GroupConstraints is derived from the current MemberPreference set and is
// never persisted; recompute it whenever preferences change.
type GroupConstraints struct {
	NightlyBudgetMin float64
	NightlyBudgetMax float64
	// BudgetWidened is true when member ranges did not overlap and the
	// union was used instead of the intersection.
	BudgetWidened bool

	Interests []string

	// Raw per-member levels, order-preserving. Downstream consumers (the
	// prompt builder) want the full spread, not a majority vote.
	FlightFlexibilities []string
	BudgetSensitivities []string
}
