package domain

import "time"

type Vote struct {
	Approved bool
	Reason   *string
}

// ApprovalState maps member id to that member's vote for one selected
// option. Finalization is always recomputed from this map plus the current
// member list; it is never cached.
type ApprovalState map[string]Vote

// Selection is one chosen candidate (flight or lodging) under group review.
type Selection struct {
	ID        string
	TripID    string
	Category  OptionCategory
	Option    CandidateOption
	Approvals ApprovalState
}

type Activity struct {
	ID       string
	TripID   string
	Name     string
	Selected bool
	Ratings  map[string]int // member id -> 1..5
}

// ActivitySummary is derived from Ratings on demand.
type ActivitySummary struct {
	AverageRating float64
	Conflicts     []string // members who rated below 3
}

type BudgetEstimate struct {
	TripID      string
	Min         float64
	Max         float64
	BaselineMin float64
	BaselineMax float64
	UpdatedAt   time.Time
}
