package domain

import (
	"context"
	"time"
)

type TripRepository interface {
	// Write paths
	CreateTrip(ctx context.Context, t TripFacts) error
	AddMember(ctx context.Context, tripID, memberID string) error
	UpsertPreference(ctx context.Context, p MemberPreference) error
	SaveSelection(ctx context.Context, s Selection) error
	UpsertActivity(ctx context.Context, a Activity) error
	UpsertActivityRating(ctx context.Context, tripID, activityID, memberID string, rating int) error
	SaveBudgetEstimate(ctx context.Context, e BudgetEstimate) error

	// Read paths
	GetTrip(ctx context.Context, id string) (TripFacts, error)
	ListMembers(ctx context.Context, tripID string) ([]string, error)
	ListPreferences(ctx context.Context, tripID string) ([]MemberPreference, error)
	GetSelection(ctx context.Context, tripID, selectionID string) (Selection, error)
	ListActivities(ctx context.Context, tripID string, selectedOnly bool) ([]Activity, error)
	GetBudgetEstimate(ctx context.Context, tripID string) (BudgetEstimate, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// TextGenClient is the generative-text boundary. Its output is untrusted
// free text; callers must parse defensively.
type TextGenClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type FlightSupplier interface {
	SearchFlights(ctx context.Context, origin, destination string, start, end time.Time) ([]CandidateOption, error)
}

type LodgingSupplier interface {
	SearchLodging(ctx context.Context, city, country string, start, end time.Time) ([]CandidateOption, error)
}
