package app

import (
	"context"
	"fmt"

	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/planner"
)

// DecisionService records votes and activity ratings and exposes the
// derived consensus state. Votes are read-modify-write against the store;
// callers relying on concurrent voting must serialize at the repo level.
type DecisionService struct {
	repo domain.TripRepository
}

func NewDecisionService(r domain.TripRepository) *DecisionService {
	return &DecisionService{repo: r}
}

// SelectionView is the selection plus everything derived from it. Nothing
// here is cached; finalization is recomputed on every read.
type SelectionView struct {
	Selection  domain.Selection
	Status     planner.SelectionStatus
	Finalized  bool
	Dissenters []string
}

func (s *DecisionService) view(ctx context.Context, sel domain.Selection) (SelectionView, error) {
	members, err := s.repo.ListMembers(ctx, sel.TripID)
	if err != nil {
		return SelectionView{}, err
	}
	return SelectionView{
		Selection:  sel,
		Status:     planner.Status(sel.Approvals, members),
		Finalized:  planner.Finalized(sel.Approvals, members),
		Dissenters: planner.Dissenters(sel.Approvals, members),
	}, nil
}

// CastVote sets or overwrites one member's vote on a selection.
func (s *DecisionService) CastVote(ctx context.Context, tripID, selectionID, memberID string, approved bool, reason *string) (SelectionView, error) {
	if memberID == "" {
		return SelectionView{}, domain.Invalid("member id", "required")
	}
	members, err := s.repo.ListMembers(ctx, tripID)
	if err != nil {
		return SelectionView{}, err
	}
	if !contains(members, memberID) {
		return SelectionView{}, domain.Invalid("member id", "not a member of this trip")
	}

	sel, err := s.repo.GetSelection(ctx, tripID, selectionID)
	if err != nil {
		return SelectionView{}, err
	}
	sel.Approvals = planner.RecordVote(sel.Approvals, memberID, approved, reason)
	if err := s.repo.SaveSelection(ctx, sel); err != nil {
		return SelectionView{}, fmt.Errorf("save selection %s: %w", selectionID, err)
	}
	return s.view(ctx, sel)
}

// GetSelection returns the selection with its recomputed consensus state.
func (s *DecisionService) GetSelection(ctx context.Context, tripID, selectionID string) (SelectionView, error) {
	sel, err := s.repo.GetSelection(ctx, tripID, selectionID)
	if err != nil {
		return SelectionView{}, err
	}
	return s.view(ctx, sel)
}

// RateActivity upserts a member's 1..5 rating and returns the activity's
// recomputed summary.
func (s *DecisionService) RateActivity(ctx context.Context, tripID, activityID, memberID string, rating int) (domain.ActivitySummary, error) {
	if rating < 1 || rating > 5 {
		return domain.ActivitySummary{}, domain.Invalid("rating", "must be between 1 and 5")
	}
	members, err := s.repo.ListMembers(ctx, tripID)
	if err != nil {
		return domain.ActivitySummary{}, err
	}
	if !contains(members, memberID) {
		return domain.ActivitySummary{}, domain.Invalid("member id", "not a member of this trip")
	}
	if err := s.repo.UpsertActivityRating(ctx, tripID, activityID, memberID, rating); err != nil {
		return domain.ActivitySummary{}, err
	}

	acts, err := s.repo.ListActivities(ctx, tripID, false)
	if err != nil {
		return domain.ActivitySummary{}, err
	}
	for _, a := range acts {
		if a.ID == activityID {
			return planner.SummarizeActivity(a), nil
		}
	}
	return domain.ActivitySummary{}, domain.ErrNotFound
}

// ActivitySetReport is the 80% rule outcome for the selected activity set.
type ActivitySetReport struct {
	Valid          bool
	FailingMembers []string
}

// ValidateActivities applies the 80% rule to the currently selected set.
func (s *DecisionService) ValidateActivities(ctx context.Context, tripID string) (ActivitySetReport, error) {
	members, err := s.repo.ListMembers(ctx, tripID)
	if err != nil {
		return ActivitySetReport{}, err
	}
	selected, err := s.repo.ListActivities(ctx, tripID, true)
	if err != nil {
		return ActivitySetReport{}, err
	}
	ok, failing := planner.ValidateActivitySet(selected, members)
	return ActivitySetReport{Valid: ok, FailingMembers: failing}, nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
