package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/planner"
)

// BudgetService derives the per-person budget estimate, optionally refined
// by a generative-text suggestion that is clamped against the rule-based
// baseline before anything is persisted.
type BudgetService struct {
	repo domain.TripRepository
	gen  domain.TextGenClient
}

func NewBudgetService(r domain.TripRepository, gen domain.TextGenClient) *BudgetService {
	return &BudgetService{repo: r, gen: gen}
}

// Refresh recomputes and persists the trip's budget estimate. A supplier
// outage degrades to the baseline; a malformed suggestion fails the
// operation so the caller can tell the difference.
func (s *BudgetService) Refresh(ctx context.Context, tripID string) (domain.BudgetEstimate, error) {
	facts, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return domain.BudgetEstimate{}, err
	}
	prefs, err := s.repo.ListPreferences(ctx, tripID)
	if err != nil {
		return domain.BudgetEstimate{}, err
	}
	gc := planner.Aggregate(prefs)

	var external *planner.ExternalEstimate
	if s.gen != nil {
		text, gerr := s.gen.Complete(ctx, budgetPrompt(facts, gc))
		if gerr != nil {
			log.Warn().Err(gerr).Str("trip", tripID).Msg("budget suggestion unavailable, using baseline")
		} else {
			external, err = parseBudgetSuggestion(text)
			if err != nil {
				return domain.BudgetEstimate{}, err
			}
		}
	}

	est, err := planner.Estimate(facts, gc, external)
	if err != nil {
		return domain.BudgetEstimate{}, err
	}
	est.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveBudgetEstimate(ctx, est); err != nil {
		return domain.BudgetEstimate{}, fmt.Errorf("save budget estimate: %w", err)
	}
	return est, nil
}

// Get returns the last persisted estimate.
func (s *BudgetService) Get(ctx context.Context, tripID string) (domain.BudgetEstimate, error) {
	return s.repo.GetBudgetEstimate(ctx, tripID)
}

// budgetPrompt assembles the natural-language prompt from trip facts and
// the aggregated constraints. The reply is expected to be JSON shaped like
// {"budget_min": n, "budget_max": n}, but is treated as untrusted text.
func budgetPrompt(facts domain.TripFacts, gc domain.GroupConstraints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimate a per-person USD budget for a %d-night group trip to %s, %s for %d travelers.\n",
		planner.Nights(facts.StartDate, facts.EndDate), facts.City, facts.Country, facts.Travelers)
	fmt.Fprintf(&b, "Nightly lodging budget: %.0f-%.0f USD.\n", gc.NightlyBudgetMin, gc.NightlyBudgetMax)
	if len(gc.Interests) > 0 {
		fmt.Fprintf(&b, "Group interests: %s.\n", strings.Join(gc.Interests, ", "))
	}
	if len(gc.BudgetSensitivities) > 0 {
		fmt.Fprintf(&b, "Budget sensitivity across members: %s.\n", strings.Join(gc.BudgetSensitivities, ", "))
	}
	b.WriteString(`Reply with JSON only: {"budget_min": <number>, "budget_max": <number>}`)
	return b.String()
}
