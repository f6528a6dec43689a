package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog/log"

	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/planner"
)

// RecommendationService turns a trip's preference set into ranked flight
// and lodging candidates. Supplier calls fan out per date candidate; the
// scorer only ever sees the fully resolved result.
type RecommendationService struct {
	repo     domain.TripRepository
	flights  domain.FlightSupplier
	lodging  domain.LodgingSupplier
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewRecommendationService(r domain.TripRepository, f domain.FlightSupplier, l domain.LodgingSupplier, c domain.Cache, ttl time.Duration) *RecommendationService {
	return &RecommendationService{repo: r, flights: f, lodging: l, cache: c, cacheTTL: ttl}
}

// Constraints recomputes the group constraint set from current preferences.
// Never persisted; always derived.
func (s *RecommendationService) Constraints(ctx context.Context, tripID string) (domain.GroupConstraints, error) {
	if tripID == "" {
		return domain.GroupConstraints{}, domain.Invalid("trip id", "required")
	}
	prefs, err := s.repo.ListPreferences(ctx, tripID)
	if err != nil {
		return domain.GroupConstraints{}, err
	}
	return planner.Aggregate(prefs), nil
}

// PutPreference stores one member's preference record and evicts every
// derived cache entry for the trip.
func (s *RecommendationService) PutPreference(ctx context.Context, p domain.MemberPreference) error {
	if p.TripID == "" {
		return domain.Invalid("trip id", "required")
	}
	if p.MemberID == "" {
		return domain.Invalid("member id", "required")
	}
	if p.NightlyBudgetMin != nil && p.NightlyBudgetMax != nil && *p.NightlyBudgetMin > *p.NightlyBudgetMax {
		return domain.Invalid("nightly budget", "min exceeds max")
	}
	if err := s.repo.UpsertPreference(ctx, p); err != nil {
		return err
	}
	s.invalidateTrip(ctx, p.TripID)
	return nil
}

// FlightRecommendations returns scored flight candidates for the trip. The
// supplier is queried in parallel for each date candidate; when every
// branch fails the deterministic generator substitutes a synthetic list so
// the group still has something to vote on.
func (s *RecommendationService) FlightRecommendations(ctx context.Context, tripID string) ([]domain.ScoredOption, error) {
	key := fmt.Sprintf("recs:%s:flights", tripID)
	var cached []domain.ScoredOption
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	facts, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.repo.ListPreferences(ctx, tripID)
	if err != nil {
		return nil, err
	}
	gc := planner.Aggregate(prefs)
	origin := groupOrigin(prefs)

	candidates := s.searchFlights(ctx, origin, facts, dateCandidates(facts, gc))
	if len(candidates) == 0 {
		log.Warn().Str("trip", tripID).Msg("flight supplier unavailable, using deterministic candidates")
		candidates = planner.GenerateFlights(origin, facts.City, facts.StartDate, facts.EndDate)
	}

	scored := planner.ScoreFlights(candidates)
	_ = s.cache.Set(ctx, key, scored, int(s.cacheTTL.Seconds()))
	return scored, nil
}

// LodgingRecommendations returns lodging candidates scored against the
// aggregated nightly budget, best first.
func (s *RecommendationService) LodgingRecommendations(ctx context.Context, tripID string) ([]domain.ScoredOption, error) {
	key := fmt.Sprintf("recs:%s:lodging", tripID)
	var cached []domain.ScoredOption
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	facts, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.repo.ListPreferences(ctx, tripID)
	if err != nil {
		return nil, err
	}
	gc := planner.Aggregate(prefs)

	var candidates []domain.CandidateOption
	if s.lodging != nil {
		candidates, err = s.lodging.SearchLodging(ctx, facts.City, facts.Country, facts.StartDate, facts.EndDate)
		if err != nil {
			return nil, err
		}
	}

	scored := planner.ScoreLodging(candidates, gc)
	_ = s.cache.Set(ctx, key, scored, int(s.cacheTTL.Seconds()))
	return scored, nil
}

// searchFlights fans out one supplier call per date window and merges
// whatever resolved. Individual failures only drop that window.
func (s *RecommendationService) searchFlights(ctx context.Context, origin string, facts domain.TripFacts, windows []dateWindow) []domain.CandidateOption {
	if s.flights == nil {
		return nil
	}
	results := make([][]domain.CandidateOption, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		i, w := i, w
		g.Go(func() error {
			opts, err := s.flights.SearchFlights(gctx, origin, facts.City, w.start, w.end)
			if err != nil {
				log.Warn().Err(err).Str("origin", origin).Time("start", w.start).Msg("flight search window failed")
				return nil
			}
			results[i] = opts
			return nil
		})
	}
	_ = g.Wait() // branch errors are swallowed above

	var merged []domain.CandidateOption
	seen := map[string]bool{}
	for _, rs := range results {
		for _, c := range rs {
			if c.ID != "" && seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			merged = append(merged, c)
		}
	}
	return merged
}

type dateWindow struct{ start, end time.Time }

// dateCandidates widens the search by one day in each direction when any
// member reported medium or high flight flexibility.
func dateCandidates(facts domain.TripFacts, gc domain.GroupConstraints) []dateWindow {
	windows := []dateWindow{{facts.StartDate, facts.EndDate}}
	for _, f := range gc.FlightFlexibilities {
		if f == "medium" || f == "high" {
			day := 24 * time.Hour
			windows = append(windows,
				dateWindow{facts.StartDate.Add(-day), facts.EndDate.Add(-day)},
				dateWindow{facts.StartDate.Add(day), facts.EndDate.Add(day)},
			)
			break
		}
	}
	return windows
}

// groupOrigin picks the most common preferred origin, first seen winning
// ties. Falls back to JFK when nobody stated one.
func groupOrigin(prefs []domain.MemberPreference) string {
	counts := map[string]int{}
	var order []string
	for _, p := range prefs {
		if p.Origin == nil || *p.Origin == "" {
			continue
		}
		if counts[*p.Origin] == 0 {
			order = append(order, *p.Origin)
		}
		counts[*p.Origin]++
	}
	best := ""
	for _, o := range order {
		if best == "" || counts[o] > counts[best] {
			best = o
		}
	}
	if best == "" {
		return "JFK"
	}
	return best
}

func (s *RecommendationService) invalidateTrip(ctx context.Context, tripID string) {
	for _, key := range []string{
		fmt.Sprintf("recs:%s:flights", tripID),
		fmt.Sprintf("recs:%s:lodging", tripID),
	} {
		_ = s.cache.Del(ctx, key)
	}
}
