package planner

import (
	"math"
	"sort"

	"github.com/stupnd/trippy-sub001/internal/domain"
)

// Fixed signal weights for flight scoring, in score points (sum 100).
// Integer-scaled so half-point sums stay exact before rounding.
const (
	weightPrice    = 45
	weightDuration = 35
	weightLayovers = 20
)

// ScoreFlights annotates candidates with a 0..100 desirability score from
// min-max normalized price, total duration (layover dwell included) and
// layover count, all lower-better. Input order is preserved; ties on the
// highlight flags go to the first candidate encountered.
func ScoreFlights(candidates []domain.CandidateOption) []domain.ScoredOption {
	if len(candidates) == 0 {
		return nil
	}

	prices := make([]float64, len(candidates))
	durations := make([]float64, len(candidates))
	layovers := make([]float64, len(candidates))
	for i, c := range candidates {
		prices[i] = c.Price
		if c.Flight != nil {
			durations[i] = float64(c.Flight.TotalDurationMin())
			layovers[i] = float64(len(c.Flight.Layovers))
		}
	}

	out := make([]domain.ScoredOption, len(candidates))
	var cheapest, fastest, best int
	for i, c := range candidates {
		score := weightPrice*normLower(prices[i], prices) +
			weightDuration*normLower(durations[i], durations) +
			weightLayovers*normLower(layovers[i], layovers)
		out[i] = domain.ScoredOption{
			CandidateOption: c,
			Score:           int(math.Round(score)),
		}
		if prices[i] < prices[cheapest] {
			cheapest = i
		}
		if durations[i] < durations[fastest] {
			fastest = i
		}
		if out[i].Score > out[best].Score {
			best = i
		}
	}
	out[cheapest].IsCheapest = true
	out[fastest].IsFastest = true
	out[best].IsBestValue = true
	return out
}

// ScoreLodging scores candidates 50/50 on closeness to the group budget
// midpoint and raw rating, then sorts descending by score.
func ScoreLodging(candidates []domain.CandidateOption, gc domain.GroupConstraints) []domain.ScoredOption {
	if len(candidates) == 0 {
		return nil
	}

	mid := (gc.NightlyBudgetMin + gc.NightlyBudgetMax) / 2
	dists := make([]float64, len(candidates))
	for i, c := range candidates {
		dists[i] = math.Abs(c.Price - mid)
	}

	out := make([]domain.ScoredOption, len(candidates))
	var cheapest, best int
	for i, c := range candidates {
		rating := 0.0
		if c.Lodging != nil {
			rating = c.Lodging.Rating / 5
		}
		score := 50*normLower(dists[i], dists) + 50*rating
		out[i] = domain.ScoredOption{
			CandidateOption: c,
			Score:           int(math.Round(score)),
		}
		if c.Price < out[cheapest].Price {
			cheapest = i
		}
		if out[i].Score > out[best].Score {
			best = i
		}
	}
	out[cheapest].IsCheapest = true
	out[best].IsBestValue = true

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// normLower min-max scales v into [0,1] with lower-is-better polarity.
// A degenerate range scores every candidate as already-optimal.
func normLower(v float64, all []float64) float64 {
	lo, hi := all[0], all[0]
	for _, x := range all[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	r := hi - lo
	if r == 0 {
		r = 1
	}
	return 1 - (v-lo)/r
}
