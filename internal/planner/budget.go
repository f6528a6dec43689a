package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/stupnd/trippy-sub001/internal/domain"
)

// Fixed per-person cost bands (USD) beyond lodging.
const (
	flightBandMin = 200
	flightBandMax = 900

	activityPerNightMin = 40
	activityPerNightMax = 120

	incidentalsMin = 100
	incidentalsMax = 300
)

// Clamp multipliers applied to the baseline when bounding an externally
// supplied estimate.
const (
	clampLowFactor  = 0.8
	clampHighFactor = 1.2
)

// ExternalEstimate is a numeric suggestion from the generative-text
// service. Untrusted until validated.
type ExternalEstimate struct {
	Min float64
	Max float64
}

// Nights counts whole nights in the range, rounding partial days up and
// never returning less than 1.
func Nights(start, end time.Time) int {
	n := int(math.Ceil(end.Sub(start).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}

// Baseline computes the rule-based per-person range: nightly lodging range
// scaled by nights, plus fixed flight, activity and incidental bands.
func Baseline(nights int, nightlyMin, nightlyMax float64) (float64, float64) {
	n := float64(nights)
	min := n*nightlyMin + flightBandMin + n*activityPerNightMin + incidentalsMin
	max := n*nightlyMax + flightBandMax + n*activityPerNightMax + incidentalsMax
	return min, max
}

// Estimate derives the per-person budget from trip facts and the aggregated
// lodging range. When an external suggestion is present, each of its bounds
// is clamped into [clampLowFactor*baselineMin, clampHighFactor*baselineMax];
// a suggestion with min>max or a non-finite bound fails as upstream
// malformed. Without a suggestion the baseline itself is the estimate.
func Estimate(facts domain.TripFacts, gc domain.GroupConstraints, external *ExternalEstimate) (domain.BudgetEstimate, error) {
	if !facts.EndDate.After(facts.StartDate) {
		return domain.BudgetEstimate{}, domain.Invalid("date range", "end date must be after start date")
	}

	nights := Nights(facts.StartDate, facts.EndDate)
	baseMin, baseMax := Baseline(nights, gc.NightlyBudgetMin, gc.NightlyBudgetMax)

	est := domain.BudgetEstimate{
		TripID:      facts.ID,
		Min:         baseMin,
		Max:         baseMax,
		BaselineMin: baseMin,
		BaselineMax: baseMax,
	}
	if external == nil {
		return est, nil
	}

	if !isFinite(external.Min) || !isFinite(external.Max) {
		return domain.BudgetEstimate{}, fmt.Errorf("%w: non-finite budget bound", domain.ErrUpstreamMalformed)
	}
	if external.Min > external.Max {
		return domain.BudgetEstimate{}, fmt.Errorf("%w: budget min %.2f exceeds max %.2f", domain.ErrUpstreamMalformed, external.Min, external.Max)
	}

	lo := clampLowFactor * baseMin
	hi := clampHighFactor * baseMax
	est.Min = clamp(external.Min, lo, hi)
	est.Max = clamp(external.Max, lo, hi)
	return est, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
