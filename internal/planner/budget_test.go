package planner_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/planner"
)

func tripFacts(startStr, endStr string) domain.TripFacts {
	start, _ := time.Parse("2006-01-02", startStr)
	end, _ := time.Parse("2006-01-02", endStr)
	return domain.TripFacts{
		ID:        "t1",
		City:      "Lisbon",
		Country:   "PT",
		StartDate: start,
		EndDate:   end,
		Travelers: 2,
		Currency:  "USD",
	}
}

func TestNights(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2026-09-10", "2026-09-13", 3},
		{"2026-09-10", "2026-09-11", 1},
		{"2026-09-10", "2026-09-10", 1}, // clamped
	}
	for _, c := range cases {
		start, _ := time.Parse("2006-01-02", c.start)
		end, _ := time.Parse("2006-01-02", c.end)
		if got := planner.Nights(start, end); got != c.want {
			t.Fatalf("Nights(%s,%s) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestEstimate_BaselineExample(t *testing.T) {
	// nights=3, lodging [80,150]: lodging [240,450] + flights [200,900] +
	// activities [120,360] + incidentals [100,300] = [660,2010].
	facts := tripFacts("2026-09-10", "2026-09-13")
	gc := domain.GroupConstraints{NightlyBudgetMin: 80, NightlyBudgetMax: 150}

	est, err := planner.Estimate(facts, gc, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if est.BaselineMin != 660 || est.BaselineMax != 2010 {
		t.Fatalf("baseline = [%v,%v], want [660,2010]", est.BaselineMin, est.BaselineMax)
	}
	if est.Min != 660 || est.Max != 2010 {
		t.Fatalf("no external suggestion: estimate should equal baseline, got [%v,%v]", est.Min, est.Max)
	}
}

func TestEstimate_ClampsExternal(t *testing.T) {
	facts := tripFacts("2026-09-10", "2026-09-13")
	gc := domain.GroupConstraints{NightlyBudgetMin: 80, NightlyBudgetMax: 150}

	// Clamp window is [660*0.8, 2010*1.2] = [528, 2412].
	est, err := planner.Estimate(facts, gc, &planner.ExternalEstimate{Min: 500, Max: 2500})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if est.Min != 528 || est.Max != 2412 {
		t.Fatalf("clamped = [%v,%v], want [528,2412]", est.Min, est.Max)
	}
}

func TestEstimate_ClampIdempotent(t *testing.T) {
	facts := tripFacts("2026-09-10", "2026-09-13")
	gc := domain.GroupConstraints{NightlyBudgetMin: 80, NightlyBudgetMax: 150}

	est, err := planner.Estimate(facts, gc, &planner.ExternalEstimate{Min: 700, Max: 1900})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if est.Min != 700 || est.Max != 1900 {
		t.Fatalf("in-window estimate must pass through unchanged, got [%v,%v]", est.Min, est.Max)
	}
}

func TestEstimate_RejectsMalformedExternal(t *testing.T) {
	facts := tripFacts("2026-09-10", "2026-09-13")
	gc := domain.GroupConstraints{NightlyBudgetMin: 80, NightlyBudgetMax: 150}

	for _, ext := range []*planner.ExternalEstimate{
		{Min: 2000, Max: 1000},
		{Min: math.NaN(), Max: 1000},
		{Min: 500, Max: math.Inf(1)},
	} {
		if _, err := planner.Estimate(facts, gc, ext); !errors.Is(err, domain.ErrUpstreamMalformed) {
			t.Fatalf("expected ErrUpstreamMalformed for %+v, got %v", ext, err)
		}
	}
}

func TestEstimate_RejectsBadDateRange(t *testing.T) {
	facts := tripFacts("2026-09-13", "2026-09-10")
	_, err := planner.Estimate(facts, domain.GroupConstraints{NightlyBudgetMin: 80, NightlyBudgetMax: 150}, nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
