package planner_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/planner"
)

func dates(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start, _ := time.Parse("2006-01-02", "2026-09-10")
	end, _ := time.Parse("2006-01-02", "2026-09-14")
	return start, end
}

func TestGenerateFlights_Deterministic(t *testing.T) {
	start, end := dates(t)
	a := planner.GenerateFlights("SFO", "CDG", start, end)
	b := planner.GenerateFlights("SFO", "CDG", start, end)

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if !bytes.Equal(ja, jb) {
		t.Fatalf("two identical calls produced different output")
	}
}

func TestGenerateFlights_RouteChangesOutput(t *testing.T) {
	start, end := dates(t)
	a := planner.GenerateFlights("SFO", "CDG", start, end)
	b := planner.GenerateFlights("JFK", "NRT", start, end)
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if bytes.Equal(ja, jb) {
		t.Fatalf("different routes should not produce identical candidates")
	}
}

func TestGenerateFlights_FieldRanges(t *testing.T) {
	start, end := dates(t)
	out := planner.GenerateFlights("SFO", "CDG", start, end)

	if n := len(out); n < 10 || n > 12 {
		t.Fatalf("candidate count %d outside 10..12", n)
	}
	for _, c := range out {
		if c.Category != domain.CategoryFlight || c.Flight == nil {
			t.Fatalf("non-flight candidate: %+v", c)
		}
		// base 300..600 perturbed by 0.85..1.15
		if c.Price < 300*0.85 || c.Price > 600*1.15 {
			t.Fatalf("price %v out of range", c.Price)
		}
		if c.Flight.DurationMin < 180 || c.Flight.DurationMin > 480 {
			t.Fatalf("duration %d out of range", c.Flight.DurationMin)
		}
		if n := len(c.Flight.Layovers); n > 2 {
			t.Fatalf("too many layovers: %d", n)
		}
		for _, dep := range []string{c.Flight.Departure, c.Flight.ReturnDeparture} {
			tm, err := time.Parse("15:04", dep)
			if err != nil {
				t.Fatalf("bad departure %q: %v", dep, err)
			}
			mins := tm.Hour()*60 + tm.Minute()
			if mins < 6*60 || mins > 20*60 {
				t.Fatalf("departure %q outside 06:00..20:00", dep)
			}
			if mins%15 != 0 {
				t.Fatalf("departure %q not on a 15-minute increment", dep)
			}
		}
	}
}

func TestRouteSeed_Stable(t *testing.T) {
	// Pin the documented polynomial hash so regenerated fixtures stay
	// stable across refactors.
	if s := planner.RouteSeed("", ""); s != 0 {
		t.Fatalf("empty route seed = %d, want 0", s)
	}
	if a, b := planner.RouteSeed("SFO", "CDG"), planner.RouteSeed("SFO", "CDG"); a != b {
		t.Fatalf("seed not stable: %d vs %d", a, b)
	}
	if planner.RouteSeed("AB", "") != 31*int('A')+int('B') {
		t.Fatalf("hash does not match 31*h+c definition")
	}
}
