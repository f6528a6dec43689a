// Package planner holds the group-consensus recommendation core: pure
// functions over explicit inputs, no storage or network access.
package planner

import "github.com/stupnd/trippy-sub001/internal/domain"

// Fallback nightly budget when no member supplied both bounds.
const (
	DefaultNightlyMin = 50
	DefaultNightlyMax = 300
)

// Aggregate merges per-member preferences into one group constraint set.
// The nightly budget is the intersection of all complete member ranges;
// when the ranges do not overlap it widens to the union so the group always
// gets a usable range. Safe to call with zero members.
func Aggregate(prefs []domain.MemberPreference) domain.GroupConstraints {
	gc := domain.GroupConstraints{
		NightlyBudgetMin: DefaultNightlyMin,
		NightlyBudgetMax: DefaultNightlyMax,
	}

	var (
		haveBudget bool
		loHi, hiLo float64 // intersection bounds: max(mins), min(maxs)
		loLo, hiHi float64 // union bounds: min(mins), max(maxs)
	)
	seen := map[string]bool{}

	for _, p := range prefs {
		if p.NightlyBudgetMin != nil && p.NightlyBudgetMax != nil {
			mn, mx := *p.NightlyBudgetMin, *p.NightlyBudgetMax
			if !haveBudget {
				loHi, hiLo = mn, mx
				loLo, hiHi = mn, mx
				haveBudget = true
			} else {
				if mn > loHi {
					loHi = mn
				}
				if mx < hiLo {
					hiLo = mx
				}
				if mn < loLo {
					loLo = mn
				}
				if mx > hiHi {
					hiHi = mx
				}
			}
		}

		for _, tag := range p.Interests {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			gc.Interests = append(gc.Interests, tag)
		}

		if p.FlightFlexibility != "" {
			gc.FlightFlexibilities = append(gc.FlightFlexibilities, p.FlightFlexibility)
		}
		if p.BudgetSensitivity != "" {
			gc.BudgetSensitivities = append(gc.BudgetSensitivities, p.BudgetSensitivity)
		}
	}

	if haveBudget {
		if loHi > hiLo {
			// No overlap: fall back to the union.
			gc.NightlyBudgetMin, gc.NightlyBudgetMax = loLo, hiHi
			gc.BudgetWidened = true
		} else {
			gc.NightlyBudgetMin, gc.NightlyBudgetMax = loHi, hiLo
		}
	}
	return gc
}
