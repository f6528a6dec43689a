package planner

import (
	"math"
	"sort"

	"github.com/stupnd/trippy-sub001/internal/domain"
)

type SelectionStatus string

const (
	StatusSelected        SelectionStatus = "selected"         // chosen, no votes yet
	StatusPendingApproval SelectionStatus = "pending_approval" // some votes in
	StatusFinalized       SelectionStatus = "finalized"        // every member approved
)

// ActivityPassRatio is the "80% rule" threshold: for every member, at least
// this fraction of the selected activity set must be rated 3 or above.
const ActivityPassRatio = 0.80

// RecordVote sets or overwrites one member's vote and returns a new map;
// the input is never mutated. Concurrent votes must be serialized by the
// caller (read-modify-write against the store).
func RecordVote(approvals domain.ApprovalState, memberID string, approved bool, reason *string) domain.ApprovalState {
	out := make(domain.ApprovalState, len(approvals)+1)
	for k, v := range approvals {
		out[k] = v
	}
	out[memberID] = domain.Vote{Approved: approved, Reason: reason}
	return out
}

// Finalized is recomputed on every call: true iff every current member has
// voted and every vote approves. A member joining after finalization
// therefore un-finalizes the selection until they approve too.
func Finalized(approvals domain.ApprovalState, members []string) bool {
	if len(members) == 0 || len(approvals) != len(members) {
		return false
	}
	for _, m := range members {
		v, ok := approvals[m]
		if !ok || !v.Approved {
			return false
		}
	}
	return true
}

// Status derives the selection state from the approval map and member list.
func Status(approvals domain.ApprovalState, members []string) SelectionStatus {
	switch {
	case len(approvals) == 0:
		return StatusSelected
	case Finalized(approvals, members):
		return StatusFinalized
	default:
		return StatusPendingApproval
	}
}

// Dissenters lists members whose recorded vote rejects the selection, in
// member-list order. Rejection is per-member and non-terminal; a member may
// change their vote.
func Dissenters(approvals domain.ApprovalState, members []string) []string {
	var out []string
	for _, m := range members {
		if v, ok := approvals[m]; ok && !v.Approved {
			out = append(out, m)
		}
	}
	return out
}

// ValidateActivitySet applies the 80% rule to a set of selected activities:
// for every member, the fraction of the set they rated >=3 must be at least
// ActivityPassRatio (exactly 80.0% passes). An absent rating counts as 0,
// i.e. a failing rating; see the matching test for why that is deliberate.
// Returns validity plus the members below threshold.
func ValidateActivitySet(selected []domain.Activity, members []string) (bool, []string) {
	if len(selected) == 0 || len(members) == 0 {
		return true, nil
	}
	var failing []string
	for _, m := range members {
		ok := 0
		for _, a := range selected {
			if r, rated := a.Ratings[m]; rated && r >= 3 {
				ok++
			}
		}
		if float64(ok)/float64(len(selected)) < ActivityPassRatio {
			failing = append(failing, m)
		}
	}
	return len(failing) == 0, failing
}

// SummarizeActivity derives the average rating and the conflict list
// (members who rated below 3) from the current ratings.
func SummarizeActivity(a domain.Activity) domain.ActivitySummary {
	var sum domain.ActivitySummary
	if len(a.Ratings) == 0 {
		return sum
	}
	total := 0
	for m, r := range a.Ratings {
		total += r
		if r < 3 {
			sum.Conflicts = append(sum.Conflicts, m)
		}
	}
	sort.Strings(sum.Conflicts)
	avg := float64(total) / float64(len(a.Ratings))
	sum.AverageRating = math.Round(avg*10) / 10
	return sum
}
