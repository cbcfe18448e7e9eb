// Package availability decides whether a candidate assignment conflicts
// with a consultant's existing commitments.
//
// The check is a pure predicate over date ranges: no I/O, no state. The
// assignment store resolves a consultant's current projects into
// Commitments and asks before writing anything.
//
// Two policies exist because reasonable deployments disagree on whether a
// part-time commitment should block other work:
//
//   - PolicyBlockOverlap: any date overlap blocks, regardless of
//     percentage. A consultant at 10% on one project still cannot take a
//     second project in the same window.
//   - PolicyCapacity: only blocks when the summed percentage of
//     commitments overlapping the candidate window, plus the candidate's
//     own percentage, would exceed 100.
//
// The policy is chosen by configuration (availability_policy), with
// PolicyBlockOverlap as the default.
package availability

import (
	"fmt"
	"time"
)

// Policy selects the conflict rule applied by Available.
type Policy string

const (
	// PolicyBlockOverlap rejects any time-overlapping second commitment.
	PolicyBlockOverlap Policy = "block_any_overlap"

	// PolicyCapacity rejects only when overlapping allocations would sum
	// past 100 percent.
	PolicyCapacity Policy = "capacity"
)

// ParsePolicy validates a configured policy string. An empty string
// selects the default.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyBlockOverlap, nil
	case PolicyBlockOverlap, PolicyCapacity:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown availability policy %q", s)
}

// Range is an inclusive calendar-date interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Commitment is one existing assignment, resolved to its project's dates.
type Commitment struct {
	Range      Range
	Percentage int
}

// Overlaps reports whether two inclusive date ranges intersect. A project
// ending on day D and another starting on day D do overlap: handoff days
// are shared days.
func Overlaps(a, b Range) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// Available reports whether a candidate assignment at the given
// percentage is permitted alongside the existing commitments.
func Available(existing []Commitment, candidate Range, percentage int, pol Policy) bool {
	switch pol {
	case PolicyCapacity:
		total := percentage
		for _, c := range existing {
			if Overlaps(c.Range, candidate) {
				total += c.Percentage
			}
		}
		return total <= 100
	default:
		for _, c := range existing {
			if Overlaps(c.Range, candidate) {
				return false
			}
		}
		return true
	}
}
