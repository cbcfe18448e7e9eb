// Package utilization computes time-bucketed capacity consumption for
// consultants.
//
// The calculator is pure and stateless: callers resolve a consultant's
// assignments into Entries (project status, dates, allocation percentage)
// and supply the buckets they care about. Identical inputs always produce
// identical outputs; every report recomputes from current data.
//
// A Bucket is an arbitrary labeled, inclusive date range. The three window
// shapes the product uses (monthly series, fixed forward window, trailing
// twelve months) are just helpers that build bucket slices; anything else
// can be computed by passing custom buckets.
package utilization

import (
	"fmt"
	"math"
	"time"

	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// StatusFilter selects which project lifecycle states count toward
// utilization.
type StatusFilter string

const (
	// Official counts only confirmed, in-flight work.
	Official StatusFilter = "official"

	// Expected additionally counts pipeline work (Discussions, Sold).
	Expected StatusFilter = "expected"
)

// ParseStatusFilter validates a filter string. Empty selects Official.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "":
		return Official, nil
	case Official, Expected:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// Includes reports whether a project in the given status counts under
// this filter. Completed projects never count.
func (f StatusFilter) Includes(status string) bool {
	switch status {
	case models.StatusStarted:
		return true
	case models.StatusDiscussions, models.StatusSold:
		return f == Expected
	}
	return false
}

// Entry is one assignment resolved to its project's lifecycle data.
// StartDate and EndDate are calendar-date strings; entries with missing
// or unparsable dates contribute nothing.
type Entry struct {
	ProjectStatus string
	StartDate     string
	EndDate       string
	Percentage    int
}

// Bucket is an inclusive, labeled date range.
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day count of the bucket.
func (b Bucket) Days() int {
	return inclusiveDays(b.Start, b.End)
}

// Point is the utilization value for one bucket. Values above 100 are
// real: they mean the consultant is over-committed and must stay visible.
type Point struct {
	Label string `json:"bucket"`
	Value int    `json:"value"`
}

// Compute returns one Point per bucket for a single consultant's entries.
// A consultant with no qualifying entries in a bucket yields 0 for it.
func Compute(entries []Entry, buckets []Bucket, filter StatusFilter) []Point {
	points := make([]Point, len(buckets))
	for i, b := range buckets {
		points[i] = Point{Label: b.Label, Value: bucketValue(entries, b, filter)}
	}
	return points
}

func bucketValue(entries []Entry, b Bucket, filter StatusFilter) int {
	length := b.Days()
	if length <= 0 {
		return 0
	}

	var weighted float64
	for _, e := range entries {
		if !filter.Includes(e.ProjectStatus) {
			continue
		}
		start, err := time.Parse(models.DateLayout, e.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(models.DateLayout, e.EndDate)
		if err != nil {
			continue
		}
		overlap := overlapDays(start, end, b.Start, b.End)
		if overlap <= 0 {
			continue
		}
		weighted += float64(overlap) * float64(e.Percentage) / 100
	}

	return int(math.Round(weighted / float64(length) * 100))
}

// Mean averages several consultants' series point-wise. All series must
// come from the same bucket set; labels are taken from the first.
func Mean(series ...[]Point) []Point {
	if len(series) == 0 {
		return nil
	}
	out := make([]Point, len(series[0]))
	for i := range out {
		sum := 0
		for _, s := range series {
			sum += s[i].Value
		}
		out[i] = Point{
			Label: series[0][i].Label,
			Value: int(math.Round(float64(sum) / float64(len(series)))),
		}
	}
	return out
}

/* ------------------------------ windows ------------------------------- */

// MonthlyBuckets returns one bucket per calendar month, from `back`
// months before ref's month through `forward` months after it, inclusive
// of ref's own month. Each bucket spans the true length of its month.
// Labels are ISO year-month ("2025-01").
func MonthlyBuckets(ref time.Time, back, forward int) []Bucket {
	buckets := make([]Bucket, 0, back+forward+1)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -back, 0)
	for i := 0; i <= back+forward; i++ {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, -1)
		buckets = append(buckets, Bucket{
			Label: start.Format("2006-01"),
			Start: start,
			End:   end,
		})
	}
	return buckets
}

// ForwardWindow returns a single bucket covering `days` days starting at
// ref's calendar date.
func ForwardWindow(ref time.Time, days int) []Bucket {
	start := midnight(ref)
	return []Bucket{{
		Label: fmt.Sprintf("next-%dd", days),
		Start: start,
		End:   start.AddDate(0, 0, days-1),
	}}
}

// TrailingYear returns a single bucket covering the twelve months ending
// on ref's calendar date.
func TrailingYear(ref time.Time) []Bucket {
	end := midnight(ref)
	return []Bucket{{
		Label: "trailing-12m",
		Start: end.AddDate(-1, 0, 1),
		End:   end,
	}}
}

/* ------------------------------ helpers ------------------------------- */

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inclusiveDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// overlapDays returns the inclusive day count of the intersection of
// [s1,e1] and [s2,e2], or 0 when they are disjoint.
func overlapDays(s1, e1, s2, e2 time.Time) int {
	s := s1
	if s2.After(s) {
		s = s2
	}
	e := e1
	if e2.Before(e) {
		e = e2
	}
	if e.Before(s) {
		return 0
	}
	return inclusiveDays(s, e)
}
