package utilization

import (
	"testing"
	"time"

	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

func jan(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestStatusFilterIncludes(t *testing.T) {
	tests := []struct {
		filter StatusFilter
		status string
		want   bool
	}{
		{Official, models.StatusStarted, true},
		{Official, models.StatusDiscussions, false},
		{Official, models.StatusSold, false},
		{Official, models.StatusCompleted, false},
		{Expected, models.StatusStarted, true},
		{Expected, models.StatusDiscussions, true},
		{Expected, models.StatusSold, true},
		{Expected, models.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter)+"/"+tt.status, func(t *testing.T) {
			if got := tt.filter.Includes(tt.status); got != tt.want {
				t.Errorf("Includes(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestCompute_FullMonthFullAllocation(t *testing.T) {
	// A 100% assignment spanning exactly January must report 100 for the
	// January bucket (31-day month, full coverage).
	entries := []Entry{{
		ProjectStatus: models.StatusStarted,
		StartDate:     "2025-01-01",
		EndDate:       "2025-01-31",
		Percentage:    100,
	}}
	buckets := []Bucket{{Label: "2025-01", Start: jan(1), End: jan(31)}}

	points := Compute(entries, buckets, Official)
	if points[0].Value != 100 {
		t.Errorf("January utilization = %d, want 100", points[0].Value)
	}
}

func TestCompute_PartialCoverage(t *testing.T) {
	// 50% over the first 15 days of a 30-day window: 15 * 0.5 / 30 * 100 = 25.
	entries := []Entry{{
		ProjectStatus: models.StatusStarted,
		StartDate:     "2025-04-01",
		EndDate:       "2025-04-15",
		Percentage:    50,
	}}
	buckets := []Bucket{{
		Label: "2025-04",
		Start: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
	}}

	points := Compute(entries, buckets, Official)
	if points[0].Value != 25 {
		t.Errorf("utilization = %d, want 25", points[0].Value)
	}
}

func TestCompute_OverCommitmentVisible(t *testing.T) {
	// Two full-percentage assignments covering the same bucket report 200.
	entries := []Entry{
		{ProjectStatus: models.StatusStarted, StartDate: "2025-01-01", EndDate: "2025-01-31", Percentage: 100},
		{ProjectStatus: models.StatusStarted, StartDate: "2025-01-01", EndDate: "2025-01-31", Percentage: 100},
	}
	buckets := []Bucket{{Label: "2025-01", Start: jan(1), End: jan(31)}}

	points := Compute(entries, buckets, Official)
	if points[0].Value != 200 {
		t.Errorf("utilization = %d, want 200 (not clamped)", points[0].Value)
	}
}

func TestCompute_NoEntriesYieldsZero(t *testing.T) {
	buckets := MonthlyBuckets(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), 6, 5)
	points := Compute(nil, buckets, Official)
	if len(points) != 12 {
		t.Fatalf("got %d points, want 12", len(points))
	}
	for _, p := range points {
		if p.Value != 0 {
			t.Errorf("bucket %s = %d, want 0", p.Label, p.Value)
		}
	}
}

func TestCompute_StatusFiltering(t *testing.T) {
	entries := []Entry{
		{ProjectStatus: models.StatusStarted, StartDate: "2025-01-01", EndDate: "2025-01-31", Percentage: 50},
		{ProjectStatus: models.StatusSold, StartDate: "2025-01-01", EndDate: "2025-01-31", Percentage: 30},
		{ProjectStatus: models.StatusDiscussions, StartDate: "2025-01-01", EndDate: "2025-01-31", Percentage: 10},
		{ProjectStatus: models.StatusCompleted, StartDate: "2025-01-01", EndDate: "2025-01-31", Percentage: 100},
	}
	buckets := []Bucket{{Label: "2025-01", Start: jan(1), End: jan(31)}}

	official := Compute(entries, buckets, Official)
	if official[0].Value != 50 {
		t.Errorf("official utilization = %d, want 50", official[0].Value)
	}

	expected := Compute(entries, buckets, Expected)
	if expected[0].Value != 90 {
		t.Errorf("expected utilization = %d, want 90", expected[0].Value)
	}
}

func TestCompute_UnparsableDatesContributeNothing(t *testing.T) {
	entries := []Entry{
		{ProjectStatus: models.StatusStarted, StartDate: "not-a-date", EndDate: "2025-01-31", Percentage: 100},
		{ProjectStatus: models.StatusStarted, StartDate: "2025-01-01", EndDate: "", Percentage: 100},
	}
	buckets := []Bucket{{Label: "2025-01", Start: jan(1), End: jan(31)}}

	points := Compute(entries, buckets, Official)
	if points[0].Value != 0 {
		t.Errorf("utilization = %d, want 0", points[0].Value)
	}
}

func TestCompute_EdgeOutsideBucket(t *testing.T) {
	entries := []Entry{{
		ProjectStatus: models.StatusStarted,
		StartDate:     "2025-03-01",
		EndDate:       "2025-03-31",
		Percentage:    100,
	}}
	buckets := []Bucket{{Label: "2025-01", Start: jan(1), End: jan(31)}}

	points := Compute(entries, buckets, Official)
	if points[0].Value != 0 {
		t.Errorf("utilization = %d, want 0", points[0].Value)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	entries := []Entry{
		{ProjectStatus: models.StatusStarted, StartDate: "2025-01-10", EndDate: "2025-02-20", Percentage: 80},
		{ProjectStatus: models.StatusSold, StartDate: "2025-02-01", EndDate: "2025-04-30", Percentage: 40},
	}
	buckets := MonthlyBuckets(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), 2, 3)

	first := Compute(entries, buckets, Expected)
	for i := 0; i < 10; i++ {
		again := Compute(entries, buckets, Expected)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: point %d = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestMonthlyBuckets(t *testing.T) {
	ref := time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)
	buckets := MonthlyBuckets(ref, 6, 5)

	if len(buckets) != 12 {
		t.Fatalf("got %d buckets, want 12", len(buckets))
	}
	if buckets[0].Label != "2024-12" {
		t.Errorf("first bucket = %s, want 2024-12", buckets[0].Label)
	}
	if buckets[11].Label != "2025-11" {
		t.Errorf("last bucket = %s, want 2025-11", buckets[11].Label)
	}

	// Each bucket must use the true day count of its month.
	wantDays := map[string]int{
		"2024-12": 31,
		"2025-01": 31,
		"2025-02": 28,
		"2025-04": 30,
	}
	for _, b := range buckets {
		if want, ok := wantDays[b.Label]; ok && b.Days() != want {
			t.Errorf("bucket %s has %d days, want %d", b.Label, b.Days(), want)
		}
	}
}

func TestMonthlyBuckets_LeapFebruary(t *testing.T) {
	buckets := MonthlyBuckets(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 0, 0)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].Days() != 29 {
		t.Errorf("February 2024 has %d days, want 29", buckets[0].Days())
	}
}

func TestForwardWindow(t *testing.T) {
	buckets := ForwardWindow(time.Date(2025, time.March, 1, 18, 0, 0, 0, time.UTC), 30)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	b := buckets[0]
	if b.Days() != 30 {
		t.Errorf("window spans %d days, want 30", b.Days())
	}
	if !b.Start.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window start = %v", b.Start)
	}
	if !b.End.Equal(time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window end = %v", b.End)
	}
}

func TestTrailingYear(t *testing.T) {
	buckets := TrailingYear(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	b := buckets[0]
	if !b.Start.Equal(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 2024-06-16", b.Start)
	}
	if !b.End.Equal(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want 2025-06-15", b.End)
	}
}

func TestMean(t *testing.T) {
	a := []Point{{Label: "2025-01", Value: 100}, {Label: "2025-02", Value: 0}}
	b := []Point{{Label: "2025-01", Value: 50}, {Label: "2025-02", Value: 50}}

	got := Mean(a, b)
	if got[0].Value != 75 {
		t.Errorf("mean[0] = %d, want 75", got[0].Value)
	}
	if got[1].Value != 25 {
		t.Errorf("mean[1] = %d, want 25", got[1].Value)
	}

	if Mean() != nil {
		t.Error("Mean() with no series should be nil")
	}
}
