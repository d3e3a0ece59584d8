package report

import (
	"testing"
	"time"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func labels(buckets []TimelineBucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildTimelineEmpty(t *testing.T) {
	now := at("2026-10-17")
	tests := []struct {
		period Period
		want   []string
	}{
		{Monthly, []string{"May 2026", "Jun 2026", "Jul 2026", "Aug 2026", "Sep 2026", "Oct 2026"}},
		{Quarterly, []string{"Q1 2026", "Q2 2026", "Q3 2026", "Q4 2026"}},
		{Yearly, []string{"2024", "2025", "2026"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			buckets := BuildTimeline(nil, tt.period, now)
			if got := labels(buckets); !equal(got, tt.want) {
				t.Errorf("labels = %v, want %v", got, tt.want)
			}
			for _, b := range buckets {
				if b.Count != 0 || b.AverageScore != 0 {
					t.Errorf("bucket %s = %+v, want empty", b.Label, b)
				}
			}
			for i := 1; i < len(buckets); i++ {
				if !buckets[i].Start.After(buckets[i-1].Start) {
					t.Errorf("buckets not ascending at %d", i)
				}
			}
		})
	}
}

func TestBuildTimelineMonthEndAnchor(t *testing.T) {
	// anchoring on the 31st must not skip or repeat months
	buckets := BuildTimeline(nil, Monthly, at("2026-03-31"))
	want := []string{"Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026", "Feb 2026", "Mar 2026"}
	if got := labels(buckets); !equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestBuildTimelineQuarterCrossesYear(t *testing.T) {
	buckets := BuildTimeline(nil, Quarterly, at("2026-02-10"))
	want := []string{"Q2 2025", "Q3 2025", "Q4 2025", "Q1 2026"}
	if got := labels(buckets); !equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestBuildTimelineGroupsScores(t *testing.T) {
	points := []TimelinePoint{
		{CreatedAt: at("2026-10-01"), Score: f(80)},
		{CreatedAt: at("2026-10-15"), Score: f(61)},
		{CreatedAt: at("2026-08-31"), Score: f(50)},
		{CreatedAt: at("2026-08-02"), Score: nil},
		{CreatedAt: at("2025-12-31"), Score: f(100)}, // outside the window
	}

	buckets := BuildTimeline(points, Monthly, at("2026-10-17"))
	byLabel := map[string]TimelineBucket{}
	for _, b := range buckets {
		byLabel[b.Label] = b
	}

	if b := byLabel["Oct 2026"]; b.Count != 2 || b.AverageScore != 70 {
		t.Errorf("Oct bucket = %+v, want count 2 avg 70", b) // 70.5 -> 70
	}
	if b := byLabel["Aug 2026"]; b.Count != 2 || b.AverageScore != 25 {
		t.Errorf("Aug bucket = %+v, want count 2 avg 25", b)
	}
	if b := byLabel["Sep 2026"]; b.Count != 0 {
		t.Errorf("Sep bucket = %+v, want empty", b)
	}
}

func TestQuarter(t *testing.T) {
	for m, want := range map[time.Month]int{time.January: 1, time.March: 1, time.April: 2, time.September: 3, time.December: 4} {
		if got := Quarter(m); got != want {
			t.Errorf("Quarter(%s) = %d, want %d", m, got, want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod("quarterly"); err != nil || p != Quarterly {
		t.Errorf("ParsePeriod(quarterly) = %v, %v", p, err)
	}
	if _, err := ParsePeriod("weekly"); err == nil {
		t.Error("expected error for weekly")
	}
}
