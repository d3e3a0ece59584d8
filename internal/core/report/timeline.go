package report

import (
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/calendar"
)

// Period selects the bucket width of a timeline.
type Period string

const (
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Monthly, Quarterly, Yearly:
		return Period(s), nil
	}
	return "", apperr.Invalid("invalid period %q (want monthly, quarterly or yearly)", s)
}

// BucketCount returns how many buckets a period's timeline holds.
func (p Period) BucketCount() int {
	switch p {
	case Monthly:
		return 6
	case Quarterly:
		return 4
	default:
		return 3
	}
}

// TimelinePoint is one scored history entry placed in time.
type TimelinePoint struct {
	CreatedAt time.Time
	Score     *float64
}

// TimelineBucket is one period of the timeline.
type TimelineBucket struct {
	Label        string
	Start        time.Time
	End          time.Time
	AverageScore int
	Count        int
}

// Quarter returns the 1-based quarter of a month.
func Quarter(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// bucketStart returns the start of the bucket offset periods before the one containing now.
func bucketStart(p Period, now time.Time, offset int) time.Time {
	y, m, _ := now.Date()
	switch p {
	case Monthly:
		return calendar.StartOfMonth(now).AddDate(0, -offset, 0)
	case Quarterly:
		firstMonth := time.Month((Quarter(m)-1)*3 + 1)
		return time.Date(y, firstMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -3*offset, 0)
	default:
		return time.Date(y-offset, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func bucketEnd(p Period, start time.Time) time.Time {
	switch p {
	case Monthly:
		return start.AddDate(0, 1, 0)
	case Quarterly:
		return start.AddDate(0, 3, 0)
	default:
		return start.AddDate(1, 0, 0)
	}
}

func bucketLabel(p Period, start time.Time) string {
	switch p {
	case Monthly:
		return start.Format("Jan 2006")
	case Quarterly:
		return fmt.Sprintf("Q%d %d", Quarter(start.Month()), start.Year())
	default:
		return fmt.Sprintf("%d", start.Year())
	}
}

// BuildTimeline groups points into the period's buckets ending at the one
// containing now, oldest first. Every bucket is present; empty buckets have
// average 0 and count 0. Points outside the window are ignored.
func BuildTimeline(points []TimelinePoint, p Period, now time.Time) []TimelineBucket {
	n := p.BucketCount()
	buckets := make([]TimelineBucket, n)
	scores := make([][]*float64, n)

	for i := 0; i < n; i++ {
		start := bucketStart(p, now, n-1-i)
		buckets[i] = TimelineBucket{
			Label: bucketLabel(p, start),
			Start: start,
			End:   bucketEnd(p, start),
		}
	}

	for _, pt := range points {
		at := calendar.Day(pt.CreatedAt)
		for i := range buckets {
			if !at.Before(buckets[i].Start) && at.Before(buckets[i].End) {
				scores[i] = append(scores[i], pt.Score)
				break
			}
		}
	}

	for i := range buckets {
		buckets[i].Count = len(scores[i])
		buckets[i].AverageScore = AverageScore(scores[i])
	}
	return buckets
}
