package analytics

import (
	"math"
	"time"
)

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(DayOf(b).Sub(DayOf(a)).Hours() / 24))
}

// SpanDays returns the inclusive day count of [start, end]. Malformed
// ranges yield zero or negative values; callers let those degrade to
// empty contributions rather than erroring.
func SpanDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}
