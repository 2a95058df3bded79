package dates

import (
	"math"
	"time"
)

// DateOnly truncates a timestamp to midnight UTC. Conflict and nights math is
// date-granular; check-in/out times are display-only.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b, ceiling
// partial days. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	diff := DateOnly(b).Sub(DateOnly(a))
	return int(math.Ceil(diff.Hours() / 24))
}

// Range is a half-open [CheckIn, CheckOut) stay interval.
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Valid reports whether check-in strictly precedes check-out, date-only.
func (r Range) Valid() bool {
	return DateOnly(r.CheckIn).Before(DateOnly(r.CheckOut))
}

// Overlaps reports a non-empty date intersection with other. Strict
// inequalities: a check-out equal to another check-in is same-day turnover,
// not an overlap.
func (r Range) Overlaps(other Range) bool {
	return DateOnly(r.CheckIn).Before(DateOnly(other.CheckOut)) &&
		DateOnly(r.CheckOut).After(DateOnly(other.CheckIn))
}
