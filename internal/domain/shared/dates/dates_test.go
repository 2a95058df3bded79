package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(d, hour int) time.Time {
	return time.Date(2026, time.May, d, hour, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(at(1, 0), at(4, 0)))
	assert.Equal(t, 0, DaysBetween(at(4, 0), at(4, 0)))
	assert.Equal(t, -2, DaysBetween(at(4, 0), at(2, 0)))
	// Time of day never changes the count.
	assert.Equal(t, 3, DaysBetween(at(1, 23), at(4, 1)))
}

func TestRangeValid(t *testing.T) {
	assert.True(t, Range{CheckIn: at(1, 0), CheckOut: at(2, 0)}.Valid())
	assert.False(t, Range{CheckIn: at(2, 0), CheckOut: at(2, 0)}.Valid())
	// Same calendar day with different times is still invalid.
	assert.False(t, Range{CheckIn: at(2, 1), CheckOut: at(2, 22)}.Valid())
}

func TestRangeOverlaps(t *testing.T) {
	a := Range{CheckIn: at(1, 0), CheckOut: at(3, 0)}
	assert.True(t, a.Overlaps(Range{CheckIn: at(2, 0), CheckOut: at(4, 0)}))
	assert.True(t, a.Overlaps(Range{CheckIn: at(1, 0), CheckOut: at(3, 0)}))
	// Adjacency is not overlap, in either direction.
	assert.False(t, a.Overlaps(Range{CheckIn: at(3, 0), CheckOut: at(5, 0)}))
	assert.False(t, Range{CheckIn: at(3, 0), CheckOut: at(5, 0)}.Overlaps(a))
}
