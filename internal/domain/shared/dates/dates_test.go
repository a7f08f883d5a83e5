package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartAndEndOfDay(t *testing.T) {
	at := time.Date(2024, time.June, 2, 15, 42, 11, 123, time.UTC)
	assert.Equal(t, day(2024, time.June, 2), StartOfDay(at))

	end := EndOfDay(at)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.True(t, end.After(StartOfDay(at)))
	assert.True(t, SameDay(at, end))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(day(2024, time.June, 2), time.Date(2024, time.June, 2, 23, 0, 0, 0, time.UTC)))
	assert.False(t, SameDay(day(2024, time.June, 2), day(2024, time.June, 3)))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{
			name:   "disjoint",
			aStart: day(2024, time.June, 1), aEnd: day(2024, time.June, 3),
			bStart: day(2024, time.June, 10), bEnd: day(2024, time.June, 12),
			want: false,
		},
		{
			name:   "contained",
			aStart: day(2024, time.June, 1), aEnd: day(2024, time.June, 30),
			bStart: day(2024, time.June, 10), bEnd: day(2024, time.June, 12),
			want: true,
		},
		{
			name:   "partial",
			aStart: day(2024, time.June, 1), aEnd: day(2024, time.June, 11),
			bStart: day(2024, time.June, 10), bEnd: day(2024, time.June, 20),
			want: true,
		},
		{
			// Touching endpoints occupy each other: no same-day turnover.
			name:   "touching endpoint",
			aStart: day(2024, time.June, 1), aEnd: day(2024, time.June, 10),
			bStart: day(2024, time.June, 10), bEnd: day(2024, time.June, 20),
			want: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Symmetric by definition.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same instant", day(2024, time.June, 1), day(2024, time.June, 1), 0},
		{"three days", day(2024, time.June, 1), day(2024, time.June, 4), 3},
		{"reversed order is absolute", day(2024, time.June, 4), day(2024, time.June, 1), 3},
		{"partial day rounds up", day(2024, time.June, 1), time.Date(2024, time.June, 2, 6, 0, 0, 0, time.UTC), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysBetween(tc.a, tc.b))
		})
	}
}

func TestWholeMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", day(2024, time.March, 15), day(2024, time.March, 15), 0},
		{"one month exact", day(2024, time.March, 15), day(2024, time.April, 15), 1},
		{"one day short of a month", day(2024, time.March, 15), day(2024, time.April, 14), 0},
		{"three months and change", day(2024, time.January, 10), day(2024, time.April, 20), 3},
		{"jan 31 to feb 29 is zero", day(2024, time.January, 31), day(2024, time.February, 29), 0},
		{"order insensitive", day(2024, time.June, 15), day(2024, time.March, 15), 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WholeMonthsBetween(tc.a, tc.b))
		})
	}
}

func TestIsPast(t *testing.T) {
	now := time.Date(2024, time.June, 2, 12, 0, 0, 0, time.UTC)
	assert.True(t, IsPast(day(2024, time.June, 1), now))
	assert.False(t, IsPast(day(2024, time.June, 2), now), "today is not past")
	assert.False(t, IsPast(day(2024, time.June, 3), now))
}
