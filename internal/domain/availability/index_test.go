package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func mustInterval(t *testing.T, start, end time.Time, status Status) ReservationInterval {
	t.Helper()
	iv, err := NewInterval(start, end, status)
	require.NoError(t, err)
	return iv
}

func TestIsBlockedAllStatusesOccupy(t *testing.T) {
	for _, status := range []Status{StatusConfirmed, StatusPending, StatusBlocked} {
		t.Run(string(status), func(t *testing.T) {
			intervals := []ReservationInterval{mustInterval(t, day(10), day(12), status)}
			assert.True(t, IsBlocked(day(10), intervals))
			assert.True(t, IsBlocked(day(11), intervals))
			assert.True(t, IsBlocked(day(12), intervals), "end day is inclusive")
			assert.False(t, IsBlocked(day(9), intervals))
			assert.False(t, IsBlocked(day(13), intervals))
		})
	}
}

func TestIsPendingOnlyFlagsPending(t *testing.T) {
	intervals := []ReservationInterval{
		mustInterval(t, day(10), day(12), StatusConfirmed),
		mustInterval(t, day(20), day(22), StatusPending),
	}
	assert.False(t, IsPending(day(11), intervals))
	assert.True(t, IsPending(day(21), intervals))
	assert.True(t, IsBlocked(day(21), intervals), "pending still blocks")
}

func TestIsRangeFree(t *testing.T) {
	intervals := []ReservationInterval{mustInterval(t, day(2), day(2), StatusConfirmed)}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"blocked day inside range", day(1), day(5), false},
		{"range before block", day(3), day(5), true},
		{"checkout on blocked day is fine", day(1), day(2), true},
		{"zero checkout is trivially free", day(1), time.Time{}, true},
		{"inverted range is trivially free", day(5), day(1), true},
		{"equal bounds are trivially free", day(1), day(1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRangeFree(tc.checkIn, tc.checkOut, intervals))
		})
	}
}

func TestIsRangeFreeEmptyIndex(t *testing.T) {
	assert.True(t, IsRangeFree(day(1), day(30), nil))
}

func TestIsBlockedMonotonic(t *testing.T) {
	// Adding an interval can only occupy more dates, never free one.
	base := []ReservationInterval{mustInterval(t, day(5), day(7), StatusConfirmed)}
	additions := []ReservationInterval{
		mustInterval(t, day(6), day(8), StatusPending),
		mustInterval(t, day(12), day(14), StatusBlocked),
		mustInterval(t, day(1), day(30), StatusConfirmed),
	}
	for _, extra := range additions {
		grown := append(append([]ReservationInterval(nil), base...), extra)
		for d := 1; d <= 30; d++ {
			if IsBlocked(day(d), base) {
				assert.True(t, IsBlocked(day(d), grown), "day %d freed by a new interval", d)
			}
		}
	}
}

func TestIsRangeFreeRepeatable(t *testing.T) {
	intervals := []ReservationInterval{mustInterval(t, day(5), day(7), StatusPending)}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"free range", day(1), day(4)},
		{"occupied range", day(4), day(8)},
		{"zero checkout", day(8), time.Time{}},
		{"inverted range", day(9), day(2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first := IsRangeFree(tc.checkIn, tc.checkOut, intervals)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, IsRangeFree(tc.checkIn, tc.checkOut, intervals))
			}
		})
	}
}
