package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
)

func mustRange(t *testing.T, checkIn, checkOut time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(checkIn, checkOut)
	require.NoError(t, err)
	return dr
}

func TestCalendarReserveAndConflict(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	cal := NewCalendar("prop-1")

	require.NoError(t, cal.Reserve(mustRange(t, day(10), day(13)), StatusPending, "booking-1", now))
	assert.Len(t, cal.Entries, 1)

	// A second guest racing for an overlapping range loses here.
	err := cal.Reserve(mustRange(t, day(12), day(15)), StatusPending, "booking-2", now)
	assert.ErrorIs(t, err, ErrOverlappingRange)
	assert.Len(t, cal.Entries, 1)

	events := cal.PendingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "calendar.range_reserved", events[0].EventName())
	assert.Equal(t, "calendar.double_booking_prevented", events[1].EventName())
}

func TestCalendarReserveRejectsBlockedStatus(t *testing.T) {
	cal := NewCalendar("prop-1")
	err := cal.Reserve(mustRange(t, day(10), day(13)), StatusBlocked, "booking-1", time.Now())
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestCalendarBackToBackRangesDoNotCollide(t *testing.T) {
	now := time.Now()
	cal := NewCalendar("prop-1")
	require.NoError(t, cal.Reserve(mustRange(t, day(10), day(13)), StatusConfirmed, "booking-1", now))
	require.NoError(t, cal.Reserve(mustRange(t, day(13), day(16)), StatusConfirmed, "booking-2", now))
	assert.Len(t, cal.Entries, 2)
}

func TestCalendarBlockAndRelease(t *testing.T) {
	now := time.Now()
	cal := NewCalendar("prop-1")
	require.NoError(t, cal.Block(mustRange(t, day(20), day(25)), "maintenance", now))
	assert.Equal(t, StatusBlocked, cal.Entries[0].Status)

	err := cal.Reserve(mustRange(t, day(21), day(22)), StatusPending, "booking-1", now)
	assert.ErrorIs(t, err, ErrOverlappingRange)

	require.NoError(t, cal.Release("maintenance", now))
	assert.Empty(t, cal.Entries)
	require.NoError(t, cal.Reserve(mustRange(t, day(21), day(22)), StatusPending, "booking-1", now))

	assert.ErrorIs(t, cal.Release("unknown", now), ErrRangeNotFound)
}

func TestCalendarConfirmEntry(t *testing.T) {
	now := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)
	cal := NewCalendar("prop-1")
	require.NoError(t, cal.Reserve(mustRange(t, day(10), day(13)), StatusPending, "booking-1", now))
	cal.ClearEvents()

	confirmedAt := now.Add(48 * time.Hour)
	require.NoError(t, cal.ConfirmEntry("booking-1", confirmedAt))
	assert.Equal(t, StatusConfirmed, cal.Entries[0].Status)

	events := cal.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "calendar.entry_confirmed", events[0].EventName())
	assert.Equal(t, confirmedAt, events[0].OccurredAt())

	assert.ErrorIs(t, cal.ConfirmEntry("booking-9", confirmedAt), ErrRangeNotFound)
	assert.Len(t, cal.PendingEvents(), 1, "a failed confirmation records nothing")
}

func TestCalendarIntervalsProjection(t *testing.T) {
	now := time.Now()
	cal := NewCalendar("prop-1")
	require.NoError(t, cal.Reserve(mustRange(t, day(10), day(13)), StatusConfirmed, "booking-1", now))

	intervals := cal.Intervals()
	require.Len(t, intervals, 1)
	// The half-open [10, 13) stay projects to the inclusive days 10..12.
	assert.True(t, intervals[0].Covers(day(10)))
	assert.True(t, intervals[0].Covers(day(12)))
	assert.False(t, intervals[0].Covers(day(13)), "check-out day stays free")
}
