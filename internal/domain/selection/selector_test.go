package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
}

func interval(t *testing.T, start, end int, status availability.Status) availability.ReservationInterval {
	t.Helper()
	iv, err := availability.NewInterval(day(start), day(end), status)
	require.NoError(t, err)
	return iv
}

func TestStayUnitFor(t *testing.T) {
	assert.Equal(t, UnitNights, StayUnitFor(properties.TypeGuestHouse))
	assert.Equal(t, UnitMonths, StayUnitFor(properties.TypeLongTermRental))
}

func TestSelectorHappyPath(t *testing.T) {
	var committedIn, committedOut time.Time
	s := &Selector{
		Now:      fixedNow,
		OnCommit: func(in, out time.Time) { committedIn, committedOut = in, out },
	}
	assert.Equal(t, Idle, s.State())

	res := s.Select(day(10))
	assert.Equal(t, OutcomeCheckInSet, res.Outcome)
	assert.Equal(t, AwaitingCheckout, s.State())

	res = s.Select(day(13))
	assert.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, Committed, s.State())
	assert.Equal(t, day(10), committedIn)
	assert.Equal(t, day(13), committedOut)
}

func TestSelectorRejectsPastCheckIn(t *testing.T) {
	s := &Selector{Now: func() time.Time { return day(15) }}
	res := s.Select(day(10))
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, ReasonPastDate, res.Reason)
	assert.Equal(t, Idle, s.State())
}

func TestSelectorRejectsBlockedCheckIn(t *testing.T) {
	s := &Selector{
		Now:       fixedNow,
		Intervals: []availability.ReservationInterval{interval(t, 10, 12, availability.StatusConfirmed)},
	}
	res := s.Select(day(11))
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, ReasonDateBlocked, res.Reason)
	assert.Equal(t, Idle, s.State())
}

func TestSelectorEarlierPickRestartsSelection(t *testing.T) {
	s := &Selector{Now: fixedNow}
	require.Equal(t, OutcomeCheckInSet, s.Select(day(10)).Outcome)

	res := s.Select(day(5))
	assert.Equal(t, OutcomeCheckInSet, res.Outcome)
	assert.Equal(t, AwaitingCheckout, s.State())
	checkIn, ok := s.CheckIn()
	require.True(t, ok)
	assert.Equal(t, day(5), checkIn)
}

func TestSelectorSameDayPickRestartsSelection(t *testing.T) {
	s := &Selector{Now: fixedNow}
	require.Equal(t, OutcomeCheckInSet, s.Select(day(10)).Outcome)
	res := s.Select(day(10))
	assert.Equal(t, OutcomeCheckInSet, res.Outcome)
	assert.Equal(t, AwaitingCheckout, s.State())
}

func TestSelectorRejectsRangeCrossingReservation(t *testing.T) {
	s := &Selector{
		Now:       fixedNow,
		Intervals: []availability.ReservationInterval{interval(t, 2, 2, availability.StatusPending)},
	}
	// June 2 is occupied, so a June 1 check-in cannot reach June 5.
	require.Equal(t, OutcomeCheckInSet, s.Select(day(1)).Outcome)
	res := s.Select(day(5))
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, ReasonRangeTaken, res.Reason)

	// The pending check-in survives the rejection.
	assert.Equal(t, AwaitingCheckout, s.State())
	checkIn, ok := s.CheckIn()
	require.True(t, ok)
	assert.Equal(t, day(1), checkIn)
}

func TestSelectorMinimumStayNights(t *testing.T) {
	s := &Selector{
		Now:         fixedNow,
		Constraints: Constraints{MinimumStay: 3, Unit: StayUnitFor(properties.TypeGuestHouse)},
	}
	require.Equal(t, OutcomeCheckInSet, s.Select(day(10)).Outcome)

	res := s.Select(day(11))
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Contains(t, res.Reason, ReasonMinimumStay)
	assert.Equal(t, AwaitingCheckout, s.State())

	res = s.Select(day(13))
	assert.Equal(t, OutcomeCommitted, res.Outcome)
}

func TestSelectorMinimumStayMonths(t *testing.T) {
	s := &Selector{
		Now:         fixedNow,
		Constraints: Constraints{MinimumStay: 1, Unit: StayUnitFor(properties.TypeLongTermRental)},
	}
	require.Equal(t, OutcomeCheckInSet, s.Select(day(5)).Outcome)

	// 20 nights is under one whole month.
	res := s.Select(day(25))
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Contains(t, res.Reason, ReasonMinimumStay)

	res = s.Select(time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, OutcomeCommitted, res.Outcome)
}

func TestSelectorPickAfterCommitRestarts(t *testing.T) {
	s := &Selector{Now: fixedNow}
	require.Equal(t, OutcomeCheckInSet, s.Select(day(10)).Outcome)
	require.Equal(t, OutcomeCommitted, s.Select(day(13)).Outcome)

	res := s.Select(day(20))
	assert.Equal(t, OutcomeCheckInSet, res.Outcome)
	assert.Equal(t, AwaitingCheckout, s.State())
	_, hasCheckOut := s.CheckOut()
	assert.False(t, hasCheckOut)
}

func TestSelectorHover(t *testing.T) {
	s := &Selector{Now: fixedNow}

	// Hover is inert while idle.
	s.Hover(day(12))
	_, ok := s.Hovered()
	assert.False(t, ok)

	require.Equal(t, OutcomeCheckInSet, s.Select(day(10)).Outcome)
	s.Hover(day(9))
	_, ok = s.Hovered()
	assert.False(t, ok, "hover before check-in is ignored")

	s.Hover(day(12))
	hovered, ok := s.Hovered()
	require.True(t, ok)
	assert.Equal(t, day(12), hovered)

	s.ClearHover()
	_, ok = s.Hovered()
	assert.False(t, ok)

	s.Hover(day(12))
	require.Equal(t, OutcomeCommitted, s.Select(day(13)).Outcome)
	_, ok = s.Hovered()
	assert.False(t, ok, "commit clears the hover preview")
}

func TestSelectorReset(t *testing.T) {
	s := &Selector{Now: fixedNow}
	require.Equal(t, OutcomeCheckInSet, s.Select(day(10)).Outcome)
	s.Hover(day(12))
	s.Reset()

	assert.Equal(t, Idle, s.State())
	_, ok := s.Hovered()
	assert.False(t, ok)
}
