package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func stay(t *testing.T, from, to int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(day(from), day(to))
	require.NoError(t, err)
	return dr
}

func testQuote() pricing.Quote {
	return pricing.Quote{
		BaseAmount: money.FCFA(75000),
		ServiceFee: money.FCFA(2350),
		Total:      money.FCFA(77350),
	}
}

func testParams(t *testing.T) CreateParams {
	return CreateParams{
		ID:         "bk-1",
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		Range:      stay(t, 10, 13),
		Guests:     2,
		Quote:      testQuote(),
		CreatedAt:  day(1),
	}
}

func TestNewBooking(t *testing.T) {
	bk, err := NewBooking(testParams(t))
	require.NoError(t, err)
	assert.Equal(t, StatePending, bk.State)

	events := bk.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "booking.requested", events[0].EventName())
	assert.Equal(t, "bk-1", events[0].AggregateID())
}

func TestNewBookingValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateParams)
		wantErr error
	}{
		{"zero guests", func(p *CreateParams) { p.Guests = 0 }, ErrInvalidGuests},
		{"missing guest id", func(p *CreateParams) { p.GuestID = "" }, ErrGuestRequired},
		{"inverted range", func(p *CreateParams) { p.Range = daterange.DateRange{CheckIn: day(13), CheckOut: day(10)} }, daterange.ErrInvalidRange},
		{"zero quote", func(p *CreateParams) { p.Quote = pricing.Quote{} }, pricing.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testParams(t)
			tt.mutate(&params)
			_, err := NewBooking(params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingLifecycle(t *testing.T) {
	bk, err := NewBooking(testParams(t))
	require.NoError(t, err)
	bk.ClearEvents()

	require.NoError(t, bk.Confirm("pay-77", day(2)))
	assert.Equal(t, StateConfirmed, bk.State)
	assert.Equal(t, "pay-77", bk.PaymentRef)

	require.NoError(t, bk.CheckIn(day(10)))
	assert.Equal(t, StateCheckedIn, bk.State)

	require.NoError(t, bk.CheckOut(day(13)))
	assert.Equal(t, StateCheckedOut, bk.State)

	names := make([]string, 0, 3)
	for _, ev := range bk.PendingEvents() {
		names = append(names, ev.EventName())
	}
	assert.Equal(t, []string{"booking.confirmed", "booking.checked_in", "booking.checked_out"}, names)
}

func TestBookingInvalidTransitions(t *testing.T) {
	bk, err := NewBooking(testParams(t))
	require.NoError(t, err)

	// A pending booking cannot skip straight to the stay.
	assert.ErrorIs(t, bk.CheckIn(day(10)), ErrInvalidState)
	assert.ErrorIs(t, bk.CheckOut(day(13)), ErrInvalidState)

	require.NoError(t, bk.Confirm("pay-1", day(2)))
	assert.ErrorIs(t, bk.Confirm("pay-2", day(2)), ErrInvalidState)
}

func TestBookingCancel(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		bk, err := NewBooking(testParams(t))
		require.NoError(t, err)
		require.NoError(t, bk.Cancel("plans changed", day(3)))
		assert.Equal(t, StateCancelled, bk.State)
	})

	t.Run("confirmed", func(t *testing.T) {
		bk, err := NewBooking(testParams(t))
		require.NoError(t, err)
		require.NoError(t, bk.Confirm("pay-1", day(2)))
		require.NoError(t, bk.Cancel("plans changed", day(3)))
		assert.Equal(t, StateCancelled, bk.State)
	})

	t.Run("after check-in", func(t *testing.T) {
		bk, err := NewBooking(testParams(t))
		require.NoError(t, err)
		require.NoError(t, bk.Confirm("pay-1", day(2)))
		require.NoError(t, bk.CheckIn(day(10)))
		assert.ErrorIs(t, bk.Cancel("too late", day(11)), ErrInvalidState)
	})
}

func TestValidateDateRange(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, ValidateDateRange(stay(t, 5, 8), now), ErrCheckInInPast)
	assert.NoError(t, ValidateDateRange(stay(t, 10, 13), now), "same-day check-in is allowed")
	assert.NoError(t, ValidateDateRange(stay(t, 11, 14), now))
}
