package reviews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	"github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func completedBooking(t *testing.T) *booking.Booking {
	t.Helper()
	dr, err := daterange.New(day(10), day(13))
	require.NoError(t, err)
	bk, err := booking.NewBooking(booking.CreateParams{
		ID:         "bk-1",
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		Range:      dr,
		Guests:     2,
		Quote:      pricing.Quote{Total: money.FCFA(77350)},
		CreatedAt:  day(1),
	})
	require.NoError(t, err)
	require.NoError(t, bk.Confirm("pay-1", day(2)))
	require.NoError(t, bk.CheckIn(day(10)))
	require.NoError(t, bk.CheckOut(day(13)))
	return bk
}

func TestSubmit(t *testing.T) {
	bk := completedBooking(t)
	review, err := Submit(SubmitParams{
		ID:        "rev-1",
		Booking:   bk,
		AuthorID:  "guest-1",
		Rating:    4,
		Text:      "  Calme et bien situé.  ",
		CreatedAt: day(14),
	})
	require.NoError(t, err)

	assert.Equal(t, booking.BookingID("bk-1"), review.BookingID)
	assert.Equal(t, bk.PropertyID, review.PropertyID)
	assert.Equal(t, "Calme et bien situé.", review.Text, "text is stored trimmed")

	events := review.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "review.submitted", events[0].EventName())
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	bk := completedBooking(t)
	for _, rating := range []int{0, -1, 6} {
		_, err := Submit(SubmitParams{ID: "rev-1", Booking: bk, AuthorID: "guest-1", Rating: rating, CreatedAt: day(14)})
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestSubmitRequiresCompletedStay(t *testing.T) {
	dr, err := daterange.New(day(10), day(13))
	require.NoError(t, err)
	bk, err := booking.NewBooking(booking.CreateParams{
		ID:         "bk-2",
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		Range:      dr,
		Guests:     1,
		Quote:      pricing.Quote{Total: money.FCFA(25850)},
		CreatedAt:  day(1),
	})
	require.NoError(t, err)

	_, err = Submit(SubmitParams{ID: "rev-1", Booking: bk, AuthorID: "guest-1", Rating: 5, CreatedAt: day(14)})
	assert.ErrorIs(t, err, ErrStayNotOver)

	_, err = Submit(SubmitParams{ID: "rev-1", Booking: nil, AuthorID: "guest-1", Rating: 5, CreatedAt: day(14)})
	assert.ErrorIs(t, err, ErrStayNotOver)
}
