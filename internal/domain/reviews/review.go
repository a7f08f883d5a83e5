package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/events"
)

var (
	ErrInvalidRating = errors.New("reviews: rating must be between 1 and 5")
	ErrStayNotOver   = errors.New("reviews: booking must be checked out before reviewing")
	ErrNotFound      = errors.New("reviews: not found")
)

type ReviewID string

type Review struct {
	ID         ReviewID
	BookingID  booking.BookingID
	AuthorID   string
	PropertyID properties.PropertyID
	Rating     int
	Text       string
	CreatedAt  time.Time
	events.EventRecorder
}

type Repository interface {
	ByBooking(ctx context.Context, bookingID booking.BookingID, authorID string) (*Review, error)
	ListByProperty(ctx context.Context, propertyID properties.PropertyID, limit, offset int) ([]*Review, error)
	Save(ctx context.Context, review *Review) error
}

type SubmitParams struct {
	ID        ReviewID
	Booking   *booking.Booking
	AuthorID  string
	Rating    int
	Text      string
	CreatedAt time.Time
}

// Submit creates a review for a completed stay.
func Submit(params SubmitParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if params.Booking == nil || params.Booking.State != booking.StateCheckedOut {
		return nil, ErrStayNotOver
	}
	review := &Review{
		ID:         params.ID,
		BookingID:  params.Booking.ID,
		AuthorID:   params.AuthorID,
		PropertyID: params.Booking.PropertyID,
		Rating:     params.Rating,
		Text:       strings.TrimSpace(params.Text),
		CreatedAt:  params.CreatedAt.UTC(),
	}
	review.Record(ReviewSubmitted{ReviewID: review.ID, BookingID: review.BookingID, PropertyID: review.PropertyID, Rating: review.Rating, At: review.CreatedAt})
	return review, nil
}
