package reviews

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

type ReviewSubmitted struct {
	ReviewID   ReviewID
	BookingID  booking.BookingID
	PropertyID properties.PropertyID
	Rating     int
	At         time.Time
}

func (e ReviewSubmitted) EventName() string     { return "review.submitted" }
func (e ReviewSubmitted) AggregateID() string   { return string(e.ReviewID) }
func (e ReviewSubmitted) OccurredAt() time.Time { return e.At }
