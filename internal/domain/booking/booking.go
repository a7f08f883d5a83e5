package booking

import (
	"context"
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/events"
)

var (
	ErrInvalidGuests   = errors.New("booking: guests count must be positive")
	ErrGuestRequired   = errors.New("booking: guest id required")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrBookingNotFound = errors.New("booking: not found")
)

type BookingID string

type BookingState string

const (
	StatePending    BookingState = "PENDING"
	StateConfirmed  BookingState = "CONFIRMED"
	StateCancelled  BookingState = "CANCELLED"
	StateCheckedIn  BookingState = "CHECKED_IN"
	StateCheckedOut BookingState = "CHECKED_OUT"
)

type Booking struct {
	ID         BookingID
	PropertyID properties.PropertyID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	Quote      pricing.Quote
	State      BookingState
	// PaymentRef is the external payment widget's transaction reference.
	// Settlement itself happens outside this system.
	PaymentRef string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
	ListByProperty(ctx context.Context, propertyID properties.PropertyID) ([]*Booking, error)
}

type CreateParams struct {
	ID         BookingID
	PropertyID properties.PropertyID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	Quote      pricing.Quote
	CreatedAt  time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if !params.Quote.Total.IsPositive() {
		return nil, pricing.ErrInvalidAmount
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:         params.ID,
		PropertyID: params.PropertyID,
		GuestID:    params.GuestID,
		Range:      params.Range,
		Guests:     params.Guests,
		Quote:      params.Quote,
		State:      StatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.Record(BookingRequested{BookingID: b.ID, PropertyID: b.PropertyID, GuestID: b.GuestID, Range: b.Range, Guests: b.Guests, Total: b.Quote.Total, At: now})
	return b, nil
}

// Confirm marks the booking paid, keyed to the external payment reference.
func (b *Booking) Confirm(paymentRef string, now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.PaymentRef = paymentRef
	b.State = StateConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, PropertyID: b.PropertyID, Range: b.Range, Total: b.Quote.Total, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	switch b.State {
	case StatePending, StateConfirmed:
	default:
		return ErrInvalidState
	}
	b.State = StateCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, PropertyID: b.PropertyID, Reason: reason, At: b.UpdatedAt})
	return nil
}

func (b *Booking) CheckIn(now time.Time) error {
	if b.State != StateConfirmed {
		return ErrInvalidState
	}
	b.State = StateCheckedIn
	b.UpdatedAt = now.UTC()
	b.Record(GuestCheckedIn{BookingID: b.ID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if b.State != StateCheckedIn {
		return ErrInvalidState
	}
	b.State = StateCheckedOut
	b.UpdatedAt = now.UTC()
	b.Record(GuestCheckedOut{BookingID: b.ID, At: b.UpdatedAt})
	return nil
}
