package booking

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

type BookingRequested struct {
	BookingID  BookingID
	PropertyID properties.PropertyID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	Total      money.Money
	At         time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingConfirmed struct {
	BookingID  BookingID
	PropertyID properties.PropertyID
	Range      daterange.DateRange
	Total      money.Money
	At         time.Time
}

func (e BookingConfirmed) EventName() string     { return "booking.confirmed" }
func (e BookingConfirmed) AggregateID() string   { return string(e.BookingID) }
func (e BookingConfirmed) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID  BookingID
	PropertyID properties.PropertyID
	Reason     string
	At         time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }

type GuestCheckedIn struct {
	BookingID BookingID
	At        time.Time
}

func (e GuestCheckedIn) EventName() string     { return "booking.checked_in" }
func (e GuestCheckedIn) AggregateID() string   { return string(e.BookingID) }
func (e GuestCheckedIn) OccurredAt() time.Time { return e.At }

type GuestCheckedOut struct {
	BookingID BookingID
	At        time.Time
}

func (e GuestCheckedOut) EventName() string     { return "booking.checked_out" }
func (e GuestCheckedOut) AggregateID() string   { return string(e.BookingID) }
func (e GuestCheckedOut) OccurredAt() time.Time { return e.At }
