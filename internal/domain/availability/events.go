package availability

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
)

type RangeReserved struct {
	PropertyID string
	Range      daterange.DateRange
	Status     Status
	Reference  string
	At         time.Time
}

func (e RangeReserved) EventName() string     { return "calendar.range_reserved" }
func (e RangeReserved) AggregateID() string   { return e.PropertyID }
func (e RangeReserved) OccurredAt() time.Time { return e.At }

type RangeReleased struct {
	PropertyID string
	Range      daterange.DateRange
	Status     Status
	At         time.Time
}

func (e RangeReleased) EventName() string     { return "calendar.range_released" }
func (e RangeReleased) AggregateID() string   { return e.PropertyID }
func (e RangeReleased) OccurredAt() time.Time { return e.At }

type EntryConfirmed struct {
	PropertyID string
	Range      daterange.DateRange
	Reference  string
	At         time.Time
}

func (e EntryConfirmed) EventName() string     { return "calendar.entry_confirmed" }
func (e EntryConfirmed) AggregateID() string   { return e.PropertyID }
func (e EntryConfirmed) OccurredAt() time.Time { return e.At }

type DoubleBookingPrevented struct {
	PropertyID string
	Range      daterange.DateRange
	At         time.Time
}

func (e DoubleBookingPrevented) EventName() string     { return "calendar.double_booking_prevented" }
func (e DoubleBookingPrevented) AggregateID() string   { return e.PropertyID }
func (e DoubleBookingPrevented) OccurredAt() time.Time { return e.At }
