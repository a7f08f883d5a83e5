// Package availability answers "is this date free" questions for a property.
//
// The ReservationInterval index is advisory, client-facing logic: it works on
// a snapshot of reservations supplied by a caller and performs no fetching of
// its own. A race between two guests selecting the same range is possible and
// is resolved by the authoritative Calendar at booking time, not here.
package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
)

var (
	ErrUnknownStatus = errors.New("availability: unknown reservation status")
	ErrInvalidPeriod = errors.New("availability: interval end before start")
	ErrMalformedDate = errors.New("availability: malformed date")
)

// Status is the occupancy state of an existing reservation. All three states
// occupy the calendar; pending is additionally surfaced for UI styling.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusBlocked   Status = "blocked"
)

// ParseStatus maps an external status string onto the closed enum. Unknown
// values are rejected loudly: silently coercing them could mark occupied
// dates as free.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusConfirmed, StatusPending, StatusBlocked:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}

// ReservationInterval is one occupied span on a property's calendar.
// Start is normalized to start-of-day and End to end-of-day, both inclusive.
type ReservationInterval struct {
	Start  time.Time
	End    time.Time
	Status Status
}

// NewInterval normalizes the bounds and enforces Start <= End.
func NewInterval(start, end time.Time, status Status) (ReservationInterval, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return ReservationInterval{}, err
	}
	iv := ReservationInterval{
		Start:  dates.StartOfDay(start),
		End:    dates.EndOfDay(end),
		Status: status,
	}
	if iv.End.Before(iv.Start) {
		return ReservationInterval{}, ErrInvalidPeriod
	}
	return iv, nil
}

// Covers reports whether day falls inside the interval, endpoint days
// included.
func (iv ReservationInterval) Covers(day time.Time) bool {
	day = dates.StartOfDay(day)
	return dates.Overlaps(day, dates.EndOfDay(day), iv.Start, iv.End)
}

// IntervalFromRecord maps one record of the external reservation feed into a
// normalized interval. Dates are RFC 3339 or plain YYYY-MM-DD strings; any
// malformed field fails fast at this boundary.
func IntervalFromRecord(checkIn, checkOut, status string) (ReservationInterval, error) {
	start, err := parseFeedDate(checkIn)
	if err != nil {
		return ReservationInterval{}, fmt.Errorf("%w: check-in %q", ErrMalformedDate, checkIn)
	}
	end, err := parseFeedDate(checkOut)
	if err != nil {
		return ReservationInterval{}, fmt.Errorf("%w: check-out %q", ErrMalformedDate, checkOut)
	}
	st, err := ParseStatus(status)
	if err != nil {
		return ReservationInterval{}, err
	}
	return NewInterval(start, end, st)
}

func parseFeedDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
