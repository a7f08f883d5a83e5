package daterange

import (
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
)

var ErrInvalidRange = errors.New("daterange: check-out must be after check-in")

// DateRange represents a stay as the half-open interval [CheckIn, CheckOut):
// the check-out day is not an occupied night.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: dates.StartOfDay(checkIn), CheckOut: dates.StartOfDay(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts the occupied nights of the stay.
func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// ContainsDay reports whether t falls on an occupied night of the range.
func (dr DateRange) ContainsDay(t time.Time) bool {
	t = dates.StartOfDay(t)
	return !t.Before(dr.CheckIn) && t.Before(dr.CheckOut)
}

// Days iterates the occupied days of the range in order, stopping early if
// fn returns false.
func (dr DateRange) Days(fn func(day time.Time) bool) {
	for day := dr.CheckIn; day.Before(dr.CheckOut); day = day.AddDate(0, 0, 1) {
		if !fn(day) {
			return
		}
	}
}
