package booking

import (
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
)

var ErrCheckInInPast = errors.New("booking: check-in date is in the past")

// ValidateDateRange rejects stays that start before today.
func ValidateDateRange(dr daterange.DateRange, now time.Time) error {
	if dates.IsPast(dr.CheckIn, now) {
		return ErrCheckInInPast
	}
	return nil
}
