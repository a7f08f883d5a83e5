package availability

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
)

// IsBlocked reports whether day is occupied by any interval. Every status
// counts: a pending request holds its dates just like a confirmed stay or an
// owner block.
func IsBlocked(day time.Time, intervals []ReservationInterval) bool {
	for _, iv := range intervals {
		if iv.Covers(day) {
			return true
		}
	}
	return false
}

// IsPending reports whether day is covered by an interval whose status is
// pending. Used for visual flagging only; it never loosens IsBlocked.
func IsPending(day time.Time, intervals []ReservationInterval) bool {
	for _, iv := range intervals {
		if iv.Status == StatusPending && iv.Covers(day) {
			return true
		}
	}
	return false
}

// IsRangeFree walks every day of [checkIn, checkOut) and reports whether none
// is blocked. An unset or inverted check-out is trivially free: it describes
// an incomplete selection, not a stay.
//
// Callers must separately refuse past days (dates.IsPast) before consulting
// the index; interval data says nothing about the calendar's relation to now.
func IsRangeFree(checkIn, checkOut time.Time, intervals []ReservationInterval) bool {
	if checkOut.IsZero() || !checkOut.After(checkIn) {
		return true
	}
	for day := dates.StartOfDay(checkIn); day.Before(dates.StartOfDay(checkOut)); day = day.AddDate(0, 0, 1) {
		if IsBlocked(day, intervals) {
			return false
		}
	}
	return true
}
