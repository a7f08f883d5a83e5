// Package dates holds the day-level calendar math shared by availability
// checks, the range selector and the price calculator. All helpers are pure
// and operate on whole calendar days in UTC.
package dates

import "time"

// StartOfDay normalizes t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay normalizes t to 23:59:59.999 UTC of its day.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] intersect. Touching endpoints count as an overlap: a
// checkout day equal to another booking's check-in day is occupied, no
// same-day turnover is assumed safe.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// DaysBetween returns the number of whole days separating a and b,
// rounded up and always non-negative.
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	days := d / (24 * time.Hour)
	if d%(24*time.Hour) != 0 {
		days++
	}
	return int(days)
}

// WholeMonthsBetween returns the count of full calendar months between a and
// b (a <= b), walking month by month so that Jan 31 -> Feb 28 counts as zero.
func WholeMonthsBetween(a, b time.Time) int {
	a, b = StartOfDay(a), StartOfDay(b)
	if b.Before(a) {
		a, b = b, a
	}
	months := 0
	for {
		next := a.AddDate(0, months+1, 0)
		if next.After(b) {
			return months
		}
		months++
	}
}

// IsPast reports whether day falls before the calendar day of now. Past days
// are never selectable regardless of reservation data.
func IsPast(day, now time.Time) bool {
	return StartOfDay(day).Before(StartOfDay(now))
}
