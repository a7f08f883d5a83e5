package dto

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/availability"
)

type CalendarEntry struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Status string    `json:"status"`
}

type Calendar struct {
	PropertyID  string          `json:"property_id"`
	Entries     []CalendarEntry `json:"entries"`
	RetrievedAt time.Time       `json:"retrieved_at"`
}

func MapCalendar(cal *availability.Calendar, now time.Time) Calendar {
	if cal == nil {
		return Calendar{}
	}
	entries := make([]CalendarEntry, 0, len(cal.Entries))
	for _, e := range cal.Entries {
		entries = append(entries, CalendarEntry{
			From:   e.Range.CheckIn,
			To:     e.Range.CheckOut,
			Status: string(e.Status),
		})
	}
	return Calendar{PropertyID: string(cal.PropertyID), Entries: entries, RetrievedAt: now.UTC()}
}

// RangeCheck is the answer to "is this range free". Pending days do not block
// differently from confirmed ones; they are listed so the UI can flag them.
type RangeCheck struct {
	PropertyID  string      `json:"property_id"`
	CheckIn     time.Time   `json:"check_in"`
	CheckOut    time.Time   `json:"check_out"`
	Free        bool        `json:"free"`
	PendingDays []time.Time `json:"pending_days,omitempty"`
}
