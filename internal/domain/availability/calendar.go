package availability

import (
	"context"
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/events"
)

var (
	ErrOverlappingRange = errors.New("availability: range overlaps an existing reservation")
	ErrRangeNotFound    = errors.New("availability: range not found")
)

// Calendar is the authoritative, persisted occupancy record for one property.
// Unlike the advisory interval index, Reserve is re-validated inside the
// booking transaction, so two guests racing for the same range lose here,
// not in the UI.
type Calendar struct {
	PropertyID properties.PropertyID
	Entries    []Entry
	Version    int64
	events.EventRecorder
}

// Entry is one committed occupancy span with its source reservation.
type Entry struct {
	Range     daterange.DateRange
	Status    Status
	Reference string
	CreatedAt time.Time
}

type Repository interface {
	Calendar(ctx context.Context, id properties.PropertyID) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}

func NewCalendar(id properties.PropertyID) *Calendar {
	return &Calendar{PropertyID: id}
}

// CanReserve reports whether r collides with no existing entry.
func (c *Calendar) CanReserve(r daterange.DateRange) bool {
	for _, entry := range c.Entries {
		if entry.Range.Overlaps(r) {
			return false
		}
	}
	return true
}

// Reserve occupies r for a booking. Pending and confirmed reservations hold
// their dates equally.
func (c *Calendar) Reserve(r daterange.DateRange, status Status, bookingID string, now time.Time) error {
	if status != StatusPending && status != StatusConfirmed {
		return ErrUnknownStatus
	}
	if !c.CanReserve(r) {
		c.Record(DoubleBookingPrevented{PropertyID: string(c.PropertyID), Range: r, At: now.UTC()})
		return ErrOverlappingRange
	}
	c.Entries = append(c.Entries, Entry{Range: r, Status: status, Reference: bookingID, CreatedAt: now.UTC()})
	c.Record(RangeReserved{PropertyID: string(c.PropertyID), Range: r, Status: status, Reference: bookingID, At: now.UTC()})
	return nil
}

// Block occupies r on the owner's behalf (maintenance, personal use).
func (c *Calendar) Block(r daterange.DateRange, reference string, now time.Time) error {
	if !c.CanReserve(r) {
		return ErrOverlappingRange
	}
	c.Entries = append(c.Entries, Entry{Range: r, Status: StatusBlocked, Reference: reference, CreatedAt: now.UTC()})
	c.Record(RangeReserved{PropertyID: string(c.PropertyID), Range: r, Status: StatusBlocked, Reference: reference, At: now.UTC()})
	return nil
}

// ConfirmEntry upgrades a pending entry to confirmed once the booking is paid.
func (c *Calendar) ConfirmEntry(reference string, now time.Time) error {
	for i := range c.Entries {
		if c.Entries[i].Reference == reference {
			c.Entries[i].Status = StatusConfirmed
			c.Record(EntryConfirmed{PropertyID: string(c.PropertyID), Range: c.Entries[i].Range, Reference: reference, At: now.UTC()})
			return nil
		}
	}
	return ErrRangeNotFound
}

// Release frees the entry recorded under reference, e.g. after cancellation.
func (c *Calendar) Release(reference string, now time.Time) error {
	idx := -1
	for i, entry := range c.Entries {
		if entry.Reference == reference {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrRangeNotFound
	}
	released := c.Entries[idx]
	c.Entries = append(c.Entries[:idx], c.Entries[idx+1:]...)
	c.Record(RangeReleased{PropertyID: string(c.PropertyID), Range: released.Range, Status: released.Status, At: now.UTC()})
	return nil
}

// Intervals projects the calendar into the advisory interval form consumed by
// the index and the range selector.
func (c *Calendar) Intervals() []ReservationInterval {
	out := make([]ReservationInterval, 0, len(c.Entries))
	for _, entry := range c.Entries {
		iv, err := NewInterval(entry.Range.CheckIn, entry.Range.CheckOut.AddDate(0, 0, -1), entry.Status)
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	return out
}
