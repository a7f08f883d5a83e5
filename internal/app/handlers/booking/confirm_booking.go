package booking

import (
	"context"
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	"github.com/flori92/lokali-platform-sub000/internal/app/outbox"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
)

const confirmBookingKey = "booking.confirm"

var ErrNotPropertyHost = errors.New("booking: only the property owner may confirm")

type ConfirmBookingCommand struct {
	BookingID  string
	OwnerID    string
	PaymentRef string
}

func (c ConfirmBookingCommand) Key() string { return confirmBookingKey }

type ConfirmBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type ConfirmBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	NowFunc    func() time.Time
}

// Handle confirms a pending booking on the host's behalf and upgrades its
// calendar entry from pending to confirmed. The range itself was already held
// at request time, so confirmation never changes occupancy.
func (h *ConfirmBookingHandler) Handle(ctx context.Context, cmd ConfirmBookingCommand) (*ConfirmBookingResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	bk, err := unit.Booking().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	if cmd.OwnerID != "" {
		property, err := unit.Properties().ByID(ctx, bk.PropertyID)
		if err != nil {
			return nil, err
		}
		if string(property.Owner) != cmd.OwnerID {
			return nil, ErrNotPropertyHost
		}
	}

	now := h.now()
	if err := bk.Confirm(cmd.PaymentRef, now); err != nil {
		return nil, err
	}

	calendar, err := unit.Availability().Calendar(ctx, bk.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := calendar.ConfirmEntry(string(bk.ID), now); err != nil {
		return nil, err
	}

	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return nil, err
	}
	if err := unit.Booking().Save(ctx, bk); err != nil {
		return nil, err
	}

	pending := append(bk.PendingEvents(), calendar.PendingEvents()...)
	bk.ClearEvents()
	calendar.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.confirmEncoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}
	return &ConfirmBookingResult{BookingID: string(bk.ID), Status: string(bk.State)}, nil
}

func (h *ConfirmBookingHandler) confirmEncoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *ConfirmBookingHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[ConfirmBookingCommand, *ConfirmBookingResult] = (*ConfirmBookingHandler)(nil)
