package booking

import (
	"context"
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	"github.com/flori92/lokali-platform-sub000/internal/app/outbox"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
)

const cancelBookingKey = "booking.cancel"

var ErrNotBookingOwner = errors.New("booking: only the guest who booked may cancel")

type CancelBookingCommand struct {
	BookingID string
	GuestID   string
	Reason    string
}

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

type CancelBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type CancelBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	NowFunc    func() time.Time
}

// Handle cancels a pending or confirmed booking and frees its calendar range.
func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*CancelBookingResult, error) {
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
	if cmd.GuestID != "" && bk.GuestID != cmd.GuestID {
		return nil, ErrNotBookingOwner
	}

	now := h.now()
	if err := bk.Cancel(cmd.Reason, now); err != nil {
		return nil, err
	}

	calendar, err := unit.Availability().Calendar(ctx, bk.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := calendar.Release(string(bk.ID), now); err != nil && !errors.Is(err, domainavailability.ErrRangeNotFound) {
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
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}
	return &CancelBookingResult{BookingID: string(bk.ID), Status: string(bk.State)}, nil
}

func (h *CancelBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *CancelBookingHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CancelBookingCommand, *CancelBookingResult] = (*CancelBookingHandler)(nil)
