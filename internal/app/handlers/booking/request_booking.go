package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	"github.com/flori92/lokali-platform-sub000/internal/app/middleware"
	"github.com/flori92/lokali-platform-sub000/internal/app/outbox"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainpricing "github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/selection"
	domainrange "github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
	domainevents "github.com/flori92/lokali-platform-sub000/internal/domain/shared/events"
)

const requestBookingKey = "booking.request"

var (
	ErrUnitOfWorkRequired  = errors.New("booking: unit of work required")
	ErrPropertyUnavailable = errors.New("booking: property is not published")
	ErrMinimumStay         = errors.New("booking: stay is shorter than the property minimum")
)

type RequestBookingCommand struct {
	CommandID       string
	PropertyID      string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

func (c RequestBookingCommand) Validate() error {
	if c.PropertyID == "" {
		return domainproperties.ErrPropertyNotFound
	}
	if c.GuestID == "" {
		return domainbooking.ErrGuestRequired
	}
	if c.Guests <= 0 {
		return domainbooking.ErrInvalidGuests
	}
	return nil
}

type RequestBookingResult struct {
	BookingID string               `json:"booking_id"`
	Quote     QuoteSnapshotPayload `json:"quote"`
}

type QuoteSnapshotPayload struct {
	BaseAmount int64  `json:"base_amount"`
	ServiceFee int64  `json:"service_fee"`
	Total      int64  `json:"total"`
	Currency   string `json:"currency"`
}

type RequestBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	NowFunc    func() time.Time
}

// Handle requests a booking. The selector's client-side checks are advisory
// only, so the full chain is re-run here: a published property, a future
// range, the minimum stay, and, inside the same unit of work, the
// authoritative calendar reservation that makes two racing guests impossible.
func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ctx, done, err := h.begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	if done != nil {
		defer func() {
			if !committed {
				done()
			}
		}()
	}

	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}
	now := h.now()
	if err := domainbooking.ValidateDateRange(dr, now); err != nil {
		return nil, err
	}

	property, err := unit.Properties().ByID(ctx, domainproperties.PropertyID(cmd.PropertyID))
	if err != nil {
		return nil, err
	}
	if property.State != domainproperties.PropertyPublished {
		return nil, ErrPropertyUnavailable
	}
	if err := checkMinimumStay(property, dr); err != nil {
		return nil, err
	}

	quote, err := domainpricing.QuoteFor(property, dr)
	if err != nil {
		return nil, err
	}

	calendar, err := unit.Availability().Calendar(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	bookingID := domainbooking.BookingID(cmd.CommandID)
	if err := calendar.Reserve(dr, domainavailability.StatusPending, string(bookingID), now); err != nil {
		// Publish the prevented double booking before surfacing the conflict.
		_ = h.recordEvents(ctx, calendar.PendingEvents())
		calendar.ClearEvents()
		return nil, err
	}

	bk, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:         bookingID,
		PropertyID: property.ID,
		GuestID:    cmd.GuestID,
		Range:      dr,
		Guests:     cmd.Guests,
		Quote:      quote,
		CreatedAt:  now,
	})
	if err != nil {
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
	if err := h.recordEvents(ctx, pending); err != nil {
		return nil, err
	}

	if done != nil {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RequestBookingResult{
		BookingID: string(bk.ID),
		Quote: QuoteSnapshotPayload{
			BaseAmount: quote.BaseAmount.Amount,
			ServiceFee: quote.ServiceFee.Amount,
			Total:      quote.Total.Amount,
			Currency:   quote.Total.Currency,
		},
	}, nil
}

func (h *RequestBookingHandler) begin(ctx context.Context) (uow.UnitOfWork, context.Context, func(), error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, nil, nil
	}
	if h.UoWFactory == nil {
		return nil, ctx, nil, ErrUnitOfWorkRequired
	}
	unit, err := h.UoWFactory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, ctx, nil, err
	}
	ctx = uow.ContextWithUnitOfWork(ctx, unit)
	return unit, ctx, func() { _ = unit.Rollback(ctx) }, nil
}

func (h *RequestBookingHandler) recordEvents(ctx context.Context, evs []domainevents.DomainEvent) error {
	return outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), evs)
}

func (h *RequestBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *RequestBookingHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc().UTC()
	}
	return time.Now().UTC()
}

// checkMinimumStay re-applies the property's minimum-stay rule server-side.
// The single MinimumStay number is read in the unit the property type
// dictates: nights for guest houses, whole months for long-term rentals.
func checkMinimumStay(property *domainproperties.Property, dr domainrange.DateRange) error {
	if property.MinimumStay <= 0 {
		return nil
	}
	unit := selection.StayUnitFor(property.Type)
	var duration int
	switch unit {
	case selection.UnitMonths:
		duration = dates.WholeMonthsBetween(dr.CheckIn, dr.CheckOut)
	default:
		duration = dates.DaysBetween(dr.CheckIn, dr.CheckOut)
	}
	if duration < property.MinimumStay {
		return fmt.Errorf("%w: %d %s required", ErrMinimumStay, property.MinimumStay, unit)
	}
	return nil
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*RequestBookingCommand)(nil)
