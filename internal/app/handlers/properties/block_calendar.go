package properties

import (
	"context"
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	"github.com/flori92/lokali-platform-sub000/internal/app/outbox"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domain "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainrange "github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	domainevents "github.com/flori92/lokali-platform-sub000/internal/domain/shared/events"
)

const blockCalendarKey = "calendar.block"

var (
	ErrUnitOfWorkRequired = errors.New("properties: unit of work required")
	ErrNotPropertyOwner   = errors.New("properties: caller does not own the property")
)

type BlockCalendarCommand struct {
	CommandID  string
	PropertyID string
	OwnerID    string
	From       time.Time
	To         time.Time
	Reason     string
}

func (c BlockCalendarCommand) Key() string { return blockCalendarKey }

func (c BlockCalendarCommand) Validate() error {
	if c.PropertyID == "" {
		return domain.ErrPropertyNotFound
	}
	if c.OwnerID == "" {
		return ErrNotPropertyOwner
	}
	return nil
}

type BlockCalendarResult struct {
	PropertyID string    `json:"property_id"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
}

// BlockCalendarHandler lets an owner take a range off the market without a
// booking behind it (maintenance, personal use). Blocked ranges occupy the
// calendar exactly like reservations do.
type BlockCalendarHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	NowFunc    func() time.Time
}

func (h *BlockCalendarHandler) Handle(ctx context.Context, cmd BlockCalendarCommand) (*BlockCalendarResult, error) {
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

	dr, err := domainrange.New(cmd.From, cmd.To)
	if err != nil {
		return nil, err
	}
	now := h.now()
	if err := domainbooking.ValidateDateRange(dr, now); err != nil {
		return nil, err
	}

	property, err := unit.Properties().ByID(ctx, domain.PropertyID(cmd.PropertyID))
	if err != nil {
		return nil, err
	}
	if string(property.Owner) != cmd.OwnerID {
		return nil, ErrNotPropertyOwner
	}

	calendar, err := unit.Availability().Calendar(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	reference := cmd.CommandID
	if reference == "" {
		reference = "block:" + cmd.Reason
	}
	if err := calendar.Block(dr, reference, now); err != nil {
		return nil, err
	}
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return nil, err
	}

	pending := calendar.PendingEvents()
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

	return &BlockCalendarResult{PropertyID: cmd.PropertyID, From: dr.CheckIn, To: dr.CheckOut}, nil
}

func (h *BlockCalendarHandler) begin(ctx context.Context) (uow.UnitOfWork, context.Context, func(), error) {
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

func (h *BlockCalendarHandler) recordEvents(ctx context.Context, evs []domainevents.DomainEvent) error {
	encoder := h.Encoder
	if encoder == nil {
		encoder = outbox.JSONEventEncoder{}
	}
	return outbox.RecordDomainEvents(ctx, h.Outbox, encoder, evs)
}

func (h *BlockCalendarHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[BlockCalendarCommand, *BlockCalendarResult] = (*BlockCalendarHandler)(nil)
