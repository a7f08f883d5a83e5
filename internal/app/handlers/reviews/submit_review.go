package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	"github.com/flori92/lokali-platform-sub000/internal/app/outbox"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domain "github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
	domainevents "github.com/flori92/lokali-platform-sub000/internal/domain/shared/events"
)

const submitReviewKey = "reviews.submit"

var (
	ErrUnitOfWorkRequired = errors.New("reviews: unit of work required")
	ErrNotBookingGuest    = errors.New("reviews: only the guest of the stay may review it")
)

type SubmitReviewCommand struct {
	CommandID string
	BookingID string
	AuthorID  string
	Rating    int
	Text      string
}

func (c SubmitReviewCommand) Key() string { return submitReviewKey }

func (c SubmitReviewCommand) Validate() error {
	if c.BookingID == "" {
		return domainbooking.ErrBookingNotFound
	}
	if c.AuthorID == "" {
		return ErrNotBookingGuest
	}
	if c.Rating < 1 || c.Rating > 5 {
		return domain.ErrInvalidRating
	}
	return nil
}

type SubmitReviewResult struct {
	ReviewID string `json:"review_id"`
}

type SubmitReviewHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	NowFunc    func() time.Time
}

// Handle files a review for a finished stay. Only the guest of a checked-out
// booking may write one; the guard on the booking state lives in the domain.
func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (*SubmitReviewResult, error) {
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

	bk, err := unit.Booking().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	if bk.GuestID != cmd.AuthorID {
		return nil, ErrNotBookingGuest
	}

	review, err := domain.Submit(domain.SubmitParams{
		ID:        domain.ReviewID(cmd.CommandID),
		Booking:   bk,
		AuthorID:  cmd.AuthorID,
		Rating:    cmd.Rating,
		Text:      cmd.Text,
		CreatedAt: h.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Reviews().Save(ctx, review); err != nil {
		return nil, err
	}

	pending := review.PendingEvents()
	review.ClearEvents()
	if err := h.recordEvents(ctx, pending); err != nil {
		return nil, err
	}

	if done != nil {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}
	return &SubmitReviewResult{ReviewID: string(review.ID)}, nil
}

func (h *SubmitReviewHandler) begin(ctx context.Context) (uow.UnitOfWork, context.Context, func(), error) {
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

func (h *SubmitReviewHandler) recordEvents(ctx context.Context, evs []domainevents.DomainEvent) error {
	encoder := h.Encoder
	if encoder == nil {
		encoder = outbox.JSONEventEncoder{}
	}
	return outbox.RecordDomainEvents(ctx, h.Outbox, encoder, evs)
}

func (h *SubmitReviewHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[SubmitReviewCommand, *SubmitReviewResult] = (*SubmitReviewHandler)(nil)
