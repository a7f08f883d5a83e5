package booking

import (
	"context"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	"github.com/flori92/lokali-platform-sub000/internal/app/handlers/support"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
)

const guestBookingsKey = "booking.guest_list"

type GuestBookingsQuery struct {
	GuestID string
}

func (q GuestBookingsQuery) Key() string { return guestBookingsKey }

type GuestBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GuestBookingsHandler) Handle(ctx context.Context, q GuestBookingsQuery) (dto.BookingCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	items, err := unit.Booking().ListByGuest(ctx, q.GuestID)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	collection := dto.BookingCollection{Items: make([]dto.BookingSummary, 0, len(items))}
	for _, b := range items {
		collection.Items = append(collection.Items, dto.MapBookingSummary(b))
	}
	return collection, nil
}

var _ queries.Handler[GuestBookingsQuery, dto.BookingCollection] = (*GuestBookingsHandler)(nil)
