package pricing

import (
	"context"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	"github.com/flori92/lokali-platform-sub000/internal/app/handlers/support"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainpricing "github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainrange "github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
)

const getQuoteKey = "pricing.quote"

type GetQuoteQuery struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

type GetQuoteHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle prices a tentative selection. The quote is recomputed on every
// selection change and again when the booking is requested; nothing here is
// persisted.
func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.PriceQuote, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PriceQuote{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	dr, err := domainrange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.PriceQuote{}, err
	}
	property, err := unit.Properties().ByID(ctx, domainproperties.PropertyID(q.PropertyID))
	if err != nil {
		return dto.PriceQuote{}, err
	}
	quote, err := domainpricing.QuoteFor(property, dr)
	if err != nil {
		return dto.PriceQuote{}, err
	}
	return dto.MapQuote(q.PropertyID, dr.CheckIn, dr.CheckOut, quote), nil
}

var _ queries.Handler[GetQuoteQuery, dto.PriceQuote] = (*GetQuoteHandler)(nil)
