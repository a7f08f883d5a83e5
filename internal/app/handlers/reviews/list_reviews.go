package reviews

import (
	"context"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	"github.com/flori92/lokali-platform-sub000/internal/app/handlers/support"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

const listReviewsKey = "reviews.list"

type ListReviewsQuery struct {
	PropertyID string
	Limit      int
	Offset     int
}

func (q ListReviewsQuery) Key() string { return listReviewsKey }

type ListReviewsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListReviewsHandler) Handle(ctx context.Context, q ListReviewsQuery) (dto.ReviewCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	limit := q.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	items, err := unit.Reviews().ListByProperty(ctx, domainproperties.PropertyID(q.PropertyID), limit, offset)
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	out := dto.ReviewCollection{Items: make([]dto.ReviewSummary, 0, len(items))}
	for _, r := range items {
		out.Items = append(out.Items, dto.MapReviewSummary(r))
	}
	return out, nil
}

var _ queries.Handler[ListReviewsQuery, dto.ReviewCollection] = (*ListReviewsHandler)(nil)
