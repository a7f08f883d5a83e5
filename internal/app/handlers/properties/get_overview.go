package properties

import (
	"context"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	"github.com/flori92/lokali-platform-sub000/internal/app/handlers/support"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domain "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

const getOverviewKey = "properties.overview"

type GetOverviewQuery struct {
	PropertyID string
}

func (q GetOverviewQuery) Key() string { return getOverviewKey }

type GetOverviewHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetOverviewHandler) Handle(ctx context.Context, q GetOverviewQuery) (dto.PropertyOverview, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PropertyOverview{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	property, err := unit.Properties().ByID(ctx, domain.PropertyID(q.PropertyID))
	if err != nil {
		return dto.PropertyOverview{}, err
	}
	return dto.MapPropertyOverview(property), nil
}

var _ queries.Handler[GetOverviewQuery, dto.PropertyOverview] = (*GetOverviewHandler)(nil)
