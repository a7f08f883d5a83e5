package availability

import (
	"context"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	"github.com/flori92/lokali-platform-sub000/internal/app/handlers/support"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

const getCalendarKey = "availability.calendar"

type GetCalendarQuery struct {
	PropertyID string
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Calendar{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	calendar, err := unit.Availability().Calendar(ctx, domainproperties.PropertyID(q.PropertyID))
	if err != nil {
		return dto.Calendar{}, err
	}
	return dto.MapCalendar(calendar, time.Now()), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
