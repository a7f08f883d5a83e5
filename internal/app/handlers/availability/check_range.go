package availability

import (
	"context"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	"github.com/flori92/lokali-platform-sub000/internal/app/handlers/support"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
)

const checkRangeKey = "availability.check"

type CheckRangeQuery struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
}

func (q CheckRangeQuery) Key() string { return checkRangeKey }

type CheckRangeHandler struct {
	UoWFactory uow.UoWFactory
	// Snapshots, when set, serves the polling feed from periodically
	// refreshed snapshots instead of reading the store on every request.
	Snapshots *domainavailability.SnapshotCache
}

// Handle answers whether [CheckIn, CheckOut) is free, listing pending days so
// the UI can flag them. The answer is advisory: it is recomputed from the
// calendar at booking time.
func (h *CheckRangeHandler) Handle(ctx context.Context, q CheckRangeQuery) (dto.RangeCheck, error) {
	intervals, err := h.intervals(ctx, domainproperties.PropertyID(q.PropertyID))
	if err != nil {
		return dto.RangeCheck{}, err
	}

	result := dto.RangeCheck{
		PropertyID: q.PropertyID,
		CheckIn:    dates.StartOfDay(q.CheckIn),
		CheckOut:   dates.StartOfDay(q.CheckOut),
		Free:       domainavailability.IsRangeFree(q.CheckIn, q.CheckOut, intervals),
	}
	if result.CheckOut.After(result.CheckIn) {
		for day := result.CheckIn; day.Before(result.CheckOut); day = day.AddDate(0, 0, 1) {
			if domainavailability.IsPending(day, intervals) {
				result.PendingDays = append(result.PendingDays, day)
			}
		}
	}
	return result, nil
}

func (h *CheckRangeHandler) intervals(ctx context.Context, id domainproperties.PropertyID) ([]domainavailability.ReservationInterval, error) {
	if h.Snapshots != nil {
		return h.Snapshots.Intervals(ctx, id)
	}

	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	calendar, err := unit.Availability().Calendar(ctx, id)
	if err != nil {
		return nil, err
	}
	return calendar.Intervals(), nil
}

var _ queries.Handler[CheckRangeQuery, dto.RangeCheck] = (*CheckRangeHandler)(nil)
