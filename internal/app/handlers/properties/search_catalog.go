package properties

import (
	"context"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	"github.com/flori92/lokali-platform-sub000/internal/app/handlers/support"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domain "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

const searchCatalogKey = "properties.search"

type SearchCatalogQuery struct {
	City     string
	District string
	Types    []string
	Guests   int
	PriceMin int64
	PriceMax int64
	Sort     string
	Limit    int
	Offset   int
}

func (q SearchCatalogQuery) Key() string { return searchCatalogKey }

type SearchCatalogHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle lists published properties matching the catalog filters. Draft and
// suspended properties never show up here regardless of filters.
func (h *SearchCatalogHandler) Handle(ctx context.Context, q SearchCatalogQuery) (dto.PropertyCatalog, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PropertyCatalog{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	types := make([]domain.PropertyType, 0, len(q.Types))
	for _, t := range q.Types {
		types = append(types, domain.PropertyType(t))
	}
	params := domain.SearchParams{
		City:          q.City,
		District:      q.District,
		Types:         types,
		MinGuests:     q.Guests,
		PriceMin:      q.PriceMin,
		PriceMax:      q.PriceMax,
		Sort:          domain.CatalogSort(q.Sort),
		Limit:         q.Limit,
		Offset:        q.Offset,
		OnlyPublished: true,
	}.Normalized()

	result, err := unit.Properties().Search(ctx, params)
	if err != nil {
		return dto.PropertyCatalog{}, err
	}
	items := make([]dto.PropertyOverview, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, dto.MapPropertyOverview(p))
	}
	return dto.PropertyCatalog{Items: items, Total: result.Total}, nil
}

var _ queries.Handler[SearchCatalogQuery, dto.PropertyCatalog] = (*SearchCatalogHandler)(nil)
