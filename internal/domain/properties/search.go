package properties

import "strings"

// CatalogSort defines a supported ordering of catalog results.
type CatalogSort string

const (
	SortByPriceAsc  CatalogSort = "price_asc"
	SortByPriceDesc CatalogSort = "price_desc"
	SortByRating    CatalogSort = "rating_desc"
	SortByNewest    CatalogSort = "newest"

	defaultSearchLimit = 24
	maxSearchLimit     = 60
)

// SearchParams describe catalog filters and paging options.
type SearchParams struct {
	Owner         OwnerID
	States        []PropertyState
	City          string
	District      string
	Types         []PropertyType
	MinGuests     int
	PriceMin      int64
	PriceMax      int64
	Sort          CatalogSort
	Limit         int
	Offset        int
	OnlyPublished bool
}

type SearchResult struct {
	Items []*Property
	Total int
}

// Normalized returns a sanitized copy of params.
func (p SearchParams) Normalized() SearchParams {
	normalized := p
	normalized.City = strings.TrimSpace(strings.ToLower(normalized.City))
	normalized.District = strings.TrimSpace(strings.ToLower(normalized.District))
	normalized.Types = normalizeTypes(normalized.Types)
	if normalized.MinGuests < 0 {
		normalized.MinGuests = 0
	}
	if normalized.PriceMin < 0 {
		normalized.PriceMin = 0
	}
	if normalized.PriceMax > 0 && normalized.PriceMax < normalized.PriceMin {
		normalized.PriceMax = 0
	}
	if normalized.Limit <= 0 {
		normalized.Limit = defaultSearchLimit
	}
	if normalized.Limit > maxSearchLimit {
		normalized.Limit = maxSearchLimit
	}
	if normalized.Offset < 0 {
		normalized.Offset = 0
	}
	switch normalized.Sort {
	case SortByPriceAsc, SortByPriceDesc, SortByRating, SortByNewest:
	default:
		normalized.Sort = SortByNewest
	}
	return normalized
}

func normalizeTypes(values []PropertyType) []PropertyType {
	if len(values) == 0 {
		return nil
	}
	out := make([]PropertyType, 0, len(values))
	seen := make(map[PropertyType]struct{}, len(values))
	for _, value := range values {
		parsed, err := ParsePropertyType(strings.TrimSpace(strings.ToLower(string(value))))
		if err != nil {
			continue
		}
		if _, ok := seen[parsed]; ok {
			continue
		}
		seen[parsed] = struct{}{}
		out = append(out, parsed)
	}
	return out
}
