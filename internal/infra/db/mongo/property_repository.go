package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("agg_property")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperties.ErrPropertyNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PropertyRepository) Save(ctx context.Context, property *domainproperties.Property) error {
	doc := newPropertyDocument(property)
	filter := bson.M{"_id": doc.ID, "version": property.Version}
	doc.Version = property.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	property.Version = doc.Version
	return nil
}

func (r *PropertyRepository) Search(ctx context.Context, params domainproperties.SearchParams) (domainproperties.SearchResult, error) {
	params = params.Normalized()
	filter := bson.M{}
	if params.OnlyPublished {
		filter["state"] = string(domainproperties.PropertyPublished)
	} else if len(params.States) > 0 {
		states := make([]string, 0, len(params.States))
		for _, s := range params.States {
			states = append(states, string(s))
		}
		filter["state"] = bson.M{"$in": states}
	}
	if params.Owner != "" {
		filter["owner"] = string(params.Owner)
	}
	if params.City != "" {
		filter["address.city_norm"] = params.City
	}
	if params.District != "" {
		filter["address.district_norm"] = params.District
	}
	if len(params.Types) > 0 {
		types := make([]string, 0, len(params.Types))
		for _, t := range params.Types {
			types = append(types, string(t))
		}
		filter["type"] = bson.M{"$in": types}
	}
	if params.MinGuests > 0 {
		filter["guests_limit"] = bson.M{"$gte": params.MinGuests}
	}
	price := bson.M{}
	if params.PriceMin > 0 {
		price["$gte"] = params.PriceMin
	}
	if params.PriceMax > 0 {
		price["$lte"] = params.PriceMax
	}
	if len(price) > 0 {
		filter["unit_price.amount"] = price
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainproperties.SearchResult{}, err
	}
	opts := options.Find().
		SetSort(sortSpec(params.Sort)).
		SetSkip(int64(params.Offset)).
		SetLimit(int64(params.Limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return domainproperties.SearchResult{}, err
	}
	defer cursor.Close(ctx)
	result := domainproperties.SearchResult{Total: int(total)}
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainproperties.SearchResult{}, err
		}
		result.Items = append(result.Items, doc.toAggregate())
	}
	return result, cursor.Err()
}

func sortSpec(sort domainproperties.CatalogSort) bson.D {
	switch sort {
	case domainproperties.SortByPriceAsc:
		return bson.D{{Key: "unit_price.amount", Value: 1}}
	case domainproperties.SortByPriceDesc:
		return bson.D{{Key: "unit_price.amount", Value: -1}}
	case domainproperties.SortByRating:
		return bson.D{{Key: "rating", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

type propertyDocument struct {
	ID            string          `bson:"_id"`
	Owner         string          `bson:"owner"`
	Title         string          `bson:"title"`
	Description   string          `bson:"description"`
	Type          string          `bson:"type"`
	Address       addressDocument `bson:"address"`
	Amenities     []string        `bson:"amenities"`
	GuestsLimit   int             `bson:"guests_limit"`
	UnitPrice     moneyDocument   `bson:"unit_price"`
	BillingPeriod string          `bson:"billing_period"`
	MinimumStay   int             `bson:"minimum_stay"`
	State         string          `bson:"state"`
	Rating        float64         `bson:"rating"`
	CreatedAt     int64           `bson:"created_at"`
	UpdatedAt     int64           `bson:"updated_at"`
	Version       int64           `bson:"version"`
}

// addressDocument keeps lowercased *_norm copies for exact filter matches.
type addressDocument struct {
	Line1        string  `bson:"line1"`
	District     string  `bson:"district"`
	DistrictNorm string  `bson:"district_norm"`
	City         string  `bson:"city"`
	CityNorm     string  `bson:"city_norm"`
	Country      string  `bson:"country"`
	Lat          float64 `bson:"lat"`
	Lon          float64 `bson:"lon"`
}

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func newPropertyDocument(p *domainproperties.Property) propertyDocument {
	return propertyDocument{
		ID:          string(p.ID),
		Owner:       string(p.Owner),
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Address: addressDocument{
			Line1:        p.Address.Line1,
			District:     p.Address.District,
			DistrictNorm: lower(p.Address.District),
			City:         p.Address.City,
			CityNorm:     lower(p.Address.City),
			Country:      p.Address.Country,
			Lat:          p.Address.Lat,
			Lon:          p.Address.Lon,
		},
		Amenities:     p.Amenities,
		GuestsLimit:   p.GuestsLimit,
		UnitPrice:     moneyDocument{Amount: p.UnitPrice.Amount, Currency: p.UnitPrice.Currency},
		BillingPeriod: string(p.BillingPeriod),
		MinimumStay:   p.MinimumStay,
		State:         string(p.State),
		Rating:        p.Rating,
		CreatedAt:     p.CreatedAt.UnixMilli(),
		UpdatedAt:     p.UpdatedAt.UnixMilli(),
		Version:       p.Version,
	}
}

func (d propertyDocument) toAggregate() *domainproperties.Property {
	return &domainproperties.Property{
		ID:          domainproperties.PropertyID(d.ID),
		Owner:       domainproperties.OwnerID(d.Owner),
		Title:       d.Title,
		Description: d.Description,
		Type:        domainproperties.PropertyType(d.Type),
		Address: domainproperties.Address{
			Line1:    d.Address.Line1,
			District: d.Address.District,
			City:     d.Address.City,
			Country:  d.Address.Country,
			Lat:      d.Address.Lat,
			Lon:      d.Address.Lon,
		},
		Amenities:     d.Amenities,
		GuestsLimit:   d.GuestsLimit,
		UnitPrice:     money.Money{Amount: d.UnitPrice.Amount, Currency: d.UnitPrice.Currency},
		BillingPeriod: domainproperties.BillingPeriod(d.BillingPeriod),
		MinimumStay:   d.MinimumStay,
		State:         domainproperties.PropertyState(d.State),
		Rating:        d.Rating,
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
		Version:       d.Version,
	}
}
