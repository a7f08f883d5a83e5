package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainpricing "github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainrange "github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
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
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"guest_id": guestID})
}

func (r *BookingRepository) ListByProperty(ctx context.Context, propertyID domainproperties.PropertyID) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"property_id": string(propertyID)})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		agg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID         string        `bson:"_id"`
	PropertyID string        `bson:"property_id"`
	GuestID    string        `bson:"guest_id"`
	Range      rangeDocument `bson:"range"`
	Guests     int           `bson:"guests"`
	Quote      quoteDocument `bson:"quote"`
	State      string        `bson:"state"`
	PaymentRef string        `bson:"payment_ref"`
	CreatedAt  int64         `bson:"created_at"`
	UpdatedAt  int64         `bson:"updated_at"`
	Version    int64         `bson:"version"`
}

// quoteDocument freezes the priced quote at booking time. Later price edits on
// the property never rewrite past bookings.
type quoteDocument struct {
	BaseAmount int64  `bson:"base_amount"`
	ServiceFee int64  `bson:"service_fee"`
	Total      int64  `bson:"total"`
	Currency   string `bson:"currency"`
	Period     string `bson:"period"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:         string(b.ID),
		PropertyID: string(b.PropertyID),
		GuestID:    b.GuestID,
		Range:      rangeDocument{CheckIn: b.Range.CheckIn.UnixMilli(), CheckOut: b.Range.CheckOut.UnixMilli()},
		Guests:     b.Guests,
		Quote: quoteDocument{
			BaseAmount: b.Quote.BaseAmount.Amount,
			ServiceFee: b.Quote.ServiceFee.Amount,
			Total:      b.Quote.Total.Amount,
			Currency:   b.Quote.Total.Currency,
			Period:     string(b.Quote.Period),
		},
		State:      string(b.State),
		PaymentRef: b.PaymentRef,
		CreatedAt:  b.CreatedAt.UnixMilli(),
		UpdatedAt:  b.UpdatedAt.UnixMilli(),
		Version:    b.Version,
	}
}

func (d bookingDocument) toAggregate() (*domainbooking.Booking, error) {
	dr := domainrange.DateRange{CheckIn: timestampToTime(d.Range.CheckIn), CheckOut: timestampToTime(d.Range.CheckOut)}
	currency := d.Quote.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	agg := &domainbooking.Booking{
		ID:         domainbooking.BookingID(d.ID),
		PropertyID: domainproperties.PropertyID(d.PropertyID),
		GuestID:    d.GuestID,
		Range:      dr,
		Guests:     d.Guests,
		Quote: domainpricing.Quote{
			BaseAmount: money.Money{Amount: d.Quote.BaseAmount, Currency: currency},
			ServiceFee: money.Money{Amount: d.Quote.ServiceFee, Currency: currency},
			Total:      money.Money{Amount: d.Quote.Total, Currency: currency},
			Period:     domainproperties.BillingPeriod(d.Quote.Period),
		},
		State:      domainbooking.BookingState(d.State),
		PaymentRef: d.PaymentRef,
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
	return agg, nil
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
