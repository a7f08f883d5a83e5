package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainreviews "github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection("agg_review")}
}

func (r *ReviewRepository) ByBooking(ctx context.Context, bookingID domainbooking.BookingID, authorID string) (*domainreviews.Review, error) {
	var doc reviewDocument
	filter := bson.M{"booking_id": string(bookingID), "author_id": authorID}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreviews.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID domainproperties.PropertyID, limit, offset int) ([]*domainreviews.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, bson.M{"property_id": string(propertyID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainreviews.Review
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ReviewRepository) Save(ctx context.Context, review *domainreviews.Review) error {
	doc := newReviewDocument(review)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

type reviewDocument struct {
	ID         string `bson:"_id"`
	BookingID  string `bson:"booking_id"`
	AuthorID   string `bson:"author_id"`
	PropertyID string `bson:"property_id"`
	Rating     int    `bson:"rating"`
	Text       string `bson:"text"`
	CreatedAt  int64  `bson:"created_at"`
}

func newReviewDocument(r *domainreviews.Review) reviewDocument {
	return reviewDocument{
		ID:         string(r.ID),
		BookingID:  string(r.BookingID),
		AuthorID:   r.AuthorID,
		PropertyID: string(r.PropertyID),
		Rating:     r.Rating,
		Text:       r.Text,
		CreatedAt:  r.CreatedAt.UnixMilli(),
	}
}

func (d reviewDocument) toAggregate() *domainreviews.Review {
	return &domainreviews.Review{
		ID:         domainreviews.ReviewID(d.ID),
		BookingID:  domainbooking.BookingID(d.BookingID),
		AuthorID:   d.AuthorID,
		PropertyID: domainproperties.PropertyID(d.PropertyID),
		Rating:     d.Rating,
		Text:       d.Text,
		CreatedAt:  timestampToTime(d.CreatedAt),
	}
}
