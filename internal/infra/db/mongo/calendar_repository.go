package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainrange "github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
)

// CalendarRepository persists one occupancy calendar per property. The
// version filter on Save is what turns two racing reservations into one
// winner and one ErrConcurrentUpdate.
type CalendarRepository struct {
	col *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) *CalendarRepository {
	return &CalendarRepository{col: db.Collection("agg_calendar")}
}

func (r *CalendarRepository) Calendar(ctx context.Context, id domainproperties.PropertyID) (*domainavailability.Calendar, error) {
	var doc calendarDocument
	err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// A property with no reservations yet has an empty calendar, not a
		// missing one.
		return domainavailability.NewCalendar(id), nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CalendarRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	doc := newCalendarDocument(calendar)
	filter := bson.M{"_id": doc.ID, "version": calendar.Version}
	doc.Version = calendar.Version + 1
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
	calendar.Version = doc.Version
	return nil
}

type calendarDocument struct {
	ID      string          `bson:"_id"`
	Entries []entryDocument `bson:"entries"`
	Version int64           `bson:"version"`
}

type entryDocument struct {
	Range     rangeDocument `bson:"range"`
	Status    string        `bson:"status"`
	Reference string        `bson:"reference"`
	CreatedAt int64         `bson:"created_at"`
}

func newCalendarDocument(c *domainavailability.Calendar) calendarDocument {
	entries := make([]entryDocument, 0, len(c.Entries))
	for _, e := range c.Entries {
		entries = append(entries, entryDocument{
			Range:     rangeDocument{CheckIn: e.Range.CheckIn.UnixMilli(), CheckOut: e.Range.CheckOut.UnixMilli()},
			Status:    string(e.Status),
			Reference: e.Reference,
			CreatedAt: e.CreatedAt.UnixMilli(),
		})
	}
	return calendarDocument{ID: string(c.PropertyID), Entries: entries, Version: c.Version}
}

func (d calendarDocument) toAggregate() *domainavailability.Calendar {
	calendar := &domainavailability.Calendar{
		PropertyID: domainproperties.PropertyID(d.ID),
		Version:    d.Version,
	}
	for _, e := range d.Entries {
		calendar.Entries = append(calendar.Entries, domainavailability.Entry{
			Range: domainrange.DateRange{
				CheckIn:  timestampToTime(e.Range.CheckIn),
				CheckOut: timestampToTime(e.Range.CheckOut),
			},
			Status:    domainavailability.Status(e.Status),
			Reference: e.Reference,
			CreatedAt: timestampToTime(e.CreatedAt),
		})
	}
	return calendar
}
