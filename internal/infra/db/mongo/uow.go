package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainreviews "github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	PropertiesRepo   domainproperties.Repository
	AvailabilityRepo domainavailability.Repository
	BookingRepo      domainbooking.Repository
	ReviewsRepo      domainreviews.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:           f.DB,
		session:      session,
		properties:   f.PropertiesRepo,
		availability: f.AvailabilityRepo,
		booking:      f.BookingRepo,
		reviews:      f.ReviewsRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	properties   domainproperties.Repository
	availability domainavailability.Repository
	booking      domainbooking.Repository
	reviews      domainreviews.Repository
}

func (u *Unit) Properties() domainproperties.Repository {
	return u.properties
}

func (u *Unit) Availability() domainavailability.Repository {
	return u.availability
}

func (u *Unit) Booking() domainbooking.Repository {
	return u.booking
}

func (u *Unit) Reviews() domainreviews.Repository {
	return u.reviews
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	if err := u.session.CommitTransaction(ctx); err != nil {
		return err
	}
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
