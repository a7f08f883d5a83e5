package memory

import (
	"context"
	"errors"

	"github.com/flori92/lokali-platform-sub000/internal/app/uow"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainreviews "github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	PropertiesRepo   domainproperties.Repository
	AvailabilityRepo domainavailability.Repository
	BookingRepo      domainbooking.Repository
	ReviewsRepo      domainreviews.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided but
// the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.PropertiesRepo == nil || f.AvailabilityRepo == nil || f.BookingRepo == nil || f.ReviewsRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		properties:   f.PropertiesRepo,
		availability: f.AvailabilityRepo,
		booking:      f.BookingRepo,
		reviews:      f.ReviewsRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
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
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
