package uow

import (
	"context"

	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainreviews "github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Properties() domainproperties.Repository
	Availability() domainavailability.Repository
	Booking() domainbooking.Repository
	Reviews() domainreviews.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
