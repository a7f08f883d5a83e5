package ginserver

import (
	"errors"
	"net/http"

	bookingapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/booking"
	propertiesapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/properties"
	reviewsapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/reviews"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainpricing "github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainreviews "github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
	domainrange "github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
)

// statusFor translates domain failures into HTTP statuses. Anything
// unrecognized is a 500 so bugs never hide behind a 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainproperties.ErrPropertyNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound),
		errors.Is(err, domainreviews.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainavailability.ErrOverlappingRange):
		return http.StatusConflict
	case errors.Is(err, domainrange.ErrInvalidRange),
		errors.Is(err, domainbooking.ErrCheckInInPast),
		errors.Is(err, domainbooking.ErrInvalidGuests),
		errors.Is(err, domainbooking.ErrGuestRequired),
		errors.Is(err, domainbooking.ErrInvalidState),
		errors.Is(err, domainpricing.ErrInvalidAmount),
		errors.Is(err, domainreviews.ErrInvalidRating),
		errors.Is(err, domainreviews.ErrStayNotOver),
		errors.Is(err, bookingapp.ErrMinimumStay),
		errors.Is(err, bookingapp.ErrPropertyUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, bookingapp.ErrNotBookingOwner),
		errors.Is(err, bookingapp.ErrNotPropertyHost),
		errors.Is(err, propertiesapp.ErrNotPropertyOwner),
		errors.Is(err, reviewsapp.ErrNotBookingGuest):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
