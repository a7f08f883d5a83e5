package pricing

import (
	"errors"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

var ErrInvalidAmount = errors.New("pricing: amount must be positive")

// Quote is the monetary outcome of a committed selection. It is derived, never
// persisted directly; bookings keep a snapshot of it.
type Quote struct {
	BaseAmount money.Money
	ServiceFee money.Money
	Total      money.Money
	Period     properties.BillingPeriod
}

// QuoteFor validates inputs before delegating to the raw calculators: the
// range must be a real stay and the unit price positive, so negative fees can
// never reach a booking.
func QuoteFor(property *properties.Property, dr daterange.DateRange) (Quote, error) {
	if err := dr.Validate(); err != nil {
		return Quote{}, err
	}
	if !property.UnitPrice.IsPositive() {
		return Quote{}, ErrInvalidAmount
	}
	base := CalculateTotalPrice(property.UnitPrice.Amount, dr.CheckIn, dr.CheckOut, property.BillingPeriod)
	if base <= 0 {
		return Quote{}, ErrInvalidAmount
	}
	breakdown := CalculateFees(base)
	currency := property.UnitPrice.Currency
	return Quote{
		BaseAmount: money.Money{Amount: breakdown.Amount, Currency: currency},
		ServiceFee: money.Money{Amount: breakdown.Fees, Currency: currency},
		Total:      money.Money{Amount: breakdown.Total, Currency: currency},
		Period:     property.BillingPeriod,
	}, nil
}
