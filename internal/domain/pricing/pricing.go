// Package pricing turns a committed date range into a payable FCFA amount.
package pricing

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
)

const (
	// ServiceFeePercent is the platform's proportional surcharge.
	ServiceFeePercent = 3
	// ServiceFeeFlat is the flat per-booking surcharge in whole FCFA.
	ServiceFeeFlat = 100

	daysPerMonth = 30
	daysPerYear  = 365
)

// CalculateTotalPrice converts a stay into a base amount for the given
// billing period. Months and years use fixed 30/365-day approximations, not
// calendar arithmetic; billed amounts must stay consistent with historic
// bookings so the approximation is kept as-is.
//
// The day difference is taken as an absolute value, so an inverted range
// silently computes the same total as its mirror. Callers must validate
// checkOut > checkIn upstream; see Quote.
func CalculateTotalPrice(unitPrice int64, checkIn, checkOut time.Time, period properties.BillingPeriod) int64 {
	days := int64(dates.DaysBetween(checkIn, checkOut))
	switch period {
	case properties.PerMonth:
		return ceilDiv(days, daysPerMonth) * unitPrice
	case properties.PerYear:
		return ceilDiv(days, daysPerYear) * unitPrice
	default:
		return days * unitPrice
	}
}

// FeeBreakdown is the outcome of applying the platform surcharge.
type FeeBreakdown struct {
	Amount int64 `json:"amount"`
	Fees   int64 `json:"fees"`
	Total  int64 `json:"total"`
}

// CalculateFees overlays the service fee on a base amount:
// ceil(3 percent) plus a flat 100 FCFA. Non-positive amounts are not rejected
// here and propagate arithmetically; amount validation is the caller's job.
func CalculateFees(baseAmount int64) FeeBreakdown {
	fees := ceilDiv(baseAmount*ServiceFeePercent, 100) + ServiceFeeFlat
	return FeeBreakdown{
		Amount: baseAmount,
		Fees:   fees,
		Total:  baseAmount + fees,
	}
}

func ceilDiv(a, b int64) int64 {
	if a >= 0 {
		return (a + b - 1) / b
	}
	return a / b
}
