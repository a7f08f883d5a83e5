package dto

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/pricing"
)

type PriceQuote struct {
	PropertyID    string    `json:"property_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	BillingPeriod string    `json:"billing_period"`
	BaseAmount    MoneyDTO  `json:"base_amount"`
	ServiceFee    MoneyDTO  `json:"service_fee"`
	Total         MoneyDTO  `json:"total"`
}

func MapQuote(propertyID string, checkIn, checkOut time.Time, q pricing.Quote) PriceQuote {
	return PriceQuote{
		PropertyID:    propertyID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		BillingPeriod: string(q.Period),
		BaseAmount:    MapMoney(q.BaseAmount),
		ServiceFee:    MapMoney(q.ServiceFee),
		Total:         MapMoney(q.Total),
	}
}
