package dto

import (
	"time"

	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Currency: value.Currency}
}

type BookingSummary struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	Status     string    `json:"status"`
	BaseAmount MoneyDTO  `json:"base_amount"`
	ServiceFee MoneyDTO  `json:"service_fee"`
	Total      MoneyDTO  `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

func MapBookingSummary(b *domainbooking.Booking) BookingSummary {
	return BookingSummary{
		ID:         string(b.ID),
		PropertyID: string(b.PropertyID),
		CheckIn:    b.Range.CheckIn,
		CheckOut:   b.Range.CheckOut,
		Guests:     b.Guests,
		Status:     string(b.State),
		BaseAmount: MapMoney(b.Quote.BaseAmount),
		ServiceFee: MapMoney(b.Quote.ServiceFee),
		Total:      MapMoney(b.Quote.Total),
		CreatedAt:  b.CreatedAt,
	}
}
