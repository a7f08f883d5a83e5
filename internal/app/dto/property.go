package dto

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

type AddressDTO struct {
	Line1    string  `json:"line1"`
	District string  `json:"district"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}

type PropertyOverview struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Type          string     `json:"type"`
	Address       AddressDTO `json:"address"`
	Amenities     []string   `json:"amenities"`
	GuestsLimit   int        `json:"guests_limit"`
	UnitPrice     MoneyDTO   `json:"unit_price"`
	BillingPeriod string     `json:"billing_period"`
	MinimumStay   int        `json:"minimum_stay"`
	Rating        float64    `json:"rating"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PropertyCatalog struct {
	Items []PropertyOverview `json:"items"`
	Total int                `json:"total"`
}

func MapPropertyOverview(p *properties.Property) PropertyOverview {
	if p == nil {
		return PropertyOverview{}
	}
	return PropertyOverview{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Address: AddressDTO{
			Line1:    p.Address.Line1,
			District: p.Address.District,
			City:     p.Address.City,
			Country:  p.Address.Country,
			Lat:      p.Address.Lat,
			Lon:      p.Address.Lon,
		},
		Amenities:     append([]string(nil), p.Amenities...),
		GuestsLimit:   p.GuestsLimit,
		UnitPrice:     MoneyDTO{Amount: p.UnitPrice.Amount, Currency: p.UnitPrice.Currency},
		BillingPeriod: string(p.BillingPeriod),
		MinimumStay:   p.MinimumStay,
		Rating:        p.Rating,
		CreatedAt:     p.CreatedAt,
	}
}
