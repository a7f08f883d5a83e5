package properties

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/events"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

var (
	ErrTitleRequired    = errors.New("properties: title is required")
	ErrAddressRequired  = errors.New("properties: address must be provided when publishing")
	ErrInvalidUnitPrice = errors.New("properties: unit price must be positive")
	ErrInvalidMinStay   = errors.New("properties: minimum stay must be at least 1")
	ErrInvalidState     = errors.New("properties: invalid state transition")
	ErrUnknownType      = errors.New("properties: unknown property type")
	ErrUnknownPeriod    = errors.New("properties: unknown billing period")
	ErrPropertyNotFound = errors.New("properties: not found")
)

type PropertyID string
type OwnerID string

// PropertyType distinguishes short-stay guest houses from long-term rentals.
// It also decides how MinimumStay is read: nights for guest houses, whole
// months for long-term rentals.
type PropertyType string

const (
	TypeGuestHouse     PropertyType = "guest-house"
	TypeLongTermRental PropertyType = "long-term-rental"
)

func ParsePropertyType(raw string) (PropertyType, error) {
	switch PropertyType(raw) {
	case TypeGuestHouse, TypeLongTermRental:
		return PropertyType(raw), nil
	default:
		return "", ErrUnknownType
	}
}

// BillingPeriod is the unit the property's price is quoted in.
type BillingPeriod string

const (
	PerNight BillingPeriod = "night"
	PerMonth BillingPeriod = "month"
	PerYear  BillingPeriod = "year"
)

func ParseBillingPeriod(raw string) (BillingPeriod, error) {
	switch BillingPeriod(raw) {
	case PerNight, PerMonth, PerYear:
		return BillingPeriod(raw), nil
	default:
		return "", ErrUnknownPeriod
	}
}

type PropertyState string

const (
	PropertyDraft     PropertyState = "DRAFT"
	PropertyPublished PropertyState = "PUBLISHED"
	PropertySuspended PropertyState = "SUSPENDED"
)

type Address struct {
	Line1    string
	District string
	City     string
	Country  string
	Lat      float64
	Lon      float64
}

func (a Address) Valid() bool {
	return strings.TrimSpace(a.Line1) != "" && strings.TrimSpace(a.City) != ""
}

type Property struct {
	ID            PropertyID
	Owner         OwnerID
	Title         string
	Description   string
	Type          PropertyType
	Address       Address
	Amenities     []string
	GuestsLimit   int
	UnitPrice     money.Money
	BillingPeriod BillingPeriod
	// MinimumStay is one number whose unit depends on Type: nights for
	// guest houses, months for long-term rentals. Always interpret it
	// through the stay unit derived from Type, never as a bare count.
	MinimumStay int
	State       PropertyState
	Rating      float64
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Save(ctx context.Context, property *Property) error
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type CreateParams struct {
	ID            PropertyID
	Owner         OwnerID
	Title         string
	Description   string
	Type          PropertyType
	Address       Address
	Amenities     []string
	GuestsLimit   int
	UnitPrice     money.Money
	BillingPeriod BillingPeriod
	MinimumStay   int
	Now           time.Time
}

func New(params CreateParams) (*Property, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("properties: id is required")
	}
	if strings.TrimSpace(string(params.Owner)) == "" {
		return nil, errors.New("properties: owner is required")
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if _, err := ParsePropertyType(string(params.Type)); err != nil {
		return nil, err
	}
	if _, err := ParseBillingPeriod(string(params.BillingPeriod)); err != nil {
		return nil, err
	}
	if !params.UnitPrice.IsPositive() {
		return nil, ErrInvalidUnitPrice
	}
	if params.MinimumStay < 1 {
		return nil, ErrInvalidMinStay
	}
	guests := params.GuestsLimit
	if guests < 1 {
		guests = 1
	}
	now := params.Now.UTC()
	p := &Property{
		ID:            params.ID,
		Owner:         params.Owner,
		Title:         strings.TrimSpace(params.Title),
		Description:   strings.TrimSpace(params.Description),
		Type:          params.Type,
		Address:       params.Address,
		Amenities:     append([]string(nil), params.Amenities...),
		GuestsLimit:   guests,
		UnitPrice:     params.UnitPrice,
		BillingPeriod: params.BillingPeriod,
		MinimumStay:   params.MinimumStay,
		State:         PropertyDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.Record(PropertyCreated{PropertyID: string(p.ID), OwnerID: string(p.Owner), At: now})
	return p, nil
}

func (p *Property) Publish(now time.Time) error {
	if p.State == PropertyPublished {
		return nil
	}
	if !p.Address.Valid() {
		return ErrAddressRequired
	}
	p.State = PropertyPublished
	p.UpdatedAt = now.UTC()
	p.Record(PropertyPublishedEvent{PropertyID: string(p.ID), At: p.UpdatedAt})
	return nil
}

func (p *Property) Suspend(reason string, now time.Time) error {
	if p.State != PropertyPublished {
		return ErrInvalidState
	}
	p.State = PropertySuspended
	p.UpdatedAt = now.UTC()
	p.Record(PropertySuspendedEvent{PropertyID: string(p.ID), Reason: reason, At: p.UpdatedAt})
	return nil
}

func (p *Property) UpdatePricing(unitPrice money.Money, period BillingPeriod, minimumStay int, now time.Time) error {
	if !unitPrice.IsPositive() {
		return ErrInvalidUnitPrice
	}
	if _, err := ParseBillingPeriod(string(period)); err != nil {
		return err
	}
	if minimumStay < 1 {
		return ErrInvalidMinStay
	}
	p.UnitPrice = unitPrice
	p.BillingPeriod = period
	p.MinimumStay = minimumStay
	p.UpdatedAt = now.UTC()
	p.Record(PropertyUpdated{PropertyID: string(p.ID), At: p.UpdatedAt})
	return nil
}
