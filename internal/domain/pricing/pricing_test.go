package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateTotalPrice(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice int64
		checkIn   time.Time
		checkOut  time.Time
		period    properties.BillingPeriod
		want      int64
	}{
		{"one night", 25000, day(10), day(11), properties.PerNight, 25000},
		{"three nights", 25000, day(10), day(13), properties.PerNight, 75000},
		{"inverted range mirrors", 25000, day(13), day(10), properties.PerNight, 75000},
		{"exactly thirty days is one month", 150000, day(1), time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), properties.PerMonth, 150000},
		{"thirty-one days rounds up to two months", 150000, day(1), time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC), properties.PerMonth, 300000},
		{"ten days still bills one month", 150000, day(1), day(11), properties.PerMonth, 150000},
		{"a single day bills one year", 900000, day(1), day(2), properties.PerYear, 900000},
		{"366 days bills two years", 900000, day(1), day(1).AddDate(1, 0, 1), properties.PerYear, 1800000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalPrice(tt.unitPrice, tt.checkIn, tt.checkOut, tt.period)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateTotalPriceMonotonicInStay(t *testing.T) {
	// Extending a stay never lowers the base amount, in any billing period.
	for _, period := range []properties.BillingPeriod{properties.PerNight, properties.PerMonth, properties.PerYear} {
		t.Run(string(period), func(t *testing.T) {
			for d2 := 2; d2 <= 12; d2++ {
				for d3 := d2; d3 <= 12; d3++ {
					shorter := CalculateTotalPrice(25000, day(1), day(d2), period)
					longer := CalculateTotalPrice(25000, day(1), day(d3), period)
					assert.GreaterOrEqual(t, longer, shorter, "stay to day %d priced below stay to day %d", d3, d2)
				}
			}
		})
	}
}

func TestCalculateFees(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		wantFees  int64
		wantTotal int64
	}{
		{"one night at 25000", 25000, 850, 25850},
		{"three nights at 25000", 75000, 2350, 77350},
		{"percent rounds up", 25001, 851, 25852},
		{"zero amount keeps the flat fee", 0, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateFees(tt.amount)
			assert.Equal(t, tt.amount, got.Amount)
			assert.Equal(t, tt.wantFees, got.Fees)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, got.Amount+got.Fees, got.Total)
		})
	}
}

func testProperty(t *testing.T, amount int64, period properties.BillingPeriod) *properties.Property {
	t.Helper()
	p, err := properties.New(properties.CreateParams{
		ID:            "prop-1",
		Owner:         "owner-1",
		Title:         "Villa Ganhi",
		Type:          properties.TypeGuestHouse,
		GuestsLimit:   4,
		UnitPrice:     money.Money{Amount: amount, Currency: money.DefaultCurrency},
		BillingPeriod: period,
		MinimumStay:   1,
		Now:           day(1),
	})
	require.NoError(t, err)
	return p
}

func TestQuoteForNightlyStay(t *testing.T) {
	p := testProperty(t, 25000, properties.PerNight)
	dr, err := daterange.New(day(10), day(13))
	require.NoError(t, err)

	quote, err := QuoteFor(p, dr)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), quote.BaseAmount.Amount)
	assert.Equal(t, int64(2350), quote.ServiceFee.Amount)
	assert.Equal(t, int64(77350), quote.Total.Amount)
	assert.Equal(t, money.DefaultCurrency, quote.Total.Currency)
	assert.Equal(t, properties.PerNight, quote.Period)
}

func TestQuoteForRejectsInvalidRange(t *testing.T) {
	p := testProperty(t, 25000, properties.PerNight)
	_, err := QuoteFor(p, daterange.DateRange{CheckIn: day(13), CheckOut: day(10)})
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestQuoteForRejectsNonPositivePrice(t *testing.T) {
	p := testProperty(t, 25000, properties.PerNight)
	p.UnitPrice.Amount = 0
	dr, err := daterange.New(day(10), day(13))
	require.NoError(t, err)

	_, err = QuoteFor(p, dr)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
