package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "github.com/flori92/lokali-platform-sub000/internal/app/outbox"
	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainrange "github.com/flori92/lokali-platform-sub000/internal/domain/shared/daterange"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/money"
	"github.com/flori92/lokali-platform-sub000/internal/infra/storage/memory"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

// recordingOutbox captures records so tests can assert on published events.
type recordingOutbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
}

func (o *recordingOutbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *recordingOutbox) Flush(ctx context.Context) error { return nil }

func (o *recordingOutbox) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.records))
	for _, r := range o.records {
		out = append(out, r.Name)
	}
	return out
}

type fixture struct {
	handler    *RequestBookingHandler
	properties *memory.PropertyRepository
	calendars  *memory.CalendarRepository
	bookings   *memory.BookingRepository
	outbox     *recordingOutbox
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	props := memory.NewPropertyRepository()
	cals := memory.NewCalendarRepository()
	books := memory.NewBookingRepository()
	box := &recordingOutbox{}
	factory := memory.Factory{
		PropertiesRepo:   props,
		AvailabilityRepo: cals,
		BookingRepo:      books,
		ReviewsRepo:      memory.NewReviewRepository(),
	}
	handler := &RequestBookingHandler{
		UoWFactory: factory,
		Outbox:     box,
		NowFunc:    func() time.Time { return day(1) },
	}
	return &fixture{handler: handler, properties: props, calendars: cals, bookings: books, outbox: box}
}

func (f *fixture) seedProperty(t *testing.T, propertyType domainproperties.PropertyType, minimumStay int, publish bool) *domainproperties.Property {
	t.Helper()
	p, err := domainproperties.New(domainproperties.CreateParams{
		ID:            "prop-1",
		Owner:         "owner-1",
		Title:         "Maison Fidjrossè",
		Type:          propertyType,
		Address:       domainproperties.Address{Line1: "Rue 104", District: "Fidjrossè", City: "Cotonou", Country: "BJ"},
		GuestsLimit:   4,
		UnitPrice:     money.FCFA(25000),
		BillingPeriod: domainproperties.PerNight,
		MinimumStay:   minimumStay,
		Now:           day(1),
	})
	require.NoError(t, err)
	if publish {
		require.NoError(t, p.Publish(day(1)))
	}
	p.ClearEvents()
	require.NoError(t, f.properties.Save(context.Background(), p))
	return p
}

func command(id string, from, to int) RequestBookingCommand {
	return RequestBookingCommand{
		CommandID:  id,
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		CheckIn:    day(from),
		CheckOut:   day(to),
		Guests:     2,
	}
}

func TestRequestBookingSuccess(t *testing.T) {
	f := newFixture(t)
	f.seedProperty(t, domainproperties.TypeGuestHouse, 1, true)

	result, err := f.handler.Handle(context.Background(), command("bk-1", 10, 13))
	require.NoError(t, err)
	assert.Equal(t, "bk-1", result.BookingID)
	assert.Equal(t, int64(75000), result.Quote.BaseAmount)
	assert.Equal(t, int64(2350), result.Quote.ServiceFee)
	assert.Equal(t, int64(77350), result.Quote.Total)
	assert.Equal(t, money.DefaultCurrency, result.Quote.Currency)

	bk, err := f.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatePending, bk.State)
	assert.Equal(t, int64(77350), bk.Quote.Total.Amount, "the quote is frozen on the booking")

	calendar, err := f.calendars.Calendar(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.False(t, calendar.CanReserve(mustRange(t, 10, 13)), "the reserved range occupies the calendar")

	assert.Equal(t, []string{"booking.requested", "calendar.range_reserved"}, f.outbox.names())
}

func TestRequestBookingConflict(t *testing.T) {
	f := newFixture(t)
	f.seedProperty(t, domainproperties.TypeGuestHouse, 1, true)

	_, err := f.handler.Handle(context.Background(), command("bk-1", 10, 13))
	require.NoError(t, err)

	_, err = f.handler.Handle(context.Background(), command("bk-2", 12, 15))
	assert.ErrorIs(t, err, domainavailability.ErrOverlappingRange)
	assert.Contains(t, f.outbox.names(), "calendar.double_booking_prevented")

	_, err = f.bookings.ByID(context.Background(), "bk-2")
	assert.ErrorIs(t, err, domainbooking.ErrBookingNotFound)
}

func TestRequestBookingBackToBackStays(t *testing.T) {
	f := newFixture(t)
	f.seedProperty(t, domainproperties.TypeGuestHouse, 1, true)

	_, err := f.handler.Handle(context.Background(), command("bk-1", 10, 13))
	require.NoError(t, err)

	// Checking in on the previous guest's check-out day is not a conflict.
	_, err = f.handler.Handle(context.Background(), command("bk-2", 13, 16))
	require.NoError(t, err)
}

func TestRequestBookingRejectsUnpublishedProperty(t *testing.T) {
	f := newFixture(t)
	f.seedProperty(t, domainproperties.TypeGuestHouse, 1, false)

	_, err := f.handler.Handle(context.Background(), command("bk-1", 10, 13))
	assert.ErrorIs(t, err, ErrPropertyUnavailable)
}

func TestRequestBookingRejectsPastCheckIn(t *testing.T) {
	f := newFixture(t)
	f.seedProperty(t, domainproperties.TypeGuestHouse, 1, true)
	f.handler.NowFunc = func() time.Time { return day(20) }

	_, err := f.handler.Handle(context.Background(), command("bk-1", 10, 13))
	assert.ErrorIs(t, err, domainbooking.ErrCheckInInPast)
}

func TestRequestBookingEnforcesMinimumStay(t *testing.T) {
	f := newFixture(t)
	f.seedProperty(t, domainproperties.TypeGuestHouse, 3, true)

	_, err := f.handler.Handle(context.Background(), command("bk-1", 10, 11))
	assert.ErrorIs(t, err, ErrMinimumStay)

	_, err = f.handler.Handle(context.Background(), command("bk-2", 10, 13))
	require.NoError(t, err)
}

func TestRequestBookingMinimumStayInMonths(t *testing.T) {
	f := newFixture(t)
	f.seedProperty(t, domainproperties.TypeLongTermRental, 1, true)

	// Twenty nights is under one whole month for a long-term rental.
	_, err := f.handler.Handle(context.Background(), command("bk-1", 5, 25))
	assert.ErrorIs(t, err, ErrMinimumStay)

	cmd := command("bk-2", 5, 25)
	cmd.CheckOut = time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC)
	_, err = f.handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
}

func TestRequestBookingRequiresUnitOfWork(t *testing.T) {
	handler := &RequestBookingHandler{Outbox: &recordingOutbox{}}
	_, err := handler.Handle(context.Background(), command("bk-1", 10, 13))
	assert.ErrorIs(t, err, ErrUnitOfWorkRequired)
}

func mustRange(t *testing.T, from, to int) domainrange.DateRange {
	t.Helper()
	dr, err := domainrange.New(day(from), day(to))
	require.NoError(t, err)
	return dr
}
