package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainavailability "github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	domainbooking "github.com/flori92/lokali-platform-sub000/internal/domain/booking"
	domainproperties "github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	domainreviews "github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
)

// PropertyRepository is an in-memory implementation for local runs and tests.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperties.PropertyID]*domainproperties.Property
}

// NewPropertyRepository builds an empty repository.
func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{
		items: make(map[domainproperties.PropertyID]*domainproperties.Property),
	}
}

// ByID returns a property or ErrPropertyNotFound.
func (r *PropertyRepository) ByID(ctx context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.items[id]
	if !ok {
		return nil, domainproperties.ErrPropertyNotFound
	}
	return property, nil
}

// Save stores/updates a property entry.
func (r *PropertyRepository) Save(ctx context.Context, property *domainproperties.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	property.Version++
	r.items[property.ID] = property
	return nil
}

// Search returns properties that satisfy the provided filters.
func (r *PropertyRepository) Search(ctx context.Context, params domainproperties.SearchParams) (domainproperties.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainproperties.Property, 0, len(r.items))
	for _, property := range r.items {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return domainproperties.SearchResult{}, ctx.Err()
			default:
			}
		}

		if opts.OnlyPublished && property.State != domainproperties.PropertyPublished {
			continue
		}
		if opts.Owner != "" && property.Owner != opts.Owner {
			continue
		}
		if len(opts.States) > 0 && !stateIncluded(property.State, opts.States) {
			continue
		}
		if opts.City != "" && !strings.EqualFold(property.Address.City, opts.City) {
			continue
		}
		if opts.District != "" && !strings.EqualFold(property.Address.District, opts.District) {
			continue
		}
		if len(opts.Types) > 0 && !typeIncluded(property.Type, opts.Types) {
			continue
		}
		if opts.MinGuests > 0 && property.GuestsLimit < opts.MinGuests {
			continue
		}
		if opts.PriceMin > 0 && property.UnitPrice.Amount < opts.PriceMin {
			continue
		}
		if opts.PriceMax > 0 && property.UnitPrice.Amount > opts.PriceMax {
			continue
		}
		matches = append(matches, property)
	}

	sort.Slice(matches, func(i, j int) bool {
		switch opts.Sort {
		case domainproperties.SortByPriceAsc:
			if matches[i].UnitPrice.Amount == matches[j].UnitPrice.Amount {
				return matches[i].Rating > matches[j].Rating
			}
			return matches[i].UnitPrice.Amount < matches[j].UnitPrice.Amount
		case domainproperties.SortByPriceDesc:
			if matches[i].UnitPrice.Amount == matches[j].UnitPrice.Amount {
				return matches[i].Rating > matches[j].Rating
			}
			return matches[i].UnitPrice.Amount > matches[j].UnitPrice.Amount
		case domainproperties.SortByRating:
			if matches[i].Rating == matches[j].Rating {
				return matches[i].UnitPrice.Amount < matches[j].UnitPrice.Amount
			}
			return matches[i].Rating > matches[j].Rating
		default:
			if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
				return matches[i].ID < matches[j].ID
			}
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
	})

	total := len(matches)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return domainproperties.SearchResult{
		Items: matches[start:end],
		Total: total,
	}, nil
}

func stateIncluded(state domainproperties.PropertyState, allowed []domainproperties.PropertyState) bool {
	for _, candidate := range allowed {
		if state == candidate {
			return true
		}
	}
	return false
}

func typeIncluded(value domainproperties.PropertyType, allowed []domainproperties.PropertyType) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

// CalendarRepository keeps occupancy calendars in memory.
type CalendarRepository struct {
	mu        sync.RWMutex
	calendars map[domainproperties.PropertyID]*domainavailability.Calendar
}

// NewCalendarRepository returns a repository initialized with empty calendars.
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{
		calendars: make(map[domainproperties.PropertyID]*domainavailability.Calendar),
	}
}

// Calendar retrieves a property's calendar, lazily creating it.
func (r *CalendarRepository) Calendar(ctx context.Context, id domainproperties.PropertyID) (*domainavailability.Calendar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cal, ok := r.calendars[id]; ok {
		return cal, nil
	}
	cal := domainavailability.NewCalendar(id)
	r.calendars[id] = cal
	return cal, nil
}

// Save persists a calendar snapshot.
func (r *CalendarRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	calendar.Version++
	r.calendars[calendar.PropertyID] = calendar
	return nil
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

// NewBookingRepository builds an empty booking repo.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

// ByID fetches a booking.
func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return booking, nil
}

// Save stores the current booking state.
func (r *BookingRepository) Save(ctx context.Context, booking *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.Version++
	r.items[booking.ID] = booking
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool {
		return b.GuestID == strings.TrimSpace(guestID)
	})
}

func (r *BookingRepository) ListByProperty(ctx context.Context, propertyID domainproperties.PropertyID) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool {
		return b.PropertyID == propertyID
	})
}

func (r *BookingRepository) list(match func(*domainbooking.Booking) bool) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainbooking.Booking, 0)
	for _, booking := range r.items {
		if match(booking) {
			matches = append(matches, booking)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

// ReviewRepository is a lightweight in-memory review store.
type ReviewRepository struct {
	mu    sync.RWMutex
	items map[string]*domainreviews.Review
}

// NewReviewRepository builds an empty review store.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{items: make(map[string]*domainreviews.Review)}
}

// ByBooking locates a review using booking and author identifiers.
func (r *ReviewRepository) ByBooking(ctx context.Context, bookingID domainbooking.BookingID, authorID string) (*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := bookingReviewKey(bookingID, authorID)
	if review, ok := r.items[key]; ok {
		return review, nil
	}
	return nil, domainreviews.ErrNotFound
}

// ListByProperty returns the newest reviews for a property.
func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID domainproperties.PropertyID, limit, offset int) ([]*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreviews.Review, 0)
	for _, review := range r.items {
		if review.PropertyID == propertyID {
			matches = append(matches, review)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := len(matches)
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return matches[offset:end], nil
}

// Save writes the review entry.
func (r *ReviewRepository) Save(ctx context.Context, review *domainreviews.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := bookingReviewKey(review.BookingID, review.AuthorID)
	r.items[key] = review
	return nil
}

func bookingReviewKey(bookingID domainbooking.BookingID, authorID string) string {
	return string(bookingID) + ":" + authorID
}
