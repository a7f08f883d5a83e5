package availability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

// ReservationSource lists the current reservation intervals for a property.
// Implementations typically read the booking store.
type ReservationSource interface {
	Reservations(ctx context.Context, id properties.PropertyID) ([]ReservationInterval, error)
}

// RepositorySource feeds a Refresher from the authoritative calendar store.
type RepositorySource struct {
	Repo Repository
}

func (s RepositorySource) Reservations(ctx context.Context, id properties.PropertyID) ([]ReservationInterval, error) {
	calendar, err := s.Repo.Calendar(ctx, id)
	if err != nil {
		return nil, err
	}
	return calendar.Intervals(), nil
}

// DefaultRefreshInterval matches the booking page's polling cadence: other
// guests may book concurrently, so a snapshot older than this is stale.
const DefaultRefreshInterval = 30 * time.Second

// Refresher keeps a periodically refreshed snapshot of one property's
// reservations. Refreshing is fire-and-forget: a failed fetch keeps the
// previous snapshot in place and there is no backoff, the next tick just
// tries again.
type Refresher struct {
	Source     ReservationSource
	PropertyID properties.PropertyID
	Interval   time.Duration
	Logger     *slog.Logger

	mu        sync.RWMutex
	snapshot  []ReservationInterval
	refreshed time.Time
}

// Snapshot returns the last successfully fetched intervals. An empty snapshot
// means everything is free.
func (r *Refresher) Snapshot() []ReservationInterval {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ReservationInterval, len(r.snapshot))
	copy(out, r.snapshot)
	return out
}

// RefreshedAt reports when the snapshot was last replaced.
func (r *Refresher) RefreshedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshed
}

// Refresh fetches once, replacing the snapshot only on success.
func (r *Refresher) Refresh(ctx context.Context) error {
	intervals, err := r.Source.Reservations(ctx, r.PropertyID)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("reservation refresh failed, keeping stale snapshot", "property_id", r.PropertyID, "error", err)
		}
		return err
	}
	r.mu.Lock()
	r.snapshot = intervals
	r.refreshed = time.Now().UTC()
	r.mu.Unlock()
	return nil
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	_ = r.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = r.Refresh(ctx)
		}
	}
}
