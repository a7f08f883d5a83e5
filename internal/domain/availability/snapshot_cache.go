package availability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

// SnapshotCache serves reservation snapshots for the polling availability
// feed. Each property gets its own Refresher, started on first request, so
// repeated polls within the refresh interval never hit the store.
type SnapshotCache struct {
	Source   ReservationSource
	Interval time.Duration
	Logger   *slog.Logger

	mu         sync.Mutex
	base       context.Context
	refreshers map[properties.PropertyID]*Refresher
}

// Start fixes the lifetime of the background refresh loops. Without it the
// cache still works but refreshes synchronously on every lookup of a
// never-fetched property.
func (c *SnapshotCache) Start(ctx context.Context) {
	c.mu.Lock()
	c.base = ctx
	c.mu.Unlock()
}

// Intervals returns the cached snapshot for id, fetching once when the
// property has never been seen. A stale snapshot is still served; only a
// property whose first fetch fails surfaces the error.
func (c *SnapshotCache) Intervals(ctx context.Context, id properties.PropertyID) ([]ReservationInterval, error) {
	c.mu.Lock()
	r, ok := c.refreshers[id]
	if !ok {
		r = &Refresher{Source: c.Source, PropertyID: id, Interval: c.Interval, Logger: c.Logger}
		if c.refreshers == nil {
			c.refreshers = make(map[properties.PropertyID]*Refresher)
		}
		c.refreshers[id] = r
		if c.base != nil {
			go func() { _ = r.Run(c.base) }()
		}
	}
	c.mu.Unlock()

	if r.RefreshedAt().IsZero() {
		if err := r.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return r.Snapshot(), nil
}
