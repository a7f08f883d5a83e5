package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCacheServesCachedIntervals(t *testing.T) {
	iv, err := NewInterval(day(10), day(12), StatusConfirmed)
	require.NoError(t, err)
	source := &scriptedSource{responses: [][]ReservationInterval{{iv}}}
	cache := &SnapshotCache{Source: source}

	intervals, err := cache.Intervals(context.Background(), "prop-1")
	require.NoError(t, err)
	require.Len(t, intervals, 1)

	// Without a started background loop, repeat lookups serve the snapshot
	// without touching the source again.
	_, err = cache.Intervals(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, 1, source.callCount())
}

func TestSnapshotCacheSurfacesFirstFetchFailure(t *testing.T) {
	source := &scriptedSource{errs: []error{errors.New("store down")}}
	cache := &SnapshotCache{Source: source}

	_, err := cache.Intervals(context.Background(), "prop-1")
	assert.Error(t, err)

	// The next lookup retries instead of caching the failure.
	_, err = cache.Intervals(context.Background(), "prop-1")
	require.NoError(t, err)
}

func TestSnapshotCacheRefreshesInBackground(t *testing.T) {
	source := &scriptedSource{}
	cache := &SnapshotCache{Source: source, Interval: 5 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cache.Start(ctx)

	_, err := cache.Intervals(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return source.callCount() >= 3 }, time.Second, time.Millisecond)
}

func TestSnapshotCacheKeepsPropertiesApart(t *testing.T) {
	iv, err := NewInterval(day(10), day(12), StatusConfirmed)
	require.NoError(t, err)
	source := &scriptedSource{responses: [][]ReservationInterval{{iv}, nil}}
	cache := &SnapshotCache{Source: source}

	first, err := cache.Intervals(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := cache.Intervals(context.Background(), "prop-2")
	require.NoError(t, err)
	assert.Empty(t, second, "another property's snapshot is fetched separately")
	assert.Equal(t, 2, source.callCount())
}
