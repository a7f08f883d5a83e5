package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
)

type scriptedSource struct {
	mu        sync.Mutex
	responses [][]ReservationInterval
	errs      []error
	calls     int
}

func (s *scriptedSource) Reservations(ctx context.Context, id properties.PropertyID) ([]ReservationInterval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return nil, nil
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRefresherReplacesSnapshotOnSuccess(t *testing.T) {
	iv, err := NewInterval(day(10), day(12), StatusConfirmed)
	require.NoError(t, err)
	source := &scriptedSource{responses: [][]ReservationInterval{{iv}}}
	r := &Refresher{Source: source, PropertyID: "prop-1"}

	assert.Empty(t, r.Snapshot())
	require.NoError(t, r.Refresh(context.Background()))
	assert.Len(t, r.Snapshot(), 1)
	assert.False(t, r.RefreshedAt().IsZero())
}

func TestRefresherKeepsStaleSnapshotOnError(t *testing.T) {
	iv, err := NewInterval(day(10), day(12), StatusPending)
	require.NoError(t, err)
	source := &scriptedSource{
		responses: [][]ReservationInterval{{iv}, nil},
		errs:      []error{nil, errors.New("feed unavailable")},
	}
	r := &Refresher{Source: source, PropertyID: "prop-1"}

	require.NoError(t, r.Refresh(context.Background()))
	first := r.RefreshedAt()
	require.Len(t, r.Snapshot(), 1)

	// The failed fetch is swallowed by Run; Refresh surfaces it but the old
	// snapshot stays in place.
	assert.Error(t, r.Refresh(context.Background()))
	assert.Len(t, r.Snapshot(), 1)
	assert.Equal(t, first, r.RefreshedAt())
}

func TestRefresherSnapshotIsACopy(t *testing.T) {
	iv, err := NewInterval(day(10), day(12), StatusConfirmed)
	require.NoError(t, err)
	source := &scriptedSource{responses: [][]ReservationInterval{{iv}}}
	r := &Refresher{Source: source, PropertyID: "prop-1"}
	require.NoError(t, r.Refresh(context.Background()))

	snap := r.Snapshot()
	snap[0].Status = StatusBlocked
	assert.Equal(t, StatusConfirmed, r.Snapshot()[0].Status)
}

func TestRefresherRunStopsOnCancel(t *testing.T) {
	source := &scriptedSource{}
	r := &Refresher{Source: source, PropertyID: "prop-1", Interval: 5 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	assert.Eventually(t, func() bool { return source.callCount() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}
}

func TestRepositorySourceProjectsCalendar(t *testing.T) {
	cal := NewCalendar("prop-1")
	require.NoError(t, cal.Reserve(mustRange(t, day(10), day(13)), StatusConfirmed, "booking-1", time.Now()))
	source := RepositorySource{Repo: staticRepo{cal: cal}}

	intervals, err := source.Reservations(context.Background(), "prop-1")
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].Covers(day(12)))
}

type staticRepo struct {
	cal *Calendar
}

func (r staticRepo) Calendar(ctx context.Context, id properties.PropertyID) (*Calendar, error) {
	return r.cal, nil
}

func (r staticRepo) Save(ctx context.Context, calendar *Calendar) error {
	return nil
}
