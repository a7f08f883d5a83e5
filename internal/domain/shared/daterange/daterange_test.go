package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestNewNormalizesAndValidates(t *testing.T) {
	dr, err := New(time.Date(2024, time.June, 1, 14, 30, 0, 0, time.UTC), time.Date(2024, time.June, 4, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, day(1), dr.CheckIn)
	assert.Equal(t, day(4), dr.CheckOut)
	assert.Equal(t, 3, dr.Nights())

	_, err = New(day(4), day(4))
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = New(day(4), day(1))
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = New(time.Time{}, day(4))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlapsHalfOpen(t *testing.T) {
	a, err := New(day(1), day(5))
	require.NoError(t, err)
	b, err := New(day(5), day(8))
	require.NoError(t, err)
	// Check-out day is not an occupied night, so back-to-back ranges in the
	// same stay record do not collide with each other.
	assert.False(t, a.Overlaps(b))

	c, err := New(day(4), day(6))
	require.NoError(t, err)
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(a))
}

func TestContainsDayAndDays(t *testing.T) {
	dr, err := New(day(1), day(4))
	require.NoError(t, err)
	assert.True(t, dr.ContainsDay(day(1)))
	assert.True(t, dr.ContainsDay(day(3)))
	assert.False(t, dr.ContainsDay(day(4)), "check-out day is free")

	var visited []time.Time
	dr.Days(func(d time.Time) bool {
		visited = append(visited, d)
		return true
	})
	assert.Equal(t, []time.Time{day(1), day(2), day(3)}, visited)

	count := 0
	dr.Days(func(time.Time) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count, "iteration stops when fn returns false")
}
