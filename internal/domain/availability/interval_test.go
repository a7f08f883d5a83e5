package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"confirmed", "pending", "blocked"} {
		status, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), status)
	}

	for _, raw := range []string{"", "CONFIRMED", "cancelled", "free"} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrUnknownStatus, raw)
	}
}

func TestNewIntervalNormalizes(t *testing.T) {
	iv, err := NewInterval(
		time.Date(2024, time.June, 10, 15, 4, 5, 0, time.UTC),
		time.Date(2024, time.June, 12, 3, 0, 0, 0, time.UTC),
		StatusConfirmed,
	)
	require.NoError(t, err)
	assert.Equal(t, day(10), iv.Start)
	assert.Equal(t, 23, iv.End.Hour())
	assert.True(t, iv.Covers(day(10)))
	assert.True(t, iv.Covers(day(12)))
	assert.False(t, iv.Covers(day(13)))
}

func TestNewIntervalRejectsInvertedPeriod(t *testing.T) {
	_, err := NewInterval(day(12), day(10), StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestNewIntervalSingleDay(t *testing.T) {
	iv, err := NewInterval(day(10), day(10), StatusBlocked)
	require.NoError(t, err)
	assert.True(t, iv.Covers(day(10)))
	assert.False(t, iv.Covers(day(9)))
	assert.False(t, iv.Covers(day(11)))
}

func TestIntervalFromRecord(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		status   string
		wantErr  error
	}{
		{"plain dates", "2024-06-10", "2024-06-12", "confirmed", nil},
		{"rfc3339", "2024-06-10T14:00:00Z", "2024-06-12T10:00:00Z", "pending", nil},
		{"mixed formats", "2024-06-10", "2024-06-12T10:00:00Z", "blocked", nil},
		{"bad check-in", "June 10th", "2024-06-12", "confirmed", ErrMalformedDate},
		{"bad check-out", "2024-06-10", "", "confirmed", ErrMalformedDate},
		{"bad status", "2024-06-10", "2024-06-12", "maybe", ErrUnknownStatus},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			iv, err := IntervalFromRecord(tc.checkIn, tc.checkOut, tc.status)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, day(10), iv.Start)
			assert.Equal(t, Status(tc.status), iv.Status)
		})
	}
}
