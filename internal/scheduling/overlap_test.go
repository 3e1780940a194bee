package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:30", 630, false},
		{"23:59", 1439, false},
		{"10:30:00", 630, false}, // TIME column read-back
		{" 09:15 ", 555, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"10", 0, true},
		{"ten:30", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrTimeOfDayFormat, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay(545).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
}

func TestNewIntervalRejectsInvertedRange(t *testing.T) {
	_, err := NewInterval("11:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval("10:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestOverlapsIsSymmetric(t *testing.T) {
	a := mustInterval(t, "10:00", "11:00")
	b := mustInterval(t, "10:30", "11:30")

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestOverlapsSelf(t *testing.T) {
	a := mustInterval(t, "10:00", "11:00")
	assert.True(t, a.Overlaps(a))
}

func TestTouchingBoundariesDoNotOverlap(t *testing.T) {
	a := mustInterval(t, "10:00", "11:00")
	b := mustInterval(t, "11:00", "12:00")

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestDisjointIntervalsDoNotOverlap(t *testing.T) {
	a := mustInterval(t, "08:00", "09:00")
	b := mustInterval(t, "14:00", "15:30")

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestContainmentOverlaps(t *testing.T) {
	outer := mustInterval(t, "09:00", "17:00")
	inner := mustInterval(t, "12:00", "13:00")

	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}

func TestFindConflict(t *testing.T) {
	booked := []BookedSlot{
		{SessionID: 1, Interval: mustInterval(t, "08:00", "09:00")},
		{SessionID: 2, Interval: mustInterval(t, "10:00", "11:00")},
		{SessionID: 3, Interval: mustInterval(t, "13:00", "14:00"), Cancelled: true},
	}

	// Overlapping second slot.
	hit := FindConflict(mustInterval(t, "10:30", "11:30"), booked, 0)
	require.NotNil(t, hit)
	assert.Equal(t, int64(2), hit.SessionID)

	// Touching its end boundary is fine.
	assert.Nil(t, FindConflict(mustInterval(t, "11:00", "12:00"), booked, 0))

	// A cancelled session never conflicts.
	assert.Nil(t, FindConflict(mustInterval(t, "13:00", "14:00"), booked, 0))

	// Editing session 2 against itself is not a conflict.
	assert.Nil(t, FindConflict(mustInterval(t, "10:15", "10:45"), booked, 2))

	// But editing session 2 into session 1's window still is.
	hit = FindConflict(mustInterval(t, "08:30", "10:30"), booked, 2)
	require.NotNil(t, hit)
	assert.Equal(t, int64(1), hit.SessionID)
}
