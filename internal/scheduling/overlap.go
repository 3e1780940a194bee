// Package scheduling holds the pure time-of-day primitives behind the
// session conflict checks: interval overlap, conflict scanning over a
// coach's booked slots, coach/package eligibility and availability windows.
package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrTimeOfDayFormat is returned when a time-of-day string cannot be parsed.
	ErrTimeOfDayFormat = errors.New("invalid time of day, expected HH:MM")
	// ErrInvalidInterval is returned when an interval's end is not after its start.
	ErrInvalidInterval = errors.New("interval end must be after start")
)

// TimeOfDay is minutes since midnight. Timezone-free on purpose: sessions are
// scheduled in the academy's local wall-clock time.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (seconds, if present, are ignored, so values
// read back from a TIME column also parse).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrTimeOfDayFormat, s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrTimeOfDayFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrTimeOfDayFormat, s)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// String renders the time back as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Interval is a half-open [Start,End) time range within a single calendar day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval parses and validates a start/end pair. End must be strictly
// after start.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, fmt.Errorf("start_time: %w", err)
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, fmt.Errorf("end_time: %w", err)
	}
	if e <= s {
		return Interval{}, fmt.Errorf("%w: %s .. %s", ErrInvalidInterval, s, e)
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open intervals on the same date intersect,
// using the standard rule s1 < e2 && e1 > s2. A session ending exactly when
// another starts does not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// BookedSlot is an existing session reduced to what conflict detection needs.
type BookedSlot struct {
	SessionID int64
	Interval  Interval
	Cancelled bool
}

// FindConflict scans a coach's booked slots for one date and returns the first
// slot overlapping the proposed interval, or nil. Cancelled slots never
// conflict; excludeID skips the session being edited against itself.
func FindConflict(proposed Interval, booked []BookedSlot, excludeID int64) *BookedSlot {
	for i := range booked {
		slot := &booked[i]
		if slot.Cancelled {
			continue
		}
		if excludeID != 0 && slot.SessionID == excludeID {
			continue
		}
		if proposed.Overlaps(slot.Interval) {
			return slot
		}
	}
	return nil
}
