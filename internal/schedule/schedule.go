// Package schedule implements the time arithmetic behind performance
// conflict detection. All times are clock times within a single day,
// expressed as minutes since midnight.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinDurationMinutes is the shortest performance the scheduler accepts.
const MinDurationMinutes = 5

// DefaultChangeoverMinutes is applied when a performance does not specify
// its own changeover.
const DefaultChangeoverMinutes = 15

var errBadTime = errors.New("schedule: time must be HH:MM")

// ToMinutes parses an HH:MM clock time into minutes since midnight.
// Seconds, if present, are ignored.
func ToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0, errBadTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errBadTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errBadTime
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errBadTime
	}
	return h*60 + m, nil
}

// ToClock formats minutes since midnight back into HH:MM.
func ToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Slot is the half-open interval [Start, End) a performance occupies on a
// stage, changeover included.
type Slot struct {
	Start int
	End   int
}

// NewSlot computes the occupied interval for a performance starting at the
// given clock time. The end includes the changeover, so back-to-back sets
// where one starts exactly when the previous changeover finishes do not
// conflict.
func NewSlot(startTime string, durationMinutes, changeoverMinutes int) (Slot, error) {
	start, err := ToMinutes(startTime)
	if err != nil {
		return Slot{}, err
	}
	if durationMinutes < MinDurationMinutes {
		return Slot{}, fmt.Errorf("schedule: duration must be at least %d minutes", MinDurationMinutes)
	}
	if changeoverMinutes < 0 {
		changeoverMinutes = 0
	}
	return Slot{Start: start, End: start + durationMinutes + changeoverMinutes}, nil
}

// Overlaps reports whether two occupied intervals intersect. Touching
// endpoints (a.End == b.Start) are not an overlap.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start < o.End && o.Start < s.End
}
