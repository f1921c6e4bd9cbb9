package reservation

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for reservation dates.
const DateLayout = "2006-01-02"

// TimeOfDay is a clock time expressed as minutes since midnight.
// Reservations use it together with a date to form a half-open
// interval [Start, End) on that date.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Microseconds returns the value as microseconds since midnight,
// matching the representation of a Postgres TIME column.
func (t TimeOfDay) Microseconds() int64 {
	return int64(t) * int64(time.Minute/time.Microsecond)
}

// TimeOfDayFromMicroseconds converts a Postgres TIME value back.
func TimeOfDayFromMicroseconds(us int64) TimeOfDay {
	return TimeOfDay(us / int64(time.Minute/time.Microsecond))
}

// Interval is a half-open [Start, End) time range within a single day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Valid reports whether the interval is non-empty.
func (i Interval) Valid() bool {
	return i.Start < i.End
}

// Overlaps is the single authoritative overlap predicate. Two half-open
// intervals intersect iff each starts before the other ends; intervals
// that merely touch at a boundary do not overlap. It covers all three
// overlap shapes (either containing the other, or partial overlap on
// either edge) symmetrically.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}
