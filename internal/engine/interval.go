package engine

import (
    "fmt"
    "sort"
    "time"
)

// MinutesPerDay bounds every time-of-day value handled by the engine.
const MinutesPerDay = 24 * 60

// Interval is a half-open [Start, End) range expressed in minutes
// since midnight.  The half-open convention means a booking ending at
// 18:00 does not conflict with one starting at 18:00.
type Interval struct {
    Start int
    End   int
}

// Overlaps reports whether two half-open intervals share any time.
func (iv Interval) Overlaps(other Interval) bool {
    return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether inner lies fully within iv.
func (iv Interval) Contains(inner Interval) bool {
    return iv.Start <= inner.Start && inner.End <= iv.End
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
    return iv.End - iv.Start
}

// Valid reports whether the interval is non-empty and lies within a
// single day.
func (iv Interval) Valid() bool {
    return iv.Start < iv.End && iv.Start >= 0 && iv.End <= MinutesPerDay
}

// String renders the interval as "HH:MM-HH:MM" for logs and errors.
func (iv Interval) String() string {
    return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}

// SortIntervals orders intervals by start time in place so iteration
// over them is deterministic.
func SortIntervals(ivs []Interval) {
    sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
}

// ParseClock converts a wall-clock string into minutes since
// midnight.  Both "HH:MM" and "HH:MM:SS" are accepted since MySQL
// TIME columns and JSON payloads differ; seconds are ignored.
func ParseClock(s string) (int, error) {
    var h, m, sec int
    if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
        if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
            return 0, fmt.Errorf("invalid clock value %q", s)
        }
    }
    if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
        return 0, fmt.Errorf("invalid clock value %q", s)
    }
    return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(min int) string {
    return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// MinuteOfDay returns the minutes elapsed since midnight for t in its
// own location.
func MinuteOfDay(t time.Time) int {
    return t.Hour()*60 + t.Minute()
}
