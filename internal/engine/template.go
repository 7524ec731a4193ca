package engine

import (
    "fmt"
    "sort"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

// ValidateWeeklySlots checks a proposed slot list for one (court,
// weekday) pair and returns a copy sorted by start time.  Each entry
// must be a valid interval with a positive hourly price, and no two
// entries may overlap.  The returned error wraps ErrInvalidSlot or
// ErrOverlappingSlots so callers can branch with errors.Is while the
// message still names the offending window.
func ValidateWeeklySlots(slots []model.AvailabilitySlot) ([]model.AvailabilitySlot, error) {
    out := make([]model.AvailabilitySlot, len(slots))
    copy(out, slots)
    for _, s := range out {
        iv := SlotInterval(s)
        if !iv.Valid() {
            return nil, fmt.Errorf("%w: %s", ErrInvalidSlot, iv)
        }
        if s.PricePerHour <= 0 {
            return nil, fmt.Errorf("%w: %s has non-positive price %d", ErrInvalidSlot, iv, s.PricePerHour)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].StartMin < out[j].StartMin })
    for i := 1; i < len(out); i++ {
        prev, cur := SlotInterval(out[i-1]), SlotInterval(out[i])
        if prev.Overlaps(cur) {
            return nil, fmt.Errorf("%w: %s and %s", ErrOverlappingSlots, prev, cur)
        }
    }
    return out, nil
}

// SlotInterval extracts the minute interval of a template slot.
func SlotInterval(s model.AvailabilitySlot) Interval {
    return Interval{Start: s.StartMin, End: s.EndMin}
}
