package engine

import (
    "github.com/JaiminV2r/quickcourt/internal/model"
)

// BusyIntervals converts active bookings for a single court and date
// into minute-of-day intervals.  Cancelled and completed bookings must
// already be filtered out by the caller (the ledger's "active" query
// does this).  An EndAt falling exactly on the following midnight maps
// to the end of day rather than zero.
func BusyIntervals(bookings []model.Booking) []Interval {
    out := make([]Interval, 0, len(bookings))
    for _, b := range bookings {
        end := MinuteOfDay(b.EndAt)
        if end == 0 {
            end = MinutesPerDay
        }
        out = append(out, Interval{Start: MinuteOfDay(b.StartAt), End: end})
    }
    SortIntervals(out)
    return out
}

// CheckBookable decides whether a candidate interval can be booked on
// a court given the court's template slots for the day's weekday and
// the busy intervals of its active bookings.  On success it returns
// the template slot containing the candidate, which carries the
// hourly rate needed for pricing.
//
// This is the single source of truth for bookability: the slot option
// generator uses it on the read path and the booking transaction
// re-runs it at commit time under the court lock.
func CheckBookable(template []model.AvailabilitySlot, busy []Interval, candidate Interval) (model.AvailabilitySlot, error) {
    if !candidate.Valid() {
        return model.AvailabilitySlot{}, ErrInvalidSlot
    }
    matched := false
    var match model.AvailabilitySlot
    for _, s := range template {
        if SlotInterval(s).Contains(candidate) {
            match = s
            matched = true
            break
        }
    }
    if !matched {
        return model.AvailabilitySlot{}, ErrNotWithinAvailability
    }
    for _, b := range busy {
        if b.Overlaps(candidate) {
            return model.AvailabilitySlot{}, ErrSlotAlreadyBooked
        }
    }
    return match, nil
}
