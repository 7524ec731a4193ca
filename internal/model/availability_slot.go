package model

import "time"

// AvailabilitySlot is one recurring priced window in a court's weekly
// template.  Slots are bound to a weekday, not a calendar date; times
// are stored as minutes since midnight so that no timezone arithmetic
// is needed when comparing against bookings on a concrete day.
//
// Invariant: for a given (court, weekday) the stored slots are
// pairwise non-overlapping, sorted by StartMin, and each satisfies
// StartMin < EndMin and PricePerHour > 0.  The engine enforces this
// before anything reaches the repository.
//
// Fields:
//  ID           – primary key identifier.
//  CourtID      – court this window belongs to.
//  Weekday      – day of week (time.Sunday .. time.Saturday).
//  StartMin     – window start, minutes since midnight (inclusive).
//  EndMin       – window end, minutes since midnight (exclusive).
//  PricePerHour – price in whole currency units per hour.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type AvailabilitySlot struct {
    ID           uint64       // availability_slots.id
    CourtID      uint64       // availability_slots.court_id
    Weekday      time.Weekday // availability_slots.weekday (0=Sunday)
    StartMin     int          // availability_slots.start_min
    EndMin       int          // availability_slots.end_min
    PricePerHour int64        // availability_slots.price_per_hour
    CreatedAt    time.Time    // availability_slots.created_at
    UpdatedAt    time.Time    // availability_slots.updated_at
}
