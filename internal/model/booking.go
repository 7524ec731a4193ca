package model

import (
    "errors"
    "time"
)

// Booking status values.  PENDING and CONFIRMED bookings occupy
// capacity ("active"); CANCELLED and COMPLETED are historical.
// Allowed transitions: PENDING→CONFIRMED→COMPLETED and
// PENDING|CONFIRMED→CANCELLED.  Nothing leaves CANCELLED or
// COMPLETED.
const (
    BookingStatusPending   = "PENDING"
    BookingStatusConfirmed = "CONFIRMED"
    BookingStatusCancelled = "CANCELLED"
    BookingStatusCompleted = "COMPLETED"
)

// Booking lifecycle errors.  ErrAlreadyCancelled distinguishes the
// idempotence case (cancelling twice) from every other illegal
// transition, which surfaces as ErrInvalidTransition.
var (
    ErrAlreadyCancelled  = errors.New("booking already cancelled")
    ErrInvalidTransition = errors.New("invalid booking status transition")
)

// BookingActive reports whether a status still occupies court
// capacity and therefore participates in conflict checks.
func BookingActive(status string) bool {
    return status == BookingStatusPending || status == BookingStatusConfirmed
}

// CanCancel reports whether a booking in the given status may move to
// CANCELLED.  Cancelling an already-cancelled booking is flagged
// separately so callers can keep the operation idempotent from the
// client's point of view; COMPLETED is terminal.
func CanCancel(status string) error {
    switch status {
    case BookingStatusCancelled:
        return ErrAlreadyCancelled
    case BookingStatusCompleted:
        return ErrInvalidTransition
    }
    return nil
}

// CanConfirm reports whether a booking may move to CONFIRMED.  Only
// PENDING bookings qualify.
func CanConfirm(status string) error {
    if status != BookingStatusPending {
        return ErrInvalidTransition
    }
    return nil
}

// CanComplete reports whether a booking may move to COMPLETED: it
// must be CONFIRMED and its interval must have elapsed by now.
func CanComplete(status string, endAt, now time.Time) error {
    if status != BookingStatusConfirmed || endAt.After(now) {
        return ErrInvalidTransition
    }
    return nil
}

// Booking records a player's reservation of one or more courts for a
// concrete half-open time interval on a concrete date.  Bookings are
// never deleted, only status-transitioned.
//
// Fields:
//  ID          – primary key identifier.
//  Reference   – opaque UUID returned to clients.
//  UserID      – player who made the booking.
//  VenueID     – venue the booked courts belong to.
//  Sport       – sport the booking was made for.
//  Date        – calendar date of play (midnight UTC).
//  StartAt     – start instant (date + start time of day).
//  EndAt       – end instant, exclusive (must be after StartAt).
//  Status      – PENDING, CONFIRMED, CANCELLED or COMPLETED.
//  Subtotal    – price before fees, whole currency units.
//  PlatformFee – platform commission.
//  Tax         – tax on subtotal + fee.
//  TotalPrice  – subtotal + fee + tax.
//  Notes       – optional free text from the player.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
    ID          uint64    // bookings.id
    Reference   string    // bookings.reference
    UserID      uint64    // bookings.user_id
    VenueID     uint64    // bookings.venue_id
    Sport       string    // bookings.sport
    Date        time.Time // bookings.date
    StartAt     time.Time // bookings.start_at
    EndAt       time.Time // bookings.end_at
    Status      string    // bookings.status
    Subtotal    int64     // bookings.subtotal
    PlatformFee int64     // bookings.platform_fee
    Tax         int64     // bookings.tax
    TotalPrice  int64     // bookings.total_price
    Notes       *string   // bookings.notes (nullable)
    CreatedAt   time.Time // bookings.created_at
    UpdatedAt   time.Time // bookings.updated_at
}

// BookingCourt links a booking to an individual court together with
// the hourly rate that court was booked at.  A booking that reserves
// several courts at once produces one row per court, all sharing the
// booking's interval.
//
// Fields:
//  ID           – primary key identifier.
//  BookingID    – reference to the booking.
//  CourtID      – court reserved under the booking.
//  PricePerHour – hourly rate charged for this court.
//  CreatedAt    – creation timestamp.
type BookingCourt struct {
    ID           uint64    // booking_courts.id
    BookingID    uint64    // booking_courts.booking_id
    CourtID      uint64    // booking_courts.court_id
    PricePerHour int64     // booking_courts.price_per_hour
    CreatedAt    time.Time // booking_courts.created_at
}
