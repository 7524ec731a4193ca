// Package engine implements the availability and booking conflict
// logic: interval math, weekly template validation, the conflict
// detector shared by slot listing and booking creation, slot option
// generation and pricing.  Everything in this package is pure; the
// repository layer supplies state and the handler layer supplies the
// transaction boundary.
package engine

import "errors"

// ErrInvalidSlot is returned for a malformed template entry or
// candidate interval: start >= end, a bound outside the day, or a
// non-positive hourly price.  Handlers should translate this into an
// HTTP 422 response.
var ErrInvalidSlot = errors.New("invalid slot")

// ErrOverlappingSlots is returned when two entries for the same
// court and weekday overlap.  Overlapping entries are rejected, never
// merged.
var ErrOverlappingSlots = errors.New("overlapping slots")

// ErrNotWithinAvailability is returned when a requested interval does
// not fit inside any published template window for that court and
// weekday.  Surfaced to the player as "no such slot".
var ErrNotWithinAvailability = errors.New("not within availability")

// ErrSlotAlreadyBooked is returned when a requested interval overlaps
// an existing active booking.  The client is expected to re-fetch the
// options and pick a different time; the engine never retries.
var ErrSlotAlreadyBooked = errors.New("slot already booked")
