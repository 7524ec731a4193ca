// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in BookingEvent.Type.
const (
    EventBookingCreated   = "booking.created"
    EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking is created or
// cancelled. It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type BookingEvent struct {
    Type       string   `json:"type"`
    BookingID  uint64   `json:"booking_id"`
    Reference  string   `json:"reference"`
    UserID     uint64   `json:"user_id"`
    VenueID    uint64   `json:"venue_id"`
    VenueName  string   `json:"venue_name,omitempty"`
    Sport      string   `json:"sport"`
    Courts     []string `json:"courts,omitempty"`
    StartAt    string   `json:"start_at"`
    EndAt      string   `json:"end_at"`
    Status     string   `json:"status"`
    TotalPrice int64    `json:"total_price"`
    OccurredAt string   `json:"occurred_at"`
}
