package model

import "time"

// Court represents an individual playing surface within a venue.
// Courts belong to one venue and carry a sport type (e.g. badminton,
// tennis, futsal).  A court's identity is immutable once bookings
// reference it; deactivation is the only way to retire a court.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue containing this court.
//  Name      – unique court name per venue (e.g. "Court A").
//  Sport     – sport played on this court.
//  IsActive  – whether the court currently accepts bookings.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Court struct {
    ID        uint64    // courts.id
    VenueID   uint64    // courts.venue_id
    Name      string    // courts.name
    Sport     string    // courts.sport
    IsActive  bool      // courts.is_active
    CreatedAt time.Time // courts.created_at
    UpdatedAt time.Time // courts.updated_at
}
