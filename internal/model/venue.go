package model

import "time"

// Venue status values.  New venues start as pending until their owner
// publishes them; inactive venues keep their history but no longer
// accept bookings.
const (
    VenueStatusPending  = "PENDING"
    VenueStatusActive   = "ACTIVE"
    VenueStatusInactive = "INACTIVE"
)

// Venue represents a sports facility owned by a user.  A venue can
// contain multiple courts.  Each venue belongs to one owner.  This
// struct corresponds to a row in the `venues` table.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the venue owner.
//  Name        – unique name of the venue per owner.
//  City        – city where the venue is located.
//  Description – optional free text shown to players.
//  Status      – PENDING, ACTIVE or INACTIVE.
//  CreatedAt   – timestamp when the venue was created.
//  UpdatedAt   – timestamp of last update.
type Venue struct {
    ID          uint64    // venues.id
    OwnerID     uint64    // venues.owner_id
    Name        string    // venues.name
    City        string    // venues.city
    Description *string   // venues.description (nullable)
    Status      string    // venues.status
    CreatedAt   time.Time // venues.created_at
    UpdatedAt   time.Time // venues.updated_at
}
