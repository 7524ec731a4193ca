package handler // handler defines http handlers

import (
    "errors"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/JaiminV2r/quickcourt/internal/repository"
)

// validate is the shared request validator.  Request structs declare
// their constraints via struct tags.
var validate = validator.New()

// OwnerHandler bundles repositories for owners to manage venues,
// courts, weekly availability templates and the bookings made against
// them.
type OwnerHandler struct {
    VenueRepo        *repository.VenueRepo        // VenueRepo provides venue persistence
    CourtRepo        *repository.CourtRepo        // CourtRepo provides court persistence
    AvailabilityRepo *repository.AvailabilityRepo // AvailabilityRepo provides weekly template persistence
    BookingRepo      *repository.BookingRepo      // BookingRepo provides the booking ledger
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(venueRepo *repository.VenueRepo, courtRepo *repository.CourtRepo, availabilityRepo *repository.AvailabilityRepo, bookingRepo *repository.BookingRepo) *OwnerHandler {
    if venueRepo == nil || courtRepo == nil || availabilityRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewOwnerHandler")
    }
    return &OwnerHandler{
        VenueRepo:        venueRepo,
        CourtRepo:        courtRepo,
        AvailabilityRepo: availabilityRepo,
        BookingRepo:      bookingRepo,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  The JWT middleware stores the claim without asserting a
// type, so all the common JSON decodings are accepted here.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// parseWeekday maps a path segment onto time.Weekday.  Both full
// names ("monday") and numeric values ("1", 0=Sunday) are accepted.
func parseWeekday(raw string) (time.Weekday, bool) {
    switch strings.ToLower(strings.TrimSpace(raw)) {
    case "sunday", "0":
        return time.Sunday, true
    case "monday", "1":
        return time.Monday, true
    case "tuesday", "2":
        return time.Tuesday, true
    case "wednesday", "3":
        return time.Wednesday, true
    case "thursday", "4":
        return time.Thursday, true
    case "friday", "5":
        return time.Friday, true
    case "saturday", "6":
        return time.Saturday, true
    }
    return 0, false
}

// parseDate parses a YYYY-MM-DD query value in UTC.
func parseDate(raw string) (time.Time, bool) {
    d, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
    if err != nil {
        return time.Time{}, false
    }
    return d, true
}
