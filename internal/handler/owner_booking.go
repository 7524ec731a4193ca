package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/JaiminV2r/quickcourt/internal/model"
    "github.com/JaiminV2r/quickcourt/internal/repository"
)

// ListVenueBookings handles GET /v1/venues/:id/bookings for the venue
// owner.  An optional date=YYYY-MM-DD query restricts the list to one
// day; without it the full ledger of the venue is returned ordered by
// start time.
func (h *OwnerHandler) ListVenueBookings(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    var date *time.Time
    if raw := c.QueryParam("date"); raw != "" {
        d, ok := parseDate(raw)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
        }
        date = &d
    }
    details, err := h.BookingRepo.ListByVenueForOwner(c.Request().Context(), venueID, ownerID, date)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrVenueNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// bookingForOwner loads the :id booking with a row lock and verifies
// that its venue belongs to the caller.  The error response is
// already written when nil is returned.
func (h *OwnerHandler) bookingForOwner(c echo.Context, tx *sql.Tx) *model.Booking {
    ownerID, err := getUserID(c)
    if err != nil {
        _ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        return nil
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
        return nil
    }
    booking, err := h.BookingRepo.GetForUpdateTx(c.Request().Context(), tx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            _ = c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        } else {
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return nil
    }
    if _, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), booking.VenueID, ownerID); err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            _ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        } else {
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return nil
    }
    return booking
}

// ConfirmBooking handles POST /v1/bookings/:id/confirm.  Only PENDING
// bookings can be confirmed, and only by the owner of the venue they
// were made at.  Confirmation does not change occupancy since PENDING
// bookings already hold their slot.
func (h *OwnerHandler) ConfirmBooking(c echo.Context) error {
    ctx := c.Request().Context()
    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    booking := h.bookingForOwner(c, tx)
    if booking == nil {
        return nil
    }
    updated, err := h.BookingRepo.ConfirmTx(ctx, tx, booking.ID)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm booking"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{
        "id":        updated.ID,
        "reference": updated.Reference,
        "status":    updated.Status,
    })
}

// CompleteBooking handles POST /v1/bookings/:id/complete.  A CONFIRMED
// booking whose interval has elapsed is marked COMPLETED and drops out
// of the active set.
func (h *OwnerHandler) CompleteBooking(c echo.Context) error {
    ctx := c.Request().Context()
    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    booking := h.bookingForOwner(c, tx)
    if booking == nil {
        return nil
    }
    updated, err := h.BookingRepo.CompleteTx(ctx, tx, booking.ID, time.Now().UTC())
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be completed yet"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to complete booking"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{
        "id":        updated.ID,
        "reference": updated.Reference,
        "status":    updated.Status,
    })
}
