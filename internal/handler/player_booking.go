package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/JaiminV2r/quickcourt/internal/engine"
    "github.com/JaiminV2r/quickcourt/internal/model"
    "github.com/JaiminV2r/quickcourt/internal/queue"
    "github.com/JaiminV2r/quickcourt/internal/repository"
    queue_publisher "github.com/JaiminV2r/quickcourt/internal/service"
)

// PlayerHandler implements the booking endpoints used by players.
// Booking creation is the engine's critical write path: the conflict
// check and the insert run inside one transaction holding the court
// row locks, so two concurrent requests for an overlapping interval
// on the same court serialize and exactly one succeeds.
type PlayerHandler struct {
    VenueRepo        *repository.VenueRepo        // venue lookups and status checks
    CourtRepo        *repository.CourtRepo        // court resolution and locking
    AvailabilityRepo *repository.AvailabilityRepo // weekly template reads
    BookingRepo      *repository.BookingRepo      // the booking ledger
    AutoConfirm      bool                         // create bookings as CONFIRMED instead of PENDING
}

// NewPlayerHandler constructs a PlayerHandler with the provided
// repositories.  All repository dependencies must be non-nil.
func NewPlayerHandler(venueRepo *repository.VenueRepo, courtRepo *repository.CourtRepo, availabilityRepo *repository.AvailabilityRepo, bookingRepo *repository.BookingRepo, autoConfirm bool) *PlayerHandler {
    if venueRepo == nil || courtRepo == nil || availabilityRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewPlayerHandler")
    }
    return &PlayerHandler{
        VenueRepo:        venueRepo,
        CourtRepo:        courtRepo,
        AvailabilityRepo: availabilityRepo,
        BookingRepo:      bookingRepo,
        AutoConfirm:      autoConfirm,
    }
}

// CreateBooking handles POST /v1/bookings.  The request names a
// venue, sport, date, start time, duration and the courts to reserve
// together.  The handler resolves the courts, then inside a single
// transaction locks them in id order, re-runs the conflict check
// against current state (whatever the client saw in the slot listing
// is only a hint), prices the booking and inserts it.  A loser of a
// concurrent race observes the winner's rows after the lock and gets
// a 409.  Returns 201 with the created booking.
func (h *PlayerHandler) CreateBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        VenueID         uint64   `json:"venue_id" validate:"required"`
        Sport           string   `json:"sport" validate:"required"`
        Date            string   `json:"date" validate:"required"`
        StartTime       string   `json:"start_time" validate:"required"`
        DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
        CourtNames      []string `json:"court_names" validate:"required,min=1,dive,required"`
        Notes           *string  `json:"notes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validate.Struct(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    date, ok := parseDate(body.Date)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    }
    start, err := engine.ParseClock(body.StartTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    candidate := engine.Interval{Start: start, End: start + body.DurationMinutes}
    if !candidate.Valid() {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid booking interval"})
    }

    ctx := c.Request().Context()
    venue, err := h.VenueRepo.GetByID(ctx, body.VenueID)
    if err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if venue.Status != model.VenueStatusActive {
        return c.JSON(http.StatusConflict, echo.Map{"error": "venue is not accepting bookings"})
    }
    courts, err := h.CourtRepo.ResolveByNames(ctx, venue.ID, body.Sport, body.CourtNames)
    if err != nil {
        if errors.Is(err, repository.ErrCourtNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

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

    // Serialize against concurrent bookings on the same courts.  Ids
    // arrive sorted from ResolveByNames, which keeps lock order
    // consistent across requests.
    ids := make([]uint64, len(courts))
    for i, court := range courts {
        ids[i] = court.ID
    }
    if err := h.CourtRepo.LockTx(ctx, tx, ids); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to lock courts"})
    }

    // Authoritative conflict check, per court, against state as of
    // this transaction.
    weekday := date.Weekday()
    rates := make([]int64, 0, len(courts))
    for _, court := range courts {
        template, err := h.AvailabilityRepo.GetWeeklyTx(ctx, tx, court.ID, weekday)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load template"})
        }
        active, err := h.BookingRepo.ListActiveByCourtDateTx(ctx, tx, court.ID, date)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
        }
        slot, err := engine.CheckBookable(template, engine.BusyIntervals(active), candidate)
        if err != nil {
            switch {
            case errors.Is(err, engine.ErrNotWithinAvailability):
                return c.JSON(http.StatusConflict, echo.Map{"error": "no such slot", "court": court.Name})
            case errors.Is(err, engine.ErrSlotAlreadyBooked):
                return c.JSON(http.StatusConflict, echo.Map{"error": "slot no longer available", "court": court.Name})
            default:
                return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
            }
        }
        rates = append(rates, slot.PricePerHour)
    }

    quote := engine.PriceQuoteRates(rates, candidate.Duration())
    status := model.BookingStatusPending
    if h.AutoConfirm {
        status = model.BookingStatusConfirmed
    }
    startAt := date.Add(time.Duration(candidate.Start) * time.Minute)
    endAt := date.Add(time.Duration(candidate.End) * time.Minute)
    booking := &model.Booking{
        Reference:   uuid.NewString(),
        UserID:      userID,
        VenueID:     venue.ID,
        Sport:       body.Sport,
        Date:        date,
        StartAt:     startAt,
        EndAt:       endAt,
        Status:      status,
        Subtotal:    quote.Subtotal,
        PlatformFee: quote.PlatformFee,
        Tax:         quote.Tax,
        TotalPrice:  quote.Total,
        Notes:       body.Notes,
    }
    if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
    }
    lines := make([]model.BookingCourt, 0, len(courts))
    for i, court := range courts {
        lines = append(lines, model.BookingCourt{
            BookingID:    booking.ID,
            CourtID:      court.ID,
            PricePerHour: rates[i],
        })
    }
    if err := h.BookingRepo.AddCourtsTx(ctx, tx, lines); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking courts"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    courtNames := make([]string, len(courts))
    for i, court := range courts {
        courtNames[i] = court.Name
    }
    // Best effort: a failed publish never fails the booking.
    _ = queue_publisher.PublishBookingEvent(ctx, queue.BookingEvent{
        Type:       queue.EventBookingCreated,
        BookingID:  booking.ID,
        Reference:  booking.Reference,
        UserID:     booking.UserID,
        VenueID:    venue.ID,
        VenueName:  venue.Name,
        Sport:      booking.Sport,
        Courts:     courtNames,
        StartAt:    booking.StartAt.UTC().Format(time.RFC3339),
        EndAt:      booking.EndAt.UTC().Format(time.RFC3339),
        Status:     booking.Status,
        TotalPrice: booking.TotalPrice,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusCreated, echo.Map{
        "id":           booking.ID,
        "reference":    booking.Reference,
        "status":       booking.Status,
        "date":         booking.Date.Format("2006-01-02"),
        "start_at":     booking.StartAt.Format(time.RFC3339),
        "end_at":       booking.EndAt.Format(time.RFC3339),
        "courts":       courtNames,
        "subtotal":     booking.Subtotal,
        "platform_fee": booking.PlatformFee,
        "tax":          booking.Tax,
        "total_price":  booking.TotalPrice,
    })
}

// CancelBooking handles DELETE /v1/bookings/:id.  Only the player who
// created the booking may cancel it.  Cancelling an already-cancelled
// booking returns 409 and leaves the record untouched; completed
// bookings cannot be cancelled.  Returns the updated record.
func (h *PlayerHandler) CancelBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
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
    current, err := h.BookingRepo.GetForUpdateTx(ctx, tx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if current.UserID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    updated, err := h.BookingRepo.CancelTx(ctx, tx, bookingID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrAlreadyCancelled):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking already completed"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    _ = queue_publisher.PublishBookingEvent(ctx, queue.BookingEvent{
        Type:       queue.EventBookingCancelled,
        BookingID:  updated.ID,
        Reference:  updated.Reference,
        UserID:     updated.UserID,
        VenueID:    updated.VenueID,
        Sport:      updated.Sport,
        StartAt:    updated.StartAt.UTC().Format(time.RFC3339),
        EndAt:      updated.EndAt.UTC().Format(time.RFC3339),
        Status:     updated.Status,
        TotalPrice: updated.TotalPrice,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{
        "id":        updated.ID,
        "reference": updated.Reference,
        "status":    updated.Status,
    })
}

// ListMyBookings handles GET /v1/my-bookings and returns all bookings
// of the authenticated player, newest first.
func (h *PlayerHandler) ListMyBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    details, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetBooking handles GET /v1/bookings/:id for the booking's owner.
// Foreign bookings read as 404 since ownership is part of the lookup.
func (h *PlayerHandler) GetBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    detail, err := h.BookingRepo.GetDetailForUser(c.Request().Context(), bookingID, userID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": detail})
}
