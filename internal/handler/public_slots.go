package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/JaiminV2r/quickcourt/internal/engine"
    "github.com/JaiminV2r/quickcourt/internal/model"
    "github.com/JaiminV2r/quickcourt/internal/repository"
)

// PublicHandler serves the read-only discovery endpoints: venue
// browsing, the per-date venue slot listing and the start/end option
// grids a booking form offers.  Everything here is advisory; the
// booking transaction re-validates against current state.
type PublicHandler struct {
    VenueRepo        *repository.VenueRepo
    CourtRepo        *repository.CourtRepo
    AvailabilityRepo *repository.AvailabilityRepo
    BookingRepo      *repository.BookingRepo
    StepMinutes      int // booking granularity for option grids
}

// NewPublicHandler constructs a PublicHandler.  A non-positive step
// falls back to the engine default.
func NewPublicHandler(venueRepo *repository.VenueRepo, courtRepo *repository.CourtRepo, availabilityRepo *repository.AvailabilityRepo, bookingRepo *repository.BookingRepo, stepMinutes int) *PublicHandler {
    if venueRepo == nil || courtRepo == nil || availabilityRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    if stepMinutes <= 0 {
        stepMinutes = engine.DefaultStepMinutes
    }
    return &PublicHandler{
        VenueRepo:        venueRepo,
        CourtRepo:        courtRepo,
        AvailabilityRepo: availabilityRepo,
        BookingRepo:      bookingRepo,
        StepMinutes:      stepMinutes,
    }
}

// ListVenues handles GET /v1/venues and returns all active venues.
func (h *PublicHandler) ListVenues(c echo.Context) error {
    venues, err := h.VenueRepo.ListActive(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venues"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": venues})
}

// activeVenue resolves the :id venue and requires ACTIVE status.  The
// error response is already written when nil is returned.
func (h *PublicHandler) activeVenue(c echo.Context) *model.Venue {
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
        return nil
    }
    venue, err := h.VenueRepo.GetByID(c.Request().Context(), venueID)
    if err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            _ = c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        } else {
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return nil
    }
    if venue.Status != model.VenueStatusActive {
        _ = c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        return nil
    }
    return venue
}

// ListVenueCourts handles GET /v1/venues/:id/courts for players.  An
// optional sport query narrows the list; only active courts are shown.
func (h *PublicHandler) ListVenueCourts(c echo.Context) error {
    venue := h.activeVenue(c)
    if venue == nil {
        return nil
    }
    ctx := c.Request().Context()
    var (
        courts []*model.Court
        err    error
    )
    if sport := c.QueryParam("sport"); sport != "" {
        courts, err = h.CourtRepo.ListActiveByVenueAndSport(ctx, venue.ID, sport)
    } else {
        var all []*model.Court
        all, err = h.CourtRepo.ListByVenue(ctx, venue.ID)
        for _, court := range all {
            if court.IsActive {
                courts = append(courts, court)
            }
        }
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load courts"})
    }
    if courts == nil {
        courts = []*model.Court{}
    }
    return c.JSON(http.StatusOK, echo.Map{"items": courts})
}

// ListVenueSlots handles GET /v1/venues/:id/slots?sport=&date=.  For
// the requested date it intersects every active court's weekly
// template with its active bookings and returns venue-level rows of
// the form "start, end, courts available, hourly rate".  A window
// priced differently on two courts yields one row per rate.  Cancelled
// bookings free their capacity immediately since only PENDING and
// CONFIRMED bookings count as busy.
func (h *PublicHandler) ListVenueSlots(c echo.Context) error {
    venue := h.activeVenue(c)
    if venue == nil {
        return nil
    }
    sport := c.QueryParam("sport")
    if sport == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "sport is required"})
    }
    date, ok := parseDate(c.QueryParam("date"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    }

    ctx := c.Request().Context()
    courts, err := h.CourtRepo.ListActiveByVenueAndSport(ctx, venue.ID, sport)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load courts"})
    }
    ids := make([]uint64, len(courts))
    for i, court := range courts {
        ids[i] = court.ID
    }
    templates, err := h.AvailabilityRepo.ListByCourtsAndWeekday(ctx, ids, date.Weekday())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load templates"})
    }

    days := make([]engine.CourtDay, 0, len(courts))
    for _, court := range courts {
        active, err := h.BookingRepo.ListActiveByCourtDate(ctx, court.ID, date)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
        }
        days = append(days, engine.CourtDay{
            Court:    *court,
            Template: templates[court.ID],
            Busy:     engine.BusyIntervals(active),
        })
    }

    rows := engine.AggregateVenueSlots(days)
    out := make([]echo.Map, 0, len(rows))
    for _, row := range rows {
        out = append(out, echo.Map{
            "start_time":       engine.FormatClock(row.Start),
            "end_time":         engine.FormatClock(row.End),
            "available_courts": row.AvailableCourts,
            "price_per_hour":   row.PricePerHour,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "venue_id": venue.ID,
        "sport":    sport,
        "date":     date.Format("2006-01-02"),
        "slots":    out,
    })
}

// ListCourtOptions handles GET /v1/courts/:id/options?date=&start=.
// Without a start it returns the start times a booking form may
// offer for the date; with one it returns the end times that keep the
// whole interval inside one template window and clear of existing
// bookings.  The grid uses the configured booking granularity.
func (h *PublicHandler) ListCourtOptions(c echo.Context) error {
    courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || courtID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
    }
    date, ok := parseDate(c.QueryParam("date"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    }
    ctx := c.Request().Context()
    court, err := h.CourtRepo.GetByID(ctx, courtID)
    if err != nil {
        if errors.Is(err, repository.ErrCourtNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !court.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
    }

    template, err := h.AvailabilityRepo.GetWeekly(ctx, court.ID, date.Weekday())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load template"})
    }
    active, err := h.BookingRepo.ListActiveByCourtDate(ctx, court.ID, date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    busy := engine.BusyIntervals(active)

    if raw := c.QueryParam("start"); raw != "" {
        start, err := engine.ParseClock(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        ends := engine.EndOptions(template, busy, start, h.StepMinutes)
        out := make([]string, 0, len(ends))
        for _, e := range ends {
            out = append(out, engine.FormatClock(e))
        }
        return c.JSON(http.StatusOK, echo.Map{
            "court_id":    court.ID,
            "date":        date.Format("2006-01-02"),
            "start":       engine.FormatClock(start),
            "end_options": out,
        })
    }

    starts := engine.StartOptions(template, busy, h.StepMinutes, h.StepMinutes)
    out := make([]string, 0, len(starts))
    for _, s := range starts {
        out = append(out, engine.FormatClock(s))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "court_id":      court.ID,
        "date":          date.Format("2006-01-02"),
        "start_options": out,
    })
}
