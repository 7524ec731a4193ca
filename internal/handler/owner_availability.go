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

// slotPayload is one template window as it travels over the API.
// Times are wall-clock strings; the engine works in minutes.
type slotPayload struct {
    StartTime    string `json:"start_time" validate:"required"`
    EndTime      string `json:"end_time" validate:"required"`
    PricePerHour int64  `json:"price_per_hour" validate:"required,gt=0"`
}

func slotToPayload(s model.AvailabilitySlot) echo.Map {
    return echo.Map{
        "id":             s.ID,
        "weekday":        s.Weekday.String(),
        "start_time":     engine.FormatClock(s.StartMin),
        "end_time":       engine.FormatClock(s.EndMin),
        "price_per_hour": s.PricePerHour,
    }
}

// courtForOwner resolves the :id court and enforces that its venue
// belongs to the caller.  The error response is already written when
// the returned court is nil.
func (h *OwnerHandler) courtForOwner(c echo.Context) *model.Court {
    ownerID, err := getUserID(c)
    if err != nil {
        _ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        return nil
    }
    courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || courtID == 0 {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
        return nil
    }
    court, err := h.CourtRepo.GetByIDAndOwner(c.Request().Context(), courtID, ownerID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrCourtNotFound):
            _ = c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
        case errors.Is(err, repository.ErrForbidden):
            _ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        default:
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return nil
    }
    return court
}

// SetWeeklySlots handles PUT /v1/courts/:id/availability/:weekday.
// It replaces the recurring template for that day with the windows in
// the request body.  The engine validates the list (start < end,
// positive price, no overlaps) before anything is stored; an invalid
// list leaves the stored template unchanged.  Existing bookings are
// never affected, only future availability lookups.
func (h *OwnerHandler) SetWeeklySlots(c echo.Context) error {
    court := h.courtForOwner(c)
    if court == nil {
        return nil
    }
    weekday, ok := parseWeekday(c.Param("weekday"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid weekday"})
    }
    var body struct {
        Slots []slotPayload `json:"slots" validate:"required,dive"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validate.Struct(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    slots := make([]model.AvailabilitySlot, 0, len(body.Slots))
    for _, p := range body.Slots {
        start, err := engine.ParseClock(p.StartTime)
        if err != nil {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
        }
        end, err := engine.ParseClock(p.EndTime)
        if err != nil {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
        }
        slots = append(slots, model.AvailabilitySlot{
            CourtID:      court.ID,
            Weekday:      weekday,
            StartMin:     start,
            EndMin:       end,
            PricePerHour: p.PricePerHour,
        })
    }
    validated, err := engine.ValidateWeeklySlots(slots)
    if err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }
    stored, err := h.AvailabilityRepo.ReplaceWeekly(c.Request().Context(), court.ID, weekday, validated)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store template"})
    }
    out := make([]echo.Map, 0, len(stored))
    for _, s := range stored {
        out = append(out, slotToPayload(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"slots": out})
}

// GetWeeklySlots handles GET /v1/courts/:id/availability/:weekday and
// returns the ordered template for one day.
func (h *OwnerHandler) GetWeeklySlots(c echo.Context) error {
    court := h.courtForOwner(c)
    if court == nil {
        return nil
    }
    weekday, ok := parseWeekday(c.Param("weekday"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid weekday"})
    }
    slots, err := h.AvailabilityRepo.GetWeekly(c.Request().Context(), court.ID, weekday)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load template"})
    }
    out := make([]echo.Map, 0, len(slots))
    for _, s := range slots {
        out = append(out, slotToPayload(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"slots": out})
}

// GetWeek handles GET /v1/courts/:id/availability and returns the
// full weekly template grouped by weekday.
func (h *OwnerHandler) GetWeek(c echo.Context) error {
    court := h.courtForOwner(c)
    if court == nil {
        return nil
    }
    slots, err := h.AvailabilityRepo.GetWeek(c.Request().Context(), court.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load template"})
    }
    week := make(map[string][]echo.Map, 7)
    for _, s := range slots {
        day := s.Weekday.String()
        week[day] = append(week[day], slotToPayload(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"week": week})
}

// GetSlotEditorOptions handles
// GET /v1/courts/:id/availability/:weekday/options?start=HH:MM.
// It is advisory input for the template editor: which start times may
// begin a new window given the day's existing windows, and, when a
// start is supplied, the latest end that does not collide with the
// next window.  The authoritative check remains SetWeeklySlots.
func (h *OwnerHandler) GetSlotEditorOptions(c echo.Context) error {
    court := h.courtForOwner(c)
    if court == nil {
        return nil
    }
    weekday, ok := parseWeekday(c.Param("weekday"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid weekday"})
    }
    existing, err := h.AvailabilityRepo.GetWeekly(c.Request().Context(), court.ID, weekday)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load template"})
    }
    starts := make([]string, 0)
    for t := 0; t < engine.MinutesPerDay; t += engine.DefaultStepMinutes {
        if engine.EditorStartAllowed(existing, t) {
            starts = append(starts, engine.FormatClock(t))
        }
    }
    resp := echo.Map{"start_options": starts}
    if raw := c.QueryParam("start"); raw != "" {
        start, err := engine.ParseClock(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        if !engine.EditorStartAllowed(existing, start) {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "start falls inside an existing slot"})
        }
        resp["end_limit"] = engine.FormatClock(engine.EditorEndLimit(existing, start))
    }
    return c.JSON(http.StatusOK, resp)
}
