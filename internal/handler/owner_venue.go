package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/JaiminV2r/quickcourt/internal/model"
    "github.com/JaiminV2r/quickcourt/internal/repository"
)

// CreateVenue handles POST /v1/venues.  It registers a new venue for
// the authenticated owner.  Venues start in PENDING status until
// activated.  Returns 201 with the created record.
func (h *OwnerHandler) CreateVenue(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        Name        string  `json:"name" validate:"required,min=2,max=120"`
        City        string  `json:"city" validate:"required,min=2,max=80"`
        Description *string `json:"description"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validate.Struct(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    v := &model.Venue{
        OwnerID:     ownerID,
        Name:        body.Name,
        City:        body.City,
        Description: body.Description,
    }
    if err := h.VenueRepo.Create(c.Request().Context(), v); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create venue"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"venue": v})
}

// ListMyVenues handles GET /v1/my-venues and returns all venues of
// the authenticated owner.
func (h *OwnerHandler) ListMyVenues(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    venues, err := h.VenueRepo.ListByOwner(c.Request().Context(), ownerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venues"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": venues})
}

// UpdateVenueStatus handles PATCH /v1/venues/:id/status.  Owners use
// it to publish a pending venue or take an active one offline.
// Players only ever see ACTIVE venues, and booking requires ACTIVE
// status, so flipping to INACTIVE stops new bookings without touching
// existing ones.
func (h *OwnerHandler) UpdateVenueStatus(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    var body struct {
        Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validate.Struct(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    v, err := h.VenueRepo.UpdateStatus(c.Request().Context(), venueID, ownerID, body.Status)
    if err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update venue"})
    }
    return c.JSON(http.StatusOK, echo.Map{"venue": v})
}

// CreateCourt handles POST /v1/venues/:id/courts.  The venue must
// belong to the caller.  Court names are unique per venue; a
// duplicate insert surfaces as a database error mapped to 409.
func (h *OwnerHandler) CreateCourt(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    if _, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), venueID, ownerID); err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var body struct {
        Name  string `json:"name" validate:"required,min=1,max=60"`
        Sport string `json:"sport" validate:"required,min=2,max=40"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validate.Struct(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    court := &model.Court{VenueID: venueID, Name: body.Name, Sport: body.Sport}
    if err := h.CourtRepo.Create(c.Request().Context(), court); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": "failed to create court"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"court": court})
}

// ListCourts handles GET /v1/my-venues/:id/courts for the owner view.
// It returns every court of the venue including inactive ones.
func (h *OwnerHandler) ListCourts(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    if _, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), venueID, ownerID); err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    courts, err := h.CourtRepo.ListByVenue(c.Request().Context(), venueID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load courts"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": courts})
}
