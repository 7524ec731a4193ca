package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/JaiminV2r/quickcourt/internal/config"
    "github.com/JaiminV2r/quickcourt/internal/handler"
    "github.com/JaiminV2r/quickcourt/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers to verify the service is running.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated discovery endpoints:
// venue browsing, the per-date slot listing and the start/end option
// grids.  These are read-only, so they sit behind the Redis response
// cache and the rate limiter; the authoritative conflict check happens
// in the booking transaction, never here.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
    g := e.Group(
        "/v1",
        middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
        middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
    )
    g.GET("/venues", p.ListVenues)
    g.GET("/venues/:id/courts", p.ListVenueCourts)
    g.GET("/venues/:id/slots", p.ListVenueSlots)
    g.GET("/courts/:id/options", p.ListCourtOptions)
}

// RegisterPlayer registers PLAYER-scoped endpoints under /v1.  All
// routes require a valid JWT and PLAYER role.
func RegisterPlayer(e *echo.Echo, p *handler.PlayerHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("PLAYER"),
    )

    // ---- Bookings ----
    g.POST("/bookings", p.CreateBooking)
    g.GET("/bookings/:id", p.GetBooking)
    g.DELETE("/bookings/:id", p.CancelBooking)
    g.GET("/my-bookings", p.ListMyBookings)
}

// RegisterOwner registers OWNER-scoped endpoints under /v1.  All routes
// require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("OWNER"),
    )

    // ---- Venues ----
    g.POST("/venues", o.CreateVenue)
    g.GET("/my-venues", o.ListMyVenues)
    g.PATCH("/venues/:id/status", o.UpdateVenueStatus)

    // ---- Courts ----
    g.POST("/venues/:id/courts", o.CreateCourt)
    // NOTE: the public GET /v1/venues/:id/courts shows only active
    // courts of active venues; owners list the full set here.
    g.GET("/my-venues/:id/courts", o.ListCourts)

    // ---- Weekly availability templates ----
    g.PUT("/courts/:id/availability/:weekday", o.SetWeeklySlots)
    g.GET("/courts/:id/availability/:weekday", o.GetWeeklySlots)
    g.GET("/courts/:id/availability", o.GetWeek)
    g.GET("/courts/:id/availability/:weekday/options", o.GetSlotEditorOptions)

    // ---- Bookings ----
    g.GET("/venues/:id/bookings", o.ListVenueBookings)
    g.POST("/bookings/:id/confirm", o.ConfirmBooking)
    g.POST("/bookings/:id/complete", o.CompleteBooking)
}
