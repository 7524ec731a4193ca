package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/JaiminV2r/quickcourt/internal/config"
    "github.com/JaiminV2r/quickcourt/internal/database"
    "github.com/JaiminV2r/quickcourt/internal/handler"
    "github.com/JaiminV2r/quickcourt/internal/queue"
    "github.com/JaiminV2r/quickcourt/internal/repository"
    "github.com/JaiminV2r/quickcourt/internal/router"
)

func main() {
    // .env is optional; real deployments pass environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: caching and rate limiting degrade to no-ops
    // when the client is nil.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; response cache and rate limiting disabled")
    }

    venueRepo := repository.NewVenueRepo(db)
    courtRepo := repository.NewCourtRepo(db)
    availabilityRepo := repository.NewAvailabilityRepo(db)
    bookingRepo := repository.NewBookingRepo(db)

    publicHandler := handler.NewPublicHandler(venueRepo, courtRepo, availabilityRepo, bookingRepo, cfg.SlotStepMinutes)
    playerHandler := handler.NewPlayerHandler(venueRepo, courtRepo, availabilityRepo, bookingRepo, cfg.BookingAutoConfirm)
    ownerHandler := handler.NewOwnerHandler(venueRepo, courtRepo, availabilityRepo, bookingRepo)

    // Booking events are consumed in the background and appended to
    // logs/booking.log; the consumer reconnects on broker failure.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterPublic(e, publicHandler, rdb)
    router.RegisterPlayer(e, playerHandler, cfg.JWTSecret)
    router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
