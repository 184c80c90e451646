package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/clock"
	"github.com/eldarv/cinema-reservation/internal/config"
	"github.com/eldarv/cinema-reservation/internal/database"
	"github.com/eldarv/cinema-reservation/internal/handler"
	"github.com/eldarv/cinema-reservation/internal/middleware"
	"github.com/eldarv/cinema-reservation/internal/queue"
	"github.com/eldarv/cinema-reservation/internal/repository"
	"github.com/eldarv/cinema-reservation/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	// Storage selection: MySQL when configured, otherwise the
	// seeded in-memory store (how the original deployment ran).
	var (
		seats         booking.SeatCatalog
		showtimes     booking.ShowtimeCatalog
		tickets       booking.TicketLedger
		reservations  booking.ReservationRegistry
		showtimeStore handler.ShowtimeStore
	)
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		if err := repository.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("database schema: %v", err)
		}
		showRepo := repository.NewShowtimeRepo(db)
		seats = repository.NewAuditoriumRepo(db)
		showtimes = showRepo
		showtimeStore = showRepo
		tickets = repository.NewTicketRepo(db)
		reservations = repository.NewReservationRepo(db)
	} else {
		mem := repository.NewMemoryStore()
		repository.SeedSampleData(mem)
		seats = mem
		showtimes = mem
		showtimeStore = mem
		tickets = mem
		reservations = mem
	}

	engine := booking.NewEngine(seats, showtimes, tickets, reservations,
		clock.NewSystem(), cfg.ReservationThresholdMin)

	// Confirmed-reservation events flow through RabbitMQ when a
	// broker is configured; the consumer writes the audit log.
	publish := cfg.RabbitURL != ""
	if publish {
		go func() {
			if err := queue.StartConfirmedConsumer(); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.Use(middleware.RequestDuration())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient()))
	router.RegisterRoutes(e,
		handler.NewReservationHandler(engine, publish),
		handler.NewShowtimeHandler(showtimeStore, seats),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, hold threshold=%dm)", addr, cfg.Env, cfg.ReservationThresholdMin)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
