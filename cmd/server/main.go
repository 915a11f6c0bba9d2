package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Pranai222/eventvenue-platform/internal/config"
	"github.com/Pranai222/eventvenue-platform/internal/database"
	"github.com/Pranai222/eventvenue-platform/internal/handler"
	"github.com/Pranai222/eventvenue-platform/internal/middleware"
	"github.com/Pranai222/eventvenue-platform/internal/queue"
	"github.com/Pranai222/eventvenue-platform/internal/repository"
	"github.com/Pranai222/eventvenue-platform/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the single pooled handle.
	accountRepo := repository.NewAccountRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	venueRepo := repository.NewVenueRepo(db)
	eventRepo := repository.NewEventRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	bookingHandler := handler.NewBookingHandler(bookingRepo, ledgerRepo, accountRepo, venueRepo, eventRepo, seatRepo, settingsRepo, auditRepo)
	venueHandler := handler.NewVenueHandler(venueRepo, ledgerRepo, settingsRepo, auditRepo)
	eventHandler := handler.NewEventHandler(eventRepo, bookingRepo, ledgerRepo, accountRepo, venueRepo, seatRepo, settingsRepo, auditRepo)
	pointsHandler := handler.NewPointsHandler(ledgerRepo, accountRepo, settingsRepo, auditRepo)
	adminHandler := handler.NewAdminHandler(settingsRepo, auditRepo)

	e := echo.New()
	e.HideBanner = true

	// Redis-backed rate limiting; fails open when Redis is down.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, venueHandler, eventHandler)
	router.RegisterUser(e, bookingHandler, pointsHandler, cfg.JWTSecret)
	router.RegisterVendor(e, venueHandler, eventHandler, bookingHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Background consumer writes notification logs; it reconnects on
	// broker failures and never takes the server down.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
