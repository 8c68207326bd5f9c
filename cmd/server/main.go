package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework

	"stagelist/internal/config"     // Internal config loader
	"stagelist/internal/database"   // Database open + migrations
	"stagelist/internal/handler"    // HTTP handlers
	"stagelist/internal/middleware" // Redis cache and rate limiter
	"stagelist/internal/queue"      // Broker consumer
	"stagelist/internal/repository" // Data access
	"stagelist/internal/router"     // Route registration
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	stateRepo := repository.NewStateRepo(db)

	e := echo.New()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterVenues(e, &handler.VenueHandler{VenueRepo: venueRepo, GenreRepo: genreRepo, StateRepo: stateRepo})
	router.RegisterArtists(e, &handler.ArtistHandler{ArtistRepo: artistRepo, GenreRepo: genreRepo, StateRepo: stateRepo})
	router.RegisterShows(e, &handler.ShowHandler{ShowRepo: showRepo, ArtistRepo: artistRepo, VenueRepo: venueRepo})

	// Background consumer appends listing.changed events to logs/listing.log.
	go func() {
		if err := queue.StartListingConsumer(); err != nil {
			log.Printf("listing consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
