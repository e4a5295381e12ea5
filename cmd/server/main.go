package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/showbill/internal/config"
	"github.com/iliyamo/showbill/internal/database"
	"github.com/iliyamo/showbill/internal/handler"
	"github.com/iliyamo/showbill/internal/middleware"
	"github.com/iliyamo/showbill/internal/queue"
	"github.com/iliyamo/showbill/internal/repository"
	"github.com/iliyamo/showbill/internal/router"
	queue_publisher "github.com/iliyamo/showbill/internal/service"
	"github.com/iliyamo/showbill/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Redis is optional: without it the cache and limiter are pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	h := handler.New(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		queue_publisher.PublishShowEvent,
	)
	router.RegisterRoutes(e, h, cache, limit)

	// Background audit-log consumer; reconnects on its own.
	go func() {
		if err := queue.StartShowConsumer(); err != nil {
			log.Printf("show consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
