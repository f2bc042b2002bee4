package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"github.com/parkspot/booking-front/internal/config"
	"github.com/parkspot/booking-front/internal/database"
	"github.com/parkspot/booking-front/internal/handler"
	appmw "github.com/parkspot/booking-front/internal/middleware"
	"github.com/parkspot/booking-front/internal/queue"
	"github.com/parkspot/booking-front/internal/repository"
	"github.com/parkspot/booking-front/internal/router"
	"github.com/parkspot/booking-front/internal/session"
	"github.com/parkspot/booking-front/internal/upstream"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// Redis backs the response cache and rate limiter; nil degrades both
	// to pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}
	cacheMW := appmw.NewResponseCache(config.LoadCacheConfig(), rdb)
	limitMW := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// The confirmed-booking mirror is optional; without DB_HOST the
	// consumer falls back to the booking log file.
	var history *repository.HistoryRepo
	if cfg.MirrorEnabled() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open mirror database: %v", err)
		}
		history = repository.NewHistoryRepo(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := history.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("ensure mirror schema: %v", err)
		}
		cancel()
	}

	store := session.NewStore(time.Duration(cfg.SessionTTLMin) * time.Minute)
	backend := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	authH := handler.NewAuthHandler(cfg, backend, store)
	bookingH := handler.NewBookingHandler(cfg, backend)
	accountH := handler.NewAccountHandler(cfg, backend, history)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, store)
	router.RegisterBooking(e, bookingH, cfg.JWTSecret, store, cacheMW, limitMW)
	router.RegisterAccount(e, accountH, cfg.JWTSecret, store)

	// Sweep idle sessions on a schedule.
	cr := cron.New()
	if _, err := cr.AddFunc(cfg.SweepSpec, func() {
		if n := store.Sweep(); n > 0 {
			log.Printf("session sweep removed %d sessions (%d live)", n, store.Len())
		}
	}); err != nil {
		log.Fatalf("schedule session sweep: %v", err)
	}
	cr.Start()

	// Mirror confirmed bookings from the broker in the background.
	go func() {
		if err := queue.StartReservationConsumer(history); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, upstream=%s)", addr, cfg.Env, cfg.UpstreamBaseURL)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
