package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const tokenTTL = 12 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}
	utils.InitLogger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.UsesDefaultSecret() {
		utils.ErrorLogger.Error("JWT_SECRET is not set; staff tokens are signed with the built-in development secret")
	}
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}

	clock := utils.NewSystemClock(cfg.Timezone)
	engine := services.NewAssignmentEngine(db)
	cache := services.NewTableCache(config.NewRedisClient(cfg), cfg.TableCacheTTL)

	hub := floor.NewHub()
	publisher := services.NewEventPublisher(cfg.RabbitMQURL)
	defer func() {
		if err := publisher.Close(); err != nil {
			utils.ErrorLogger.Printf("close event publisher: %v", err)
		}
	}()
	relay := services.NewEventRelay(db, hub, publisher)
	relay.Interval = cfg.EventRelayInterval
	relay.Start()
	defer relay.Stop()

	r := router.SetupRouter(router.Deps{
		DB:           db,
		Reservations: services.NewReservationService(db, clock, engine),
		Tables:       services.NewTableService(db, engine, cache),
		Hub:          hub,
		Tokens:       utils.NewTokenIssuer(cfg.JWTSecret, tokenTTL),
		CORSOrigin:   cfg.CORSOrigin,
		RateLimiter:  middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
}
