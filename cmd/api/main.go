package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lagourmand/table-booking/internal/adapter/handler"
	"github.com/lagourmand/table-booking/internal/adapter/repository/postgres"
	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/services"
	"github.com/lagourmand/table-booking/internal/platform/database"
)

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// A missing .env file is fine; the process environment is used as-is.
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	dbConfig := database.Config{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "postgres"),
		Password: getenv("DB_PASSWORD", ""),
		DBName:   getenv("DB_NAME", "table_booking"),
	}

	db, err := database.NewPostgresDB(dbConfig, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to db after retries")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisAddr := fmt.Sprintf("%s:%s", getenv("REDIS_HOST", "localhost"), getenv("REDIS_PORT", "6379"))
	logger.Info().Str("addr", redisAddr).Msg("connecting to redis")

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr, DB: 0})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	logger.Info().Msg("redis connected")

	lockDuration := services.DefaultLockDuration
	if raw := os.Getenv("LOCK_DURATION"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logger.Fatal().Err(err).Str("value", raw).Msg("invalid LOCK_DURATION")
		}
		lockDuration = parsed
	}

	restaurantRepo := postgres.NewRestaurantRepository(db)
	tableRepo := postgres.NewTableRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	blockedRepo := postgres.NewBlockedSlotRepository(db)

	availabilityService := services.NewAvailabilityService(restaurantRepo, tableRepo, reservationRepo, blockedRepo, redisClient, logger)
	lockService := services.NewLockService(domain.RealClock{}, lockDuration, logger)
	bookingService := services.NewBookingService(restaurantRepo, reservationRepo, lockService, redisClient, logger)

	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	lockHandler := handler.NewLockHandler(availabilityService, lockService)
	reservationHandler := handler.NewReservationHandler(bookingService)

	mux := http.NewServeMux()

	mux.HandleFunc("/availability", availabilityHandler.GetAvailability)
	mux.HandleFunc("/availability/lock", lockHandler.CreateLock)
	mux.HandleFunc("/locks/stats", lockHandler.Stats)
	mux.HandleFunc("/locks/", lockHandler.LockByID)
	mux.HandleFunc("/reservations", reservationHandler.CreateReservation)
	mux.HandleFunc("/reservations/", reservationHandler.CancelReservation)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + getenv("PORT", "8080"),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exiting")
}
