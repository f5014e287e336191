package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/inventory"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	inventoryClient := inventory.NewClient(inventory.ClientConfig{
		BaseURL:                 cfg.Inventory.BaseURL,
		RequestTimeout:          time.Duration(cfg.Inventory.RequestTimeoutSeconds) * time.Second,
		MaxRetries:              uint64(cfg.Inventory.MaxRetries),
		RetryInitialInterval:    time.Duration(cfg.Inventory.RetryInitialIntervalMs) * time.Millisecond,
		RetryMaxInterval:        time.Duration(cfg.Inventory.RetryMaxIntervalMs) * time.Millisecond,
		BreakerFailureThreshold: uint32(cfg.Inventory.BreakerFailureThreshold),
		BreakerOpenTimeout:      time.Duration(cfg.Inventory.BreakerOpenSeconds) * time.Second,
		BreakerHalfOpenRequests: uint32(cfg.Inventory.BreakerHalfOpenRequests),
	})

	bookingRepo := repository.NewBookingRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		inventoryClient,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := gin.Default()
	api.NewBookingHandler(bookingService).Register(router.Group("/api/v1/bookings"))

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
