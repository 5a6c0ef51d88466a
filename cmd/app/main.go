package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/busbooking/config"
	"github.com/Domenick1991/busbooking/internal/bootstrap"
	"github.com/Domenick1991/busbooking/internal/cache"
	"github.com/Domenick1991/busbooking/internal/catalog"
	"github.com/Domenick1991/busbooking/internal/kafka"
	"github.com/Domenick1991/busbooking/internal/monitoring"
	"github.com/Domenick1991/busbooking/internal/repository"
	"github.com/Domenick1991/busbooking/internal/service/booking"
	"github.com/Domenick1991/busbooking/internal/service/inventory"
	"github.com/Domenick1991/busbooking/internal/service/prediction"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
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

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meals, err := catalog.FromConfig(cfg.Meals)
	if err != nil {
		logger.Fatal("load meal catalog", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(registry)

	store := repository.NewStore()

	inventoryOpts := []inventory.ManagerOption{inventory.WithLogger(logger)}
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SeatsCacheTTL)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, seat cache reads will fall through", zap.Error(err))
		}
		inventoryOpts = append(inventoryOpts, inventory.WithCache(redisCache))
	}
	inventoryManager := inventory.NewManager(store, inventoryOpts...)

	bookingOpts := []booking.BookingServiceOption{
		booking.WithLogger(logger),
		booking.WithMetrics(metrics),
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka unavailable, booking events may be lost", zap.Error(err))
		}
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	bookingService := booking.NewBookingService(store, inventoryManager, meals, bookingOpts...)

	predictionService := prediction.NewPredictionService(store, inventoryManager,
		prediction.WithMetrics(metrics),
		prediction.WithLogger(logger),
	)

	if err := bootstrap.Run(ctx, cfg, bootstrap.Services{
		Seats:       inventoryManager,
		Meals:       meals,
		Bookings:    bookingService,
		Predictions: predictionService,
		Gatherer:    registry,
	}, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
