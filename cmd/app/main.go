package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhalawais/Stallion/config"
	"github.com/minhalawais/Stallion/internal/bootstrap"
	"github.com/minhalawais/Stallion/internal/cache"
	"github.com/minhalawais/Stallion/internal/kafka"
	"github.com/minhalawais/Stallion/internal/repository"
	"github.com/minhalawais/Stallion/internal/service/accounts"
	"github.com/minhalawais/Stallion/internal/service/booking"
	"github.com/minhalawais/Stallion/internal/service/fleet"
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

	logger := setupLogger(cfg.Env)
	logger.Info("starting reservation service", slog.String("address", cfg.HTTP.Address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Fleet.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)

	accountSvc := accounts.NewAccountService(userRepo, []byte(cfg.Auth.JWTSecret), time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	bookingSvc := booking.NewBookingService(
		bookingRepo,
		producer,
		logger,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	fleetSvc := fleet.NewFleetService(vehicleRepo, redisCache)

	if err := bootstrap.Run(ctx, cfg, logger, accountSvc, bookingSvc, fleetSvc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func setupLogger(env string) *slog.Logger {
	if env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
