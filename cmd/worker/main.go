package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhalawais/Stallion/config"
	"github.com/minhalawais/Stallion/internal/email"
	"github.com/minhalawais/Stallion/internal/kafka"
	"github.com/minhalawais/Stallion/internal/repository"
	"github.com/minhalawais/Stallion/internal/service/booking"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker is the back-office side of the booking lifecycle: it delivers
// notifications for published events and periodically marks confirmed
// bookings with past pickup dates as completed.
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	bookingSvc := booking.NewBookingService(
		bookingRepo,
		producer,
		logger,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(logger)

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("skipping undecodable event", slog.Any("error", err))
				return nil
			}
			return sender.Send(ctx, event)
		}); err != nil {
			logger.Error("consumer stopped", slog.Any("error", err))
		}
	}()

	sweep := time.NewTicker(time.Duration(cfg.Worker.CompletionSweepMinutes) * time.Minute)
	defer sweep.Stop()

	logger.Info("worker started")

	for {
		select {
		case <-sweep.C:
			completed, err := bookingSvc.CompletePastBookings(ctx)
			if err != nil {
				logger.Error("completion sweep failed", slog.Any("error", err))
				continue
			}
			if len(completed) > 0 {
				logger.Info("completed past bookings", slog.Int("count", len(completed)))
			}
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return
		}
	}
}

func setupLogger(env string) *slog.Logger {
	if env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
