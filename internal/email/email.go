package email

import (
	"context"
	"log/slog"

	"github.com/minhalawais/Stallion/internal/kafka"
)

// Sender delivers booking notifications. Delivery is a log line for now; the
// interface stays the same once a real mail provider is plugged in.
type Sender struct {
	log *slog.Logger
}

func NewSender(log *slog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("sending booking notification",
		slog.String("to", event.Email),
		slog.String("event", event.Type),
		slog.Int64("booking_id", event.BookingID),
		slog.String("car", event.CarName),
		slog.String("pickup_date", event.PickupDate),
	)
	return nil
}
