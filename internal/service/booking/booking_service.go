package booking

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/minhalawais/Stallion/internal/kafka"
	"github.com/minhalawais/Stallion/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateBookingInput) (*domain.Booking, error)
	Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*domain.Booking, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, input UpdateBookingInput) (*domain.Booking, error)
	Cancel(ctx context.Context, userID uuid.UUID, id int64) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListToday(ctx context.Context) ([]domain.Booking, error)
	ListThisWeek(ctx context.Context) ([]domain.Booking, error)
	ListThisMonth(ctx context.Context) ([]domain.Booking, error)
	CompletePastBookings(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CarSelection struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type CreateBookingInput struct {
	PickupDate      string        `json:"pickupDate"`
	PickupTime      string        `json:"pickupTime"`
	PickupLocation  string        `json:"pickupLocation"`
	DropoffLocation string        `json:"dropoffLocation"`
	Passengers      *int          `json:"passengers"`
	Luggage         *int          `json:"luggage"`
	PhoneNumber     string        `json:"phoneNumber"`
	Email           string        `json:"email"`
	SelectedCar     *CarSelection `json:"selectedCar"`
}

// UpdateBookingInput carries the editable fields only. The vehicle snapshot
// and the status are immutable through this path.
type UpdateBookingInput struct {
	PickupDate      string `json:"pickupDate"`
	PickupTime      string `json:"pickupTime"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	Passengers      *int   `json:"passengers"`
	Luggage         *int   `json:"luggage"`
	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	log                *slog.Logger
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(bookings repository.BookingRepository, producer Producer, log *slog.Logger, bookingTopic string, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		producer:     producer,
		log:          log,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, input CreateBookingInput) (*domain.Booking, error) {
	const op = "booking.Create"

	if input.SelectedCar == nil || input.SelectedCar.ID == 0 || input.SelectedCar.Name == "" || input.SelectedCar.Price == "" {
		return nil, &domain.ValidationError{Message: "car selection must include id, name, and price"}
	}

	missing := missingFields(input.PickupDate, input.PickupTime, input.PickupLocation, input.DropoffLocation, input.PhoneNumber, input.Email)
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Message: "missing required fields", MissingFields: missing}
	}

	if !emailPattern.MatchString(input.Email) {
		return nil, &domain.ValidationError{Message: "invalid email format"}
	}

	pickupDate, err := time.Parse(time.DateOnly, input.PickupDate)
	if err != nil {
		return nil, &domain.ValidationError{Message: "invalid pickup date"}
	}

	booking := &domain.Booking{
		UserID:          userID,
		PickupDate:      pickupDate,
		PickupTime:      input.PickupTime,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		Passengers:      input.Passengers,
		Luggage:         input.Luggage,
		PhoneNumber:     input.PhoneNumber,
		Email:           input.Email,
		CarID:           input.SelectedCar.ID,
		CarName:         input.SelectedCar.Name,
		CarPrice:        input.SelectedCar.Price,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListUpcoming(ctx, userID, today())
}

func (s *BookingService) ListOwn(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, userID)
}

// Get masks bookings owned by other users as not found, so callers cannot
// tell a foreign booking apart from a nonexistent one.
func (s *BookingService) Get(ctx context.Context, userID uuid.UUID, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, userID uuid.UUID, id int64, input UpdateBookingInput) (*domain.Booking, error) {
	const op = "booking.Update"

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	missing := missingFields(input.PickupDate, input.PickupTime, input.PickupLocation, input.DropoffLocation, input.PhoneNumber, input.Email)
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Message: "missing required fields", MissingFields: missing}
	}

	if !emailPattern.MatchString(input.Email) {
		return nil, &domain.ValidationError{Message: "invalid email format"}
	}

	pickupDate, err := time.Parse(time.DateOnly, input.PickupDate)
	if err != nil {
		return nil, &domain.ValidationError{Message: "invalid pickup date"}
	}

	current.PickupDate = pickupDate
	current.PickupTime = input.PickupTime
	current.PickupLocation = input.PickupLocation
	current.DropoffLocation = input.DropoffLocation
	current.Passengers = input.Passengers
	current.Luggage = input.Luggage
	current.PhoneNumber = input.PhoneNumber
	current.Email = input.Email

	updated, err := s.bookings.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, "booking_updated", updated)
	return updated, nil
}

// Cancel is intentionally not idempotent: cancelling an already cancelled
// booking is reported as an error, not swallowed.
func (s *BookingService) Cancel(ctx context.Context, userID uuid.UUID, id int64) (*domain.Booking, error) {
	const op = "booking.Cancel"

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, "booking_cancelled", updated)
	return updated, nil
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) ListToday(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListCreatedToday(ctx)
}

func (s *BookingService) ListThisWeek(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListCreatedThisWeek(ctx)
}

func (s *BookingService) ListThisMonth(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListCreatedThisMonth(ctx)
}

// CompletePastBookings is the back-office sweep: confirmed bookings whose
// pickup date has passed are marked completed.
func (s *BookingService) CompletePastBookings(ctx context.Context) ([]domain.Booking, error) {
	completed, err := s.bookings.CompleteConfirmedBefore(ctx, today())
	if err != nil {
		return nil, err
	}
	for i := range completed {
		s.publish(ctx, "booking_completed", &completed[i])
	}
	return completed, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID.String(),
		Email:      booking.Email,
		Status:     string(booking.Status),
		CarName:    booking.CarName,
		PickupDate: booking.PickupDate.Format(time.DateOnly),
		PickupTime: booking.PickupTime,
		OccurredAt: time.Now(),
	}
	key := fmt.Sprintf("%d", booking.ID)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.Warn("failed to publish booking event", slog.String("type", eventType), slog.Int64("booking_id", booking.ID), slog.Any("error", err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warn("failed to publish notification event", slog.String("type", eventType), slog.Int64("booking_id", booking.ID), slog.Any("error", err))
		}
	}
}

func missingFields(pickupDate, pickupTime, pickupLocation, dropoffLocation, phoneNumber, email string) []string {
	required := []struct {
		name  string
		value string
	}{
		{"pickupDate", pickupDate},
		{"pickupTime", pickupTime},
		{"pickupLocation", pickupLocation},
		{"dropoffLocation", dropoffLocation},
		{"phoneNumber", phoneNumber},
		{"email", email},
	}

	missing := make([]string, 0, len(required))
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

var _ BookingUseCase = (*BookingService)(nil)
