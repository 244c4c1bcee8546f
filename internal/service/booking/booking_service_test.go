package booking

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListUpcoming(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, from)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListCreatedToday(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListCreatedThisWeek(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListCreatedThisMonth(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CompleteConfirmedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		PickupDate:      "2025-06-01",
		PickupTime:      "10:00",
		PickupLocation:  "A",
		DropoffLocation: "B",
		PhoneNumber:     "+15551234567",
		Email:           "a@b.com",
		SelectedCar:     &CarSelection{ID: 1, Name: "Sedan", Price: "100"},
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, testLogger(), "booking-events", WithNotificationsTopic("notifications"))

	userID := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == userID && b.CarName == "Sedan" && b.PickupTime == "10:00"
	})).Return(nil)
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, "notifications", mock.Anything, mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), userID, validInput())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, "2025-06-01", created.PickupDate.Format(time.DateOnly))
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestCreate_ListsEveryMissingField(t *testing.T) {
	svc := NewBookingService(&MockBookingRepository{}, nil, testLogger(), "")

	input := validInput()
	input.PickupDate = ""
	input.PickupLocation = ""
	input.PhoneNumber = ""
	input.Email = ""

	_, err := svc.Create(context.Background(), uuid.New(), input)

	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"pickupDate", "pickupLocation", "phoneNumber", "email"}, vErr.MissingFields)
}

func TestCreate_RejectsIncompleteCarSelection(t *testing.T) {
	svc := NewBookingService(&MockBookingRepository{}, nil, testLogger(), "")

	for _, car := range []*CarSelection{
		nil,
		{Name: "Sedan", Price: "100"},
		{ID: 1, Price: "100"},
		{ID: 1, Name: "Sedan"},
	} {
		input := validInput()
		input.SelectedCar = car

		_, err := svc.Create(context.Background(), uuid.New(), input)

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Empty(t, vErr.MissingFields)
	}
}

func TestCreate_RejectsMalformedEmail(t *testing.T) {
	svc := NewBookingService(&MockBookingRepository{}, nil, testLogger(), "")

	for _, email := range []string{"plainaddress", "a@b", "a b@c.com", "@missing.local"} {
		input := validInput()
		input.Email = email

		_, err := svc.Create(context.Background(), uuid.New(), input)

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr, "email %q should be rejected", email)
	}
}

func TestCreate_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, testLogger(), "booking-events")

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Create(context.Background(), uuid.New(), validInput())
	assert.NoError(t, err)
}

func TestGet_ForeignBookingLooksAbsent(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, testLogger(), "")

	owner := uuid.New()
	other := uuid.New()
	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, UserID: owner}, nil)

	_, err := svc.Get(context.Background(), other, 7)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestUpdate_ForeignBookingIsForbidden(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, testLogger(), "")

	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, UserID: uuid.New()}, nil)

	input := UpdateBookingInput{
		PickupDate:      "2025-06-02",
		PickupTime:      "11:00",
		PickupLocation:  "A",
		DropoffLocation: "B",
		PhoneNumber:     "+15551234567",
		Email:           "a@b.com",
	}
	_, err := svc.Update(context.Background(), uuid.New(), 7, input)
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestUpdate_MissingBooking(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, testLogger(), "")

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrBookingNotFound)

	_, err := svc.Update(context.Background(), uuid.New(), 99, UpdateBookingInput{})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestUpdate_DoesNotTouchStatusOrCar(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, testLogger(), "")

	userID := uuid.New()
	current := &domain.Booking{
		ID: 7, UserID: userID, CarID: 3, CarName: "Limo", CarPrice: "5000",
		Status: domain.BookingStatusConfirmed,
	}
	repo.On("GetByID", mock.Anything, int64(7)).Return(current, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.CarID == 3 && b.CarName == "Limo" && b.Status == domain.BookingStatusConfirmed
	})).Return(current, nil)

	input := UpdateBookingInput{
		PickupDate:      "2025-06-02",
		PickupTime:      "11:00",
		PickupLocation:  "C",
		DropoffLocation: "D",
		PhoneNumber:     "+15550000000",
		Email:           "a@b.com",
	}
	_, err := svc.Update(context.Background(), userID, 7, input)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCancel_Success(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, testLogger(), "booking-events")

	userID := uuid.New()
	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, UserID: userID, Status: domain.BookingStatusPending}, nil)
	repo.On("UpdateStatus", mock.Anything, int64(7), domain.BookingStatusCancelled).
		Return(&domain.Booking{ID: 7, UserID: userID, Status: domain.BookingStatusCancelled}, nil)
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(nil)

	cancelled, err := svc.Cancel(context.Background(), userID, 7)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)
}

func TestCancel_SecondCancelIsAnError(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, testLogger(), "")

	userID := uuid.New()
	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, UserID: userID, Status: domain.BookingStatusCancelled}, nil)

	_, err := svc.Cancel(context.Background(), userID, 7)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpcoming_QueriesFromTodayMidnight(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, testLogger(), "")

	userID := uuid.New()
	repo.On("ListUpcoming", mock.Anything, userID, mock.MatchedBy(func(from time.Time) bool {
		h, m, sec := from.Clock()
		return h == 0 && m == 0 && sec == 0 && !from.After(time.Now())
	})).Return([]domain.Booking{}, nil)

	_, err := svc.Upcoming(context.Background(), userID)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCompletePastBookings_PublishesPerBooking(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, testLogger(), "booking-events")

	completed := []domain.Booking{
		{ID: 1, UserID: uuid.New(), Status: domain.BookingStatusCompleted},
		{ID: 2, UserID: uuid.New(), Status: domain.BookingStatusCompleted},
	}
	repo.On("CompleteConfirmedBefore", mock.Anything, mock.Anything).Return(completed, nil)
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(nil).Times(2)

	result, err := svc.CompletePastBookings(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	producer.AssertExpectations(t)
}
