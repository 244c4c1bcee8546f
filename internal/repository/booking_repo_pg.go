package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhalawais/Stallion/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListUpcoming(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListCreatedToday(ctx context.Context) ([]domain.Booking, error)
	ListCreatedThisWeek(ctx context.Context) ([]domain.Booking, error)
	ListCreatedThisMonth(ctx context.Context) ([]domain.Booking, error)
	CompleteConfirmedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error)
}

const bookingColumns = `id, user_id, pickup_date, pickup_time, pickup_location, dropoff_location, passengers, luggage, phone_number, email, car_id, car_name, car_price, status, created_at, updated_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusPending
	return r.db.QueryRow(ctx, `INSERT INTO bookings (user_id, pickup_date, pickup_time, pickup_location, dropoff_location, passengers, luggage, phone_number, email, car_id, car_name, car_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		booking.UserID, booking.PickupDate, booking.PickupTime, booking.PickupLocation, booking.DropoffLocation,
		booking.Passengers, booking.Luggage, booking.PhoneNumber, booking.Email,
		booking.CarID, booking.CarName, booking.CarPrice, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListUpcoming(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE user_id=$1 AND pickup_date >= $2 AND status <> $3
		ORDER BY
			CASE
				WHEN status = 'confirmed' THEN 1
				WHEN status = 'pending' THEN 2
				ELSE 3
			END,
			pickup_date ASC,
			pickup_time ASC`, userID, from, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY pickup_date DESC, pickup_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET
			pickup_date=$1, pickup_time=$2, pickup_location=$3, dropoff_location=$4,
			passengers=$5, luggage=$6, phone_number=$7, email=$8, updated_at=now()
		WHERE id=$9
		RETURNING `+bookingColumns,
		booking.PickupDate, booking.PickupTime, booking.PickupLocation, booking.DropoffLocation,
		booking.Passengers, booking.Luggage, booking.PhoneNumber, booking.Email, booking.ID)
	updated, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	updated, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListCreatedToday(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE created_at::date = CURRENT_DATE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListCreatedThisWeek(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE created_at >= DATE_TRUNC('week', CURRENT_DATE)
		AND created_at < DATE_TRUNC('week', CURRENT_DATE) + INTERVAL '1 week'
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListCreatedThisMonth(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE created_at >= DATE_TRUNC('month', CURRENT_DATE)
		AND created_at < DATE_TRUNC('month', CURRENT_DATE) + INTERVAL '1 month'
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) CompleteConfirmedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE status=$2 AND pickup_date < $3
		RETURNING `+bookingColumns, domain.BookingStatusCompleted, domain.BookingStatusConfirmed, day)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.PickupDate, &b.PickupTime, &b.PickupLocation, &b.DropoffLocation,
		&b.Passengers, &b.Luggage, &b.PhoneNumber, &b.Email, &b.CarID, &b.CarName, &b.CarPrice,
		&b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
