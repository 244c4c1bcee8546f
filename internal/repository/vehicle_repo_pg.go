package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhalawais/Stallion/internal/domain"
)

type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type PGVehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &PGVehicleRepository{db: db}
}

func (r *PGVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, price, transmission, seats, luggage, year FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Price, &v.Transmission, &v.Seats, &v.Luggage, &v.Year); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *PGVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, price, transmission, seats, luggage, year FROM vehicles WHERE id=$1`, id)
	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.Name, &v.Price, &v.Transmission, &v.Seats, &v.Luggage, &v.Year); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

var _ VehicleRepository = (*PGVehicleRepository)(nil)
