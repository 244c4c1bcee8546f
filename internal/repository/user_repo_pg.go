package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhalawais/Stallion/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName *string) (*domain.User, error)
	SetAdmin(ctx context.Context, email string, isAdmin bool) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (email, password_hash, first_name, last_name, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, email, password_hash, first_name, last_name, is_admin, created_at FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, email, password_hash, first_name, last_name, is_admin, created_at FROM users WHERE id=$1`, id)
	return scanUser(row)
}

// UpdateNames overwrites only the name fields that are non-nil.
func (r *PGUserRepository) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName *string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name)
		WHERE id=$3
		RETURNING id, email, password_hash, first_name, last_name, is_admin, created_at`,
		firstName, lastName, id)
	return scanUser(row)
}

func (r *PGUserRepository) SetAdmin(ctx context.Context, email string, isAdmin bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET is_admin=$1 WHERE email=$2`, isAdmin, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
