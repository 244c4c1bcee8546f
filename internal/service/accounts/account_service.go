package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minhalawais/Stallion/internal/auth"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/minhalawais/Stallion/internal/repository"
)

type AccountUseCase interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName *string) (*domain.User, error)
}

type SignupInput struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginResult struct {
	Token string
	User  *domain.User
}

type AccountService struct {
	users    repository.UserRepository
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewAccountService(users repository.UserRepository, jwtKey []byte, tokenTTL time.Duration) *AccountService {
	return &AccountService{
		users:    users,
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
	}
}

func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	const op = "accounts.Signup"

	missing := make([]string, 0, 2)
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Message: "missing required fields", MissingFields: missing}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Login deliberately returns the same error for an unknown email and a wrong
// password, so callers cannot probe which addresses have accounts.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "accounts.Login"

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !auth.CheckPasswordHash(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtKey, user.ID, user.IsAdmin, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (s *AccountService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName *string) (*domain.User, error) {
	const op = "accounts.UpdateProfile"

	if firstName == nil && lastName == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	user, err := s.users.UpdateNames(ctx, userID, firstName, lastName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

var _ AccountUseCase = (*AccountService)(nil)
