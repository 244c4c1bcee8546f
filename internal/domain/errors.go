package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("a user with the same email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrNotOwner           = errors.New("booking belongs to another user")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)
