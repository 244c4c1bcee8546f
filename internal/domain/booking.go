package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// StatusText returns the label shown to customers for a raw status value.
func StatusText(status BookingStatus) string {
	switch status {
	case BookingStatusConfirmed:
		return "Confirmed"
	case BookingStatusPending:
		return "Pending Confirmation"
	case BookingStatusInProgress:
		return "In Progress"
	case BookingStatusCompleted:
		return "Completed"
	case BookingStatusCancelled:
		return "Cancelled"
	default:
		return string(status)
	}
}

type Booking struct {
	ID              int64
	UserID          uuid.UUID
	PickupDate      time.Time
	PickupTime      string
	PickupLocation  string
	DropoffLocation string
	Passengers      *int
	Luggage         *int
	PhoneNumber     string
	Email           string
	// Vehicle snapshot captured at booking time, never re-joined to the
	// live catalog.
	CarID     int64
	CarName   string
	CarPrice  string
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
