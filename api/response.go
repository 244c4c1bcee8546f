package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhalawais/Stallion/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Error: errMessage})
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is logged server-side and surfaced as a generic internal error.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		if len(vErr.MissingFields) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":         vErr.Message,
				"missingFields": vErr.MissingFields,
			})
			return
		}
		newErrorResponse(c, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, domain.ErrEmailTaken):
		newErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrVehicleNotFound):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotOwner):
		newErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrNoFieldsToUpdate):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}

type bookingResponse struct {
	ID              int64  `json:"id"`
	UserID          string `json:"user_id"`
	PickupDate      string `json:"pickup_date"`
	PickupTime      string `json:"pickup_time"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	Passengers      *int   `json:"passengers"`
	Luggage         *int   `json:"luggage"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	CarID           int64  `json:"car_id"`
	CarName         string `json:"car_name"`
	CarPrice        string `json:"car_price"`
	Status          string `json:"status"`
	StatusText      string `json:"statusText,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID.String(),
		PickupDate:      b.PickupDate.Format(time.DateOnly),
		PickupTime:      b.PickupTime,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		Passengers:      b.Passengers,
		Luggage:         b.Luggage,
		PhoneNumber:     b.PhoneNumber,
		Email:           b.Email,
		CarID:           b.CarID,
		CarName:         b.CarName,
		CarPrice:        b.CarPrice,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []domain.Booking, withStatusText bool) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp := toBookingResponse(&bookings[i])
		if withStatusText {
			resp.StatusText = domain.StatusText(bookings[i].Status)
		}
		out = append(out, resp)
	}
	return out
}
