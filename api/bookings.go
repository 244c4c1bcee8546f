package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/minhalawais/Stallion/internal/metrics"
	"github.com/minhalawais/Stallion/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
	log     *slog.Logger
}

func NewBookingHandler(service booking.BookingUseCase, log *slog.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

// Register wires the booking routes. The aggregation routes additionally pass
// through adminOnly; everything else is scoped to the caller's own rows.
func (h *BookingHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/current", h.current)
	router.GET("/bookings/all", h.listOwn)
	router.GET("/bookings/every", adminOnly, h.every)
	router.GET("/bookings/today", adminOnly, h.today)
	router.GET("/bookings/week", adminOnly, h.week)
	router.GET("/bookings/month", adminOnly, h.month)
	router.GET("/bookings/:id", h.get)
	router.PUT("/bookings/:id", h.update)
	router.PUT("/bookings/:id/cancel", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	metrics.BookingsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": toBookingResponse(created),
	})
}

func (h *BookingHandler) current(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	bookings, err := h.service.Upcoming(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings, true))
}

func (h *BookingHandler) listOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	bookings, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings, false))
}

func (h *BookingHandler) get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	found, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req booking.UpdateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": toBookingResponse(updated),
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	metrics.BookingsCancelled.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": toBookingResponse(cancelled),
	})
}

func (h *BookingHandler) every(c *gin.Context) {
	h.aggregate(c, h.service.ListAll)
}

func (h *BookingHandler) today(c *gin.Context) {
	h.aggregate(c, h.service.ListToday)
}

func (h *BookingHandler) week(c *gin.Context) {
	h.aggregate(c, h.service.ListThisWeek)
}

func (h *BookingHandler) month(c *gin.Context) {
	h.aggregate(c, h.service.ListThisMonth)
}

func (h *BookingHandler) aggregate(c *gin.Context, list func(ctx context.Context) ([]domain.Booking, error)) {
	bookings, err := list(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings, false))
}
