package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/minhalawais/Stallion/internal/service/fleet"
)

type FleetHandler struct {
	service fleet.FleetUseCase
	log     *slog.Logger
}

type vehicleResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Transmission string `json:"transmission"`
	Seats        int    `json:"seats"`
	Luggage      int    `json:"luggage"`
	Year         string `json:"year"`
}

func NewFleetHandler(service fleet.FleetUseCase, log *slog.Logger) *FleetHandler {
	return &FleetHandler{service: service, log: log}
}

func (h *FleetHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *FleetHandler) list(c *gin.Context) {
	vehicles, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleResponses(vehicles))
}

func (h *FleetHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

func toVehicleResponse(v *domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:           v.ID,
		Name:         v.Name,
		Price:        v.Price,
		Transmission: v.Transmission,
		Seats:        v.Seats,
		Luggage:      v.Luggage,
		Year:         v.Year,
	}
}

func toVehicleResponses(vehicles []domain.Vehicle) []vehicleResponse {
	out := make([]vehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, toVehicleResponse(&vehicles[i]))
	}
	return out
}
