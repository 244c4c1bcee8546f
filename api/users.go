package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/minhalawais/Stallion/internal/service/accounts"
)

type UserHandler struct {
	service accounts.AccountUseCase
	log     *slog.Logger
}

type profileResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func NewUserHandler(service accounts.AccountUseCase, log *slog.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/profile", h.profile)
	router.PUT("/profile", h.updateProfile)
}

func (h *UserHandler) profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(user))
}

func (h *UserHandler) updateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(user))
}

// The password hash never leaves the service layer.
func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
