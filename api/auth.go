package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhalawais/Stallion/internal/auth"
	"github.com/minhalawais/Stallion/internal/metrics"
	"github.com/minhalawais/Stallion/internal/service/accounts"
)

type AuthHandler struct {
	service      accounts.AccountUseCase
	jwtKey       []byte
	tokenTTL     time.Duration
	secureCookie bool
	log          *slog.Logger
}

func NewAuthHandler(service accounts.AccountUseCase, jwtKey []byte, tokenTTL time.Duration, secureCookie bool, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		jwtKey:       jwtKey,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
		log:          log,
	}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/signup", h.signup)
	router.POST("/login", h.login)
	router.GET("/verify", h.verify)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req accounts.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created",
		"userId":  user.ID.String(),
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginFailures.Inc()
		respondError(c, h.log, err)
		return
	}

	// Mirror the token into an http-only cookie alongside the JSON body.
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("authToken", result.Token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"userId":  result.User.ID.String(),
		"isAdmin": result.User.IsAdmin,
		"token":   result.Token,
	})
}

// verify checks a bearer token without touching any downstream state, so a
// client can validate a stored token before rendering protected views.
func (h *AuthHandler) verify(c *gin.Context) {
	tokenStr, ok := bearerToken(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "no token provided")
		return
	}

	claims, err := auth.ParseToken(h.jwtKey, tokenStr)
	if err != nil {
		newErrorResponse(c, http.StatusForbidden, "invalid or expired token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  true,
		"userId": claims.UserID.String(),
	})
}
