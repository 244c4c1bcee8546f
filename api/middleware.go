package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minhalawais/Stallion/internal/auth"
	"github.com/minhalawais/Stallion/internal/metrics"
)

const (
	ctxUserID  = "userID"
	ctxIsAdmin = "isAdmin"
)

// AuthMiddleware is the access gate for protected routes: a missing token is
// 401, a present but invalid or expired one is 403.
func AuthMiddleware(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "no token provided")
			return
		}

		claims, err := auth.ParseToken(jwtKey, tokenStr)
		if err != nil {
			newErrorResponse(c, http.StatusForbidden, "invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers whose token lacks the admin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, ok := c.Get(ctxIsAdmin)
		if !ok || !isAdmin.(bool) {
			newErrorResponse(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// bearerToken extracts the caller's token from the Authorization header,
// falling back to the authToken cookie set at login.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		return parts[1], true
	}
	if token, err := c.Cookie("authToken"); err == nil && token != "" {
		return token, true
	}
	return "", false
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
