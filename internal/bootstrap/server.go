package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhalawais/Stallion/api"
	"github.com/minhalawais/Stallion/config"
	"github.com/minhalawais/Stallion/internal/service/accounts"
	"github.com/minhalawais/Stallion/internal/service/booking"
	"github.com/minhalawais/Stallion/internal/service/fleet"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, accountSvc accounts.AccountUseCase, bookingSvc booking.BookingUseCase, fleetSvc fleet.FleetUseCase) error {
	router := newRouter(cfg, log, accountSvc, bookingSvc, fleetSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, log *slog.Logger, accountSvc accounts.AccountUseCase, bookingSvc booking.BookingUseCase, fleetSvc fleet.FleetUseCase) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), api.MetricsMiddleware())

	jwtKey := []byte(cfg.Auth.JWTSecret)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	authHandler := api.NewAuthHandler(accountSvc, jwtKey, tokenTTL, cfg.Env == "prod", log)
	bookingHandler := api.NewBookingHandler(bookingSvc, log)
	fleetHandler := api.NewFleetHandler(fleetSvc, log)
	userHandler := api.NewUserHandler(accountSvc, log)

	authHandler.Register(router.Group("/auth"))
	fleetHandler.Register(router.Group("/fleet"))

	protected := router.Group("/api")
	protected.Use(api.AuthMiddleware(jwtKey))
	bookingHandler.Register(protected, api.RequireAdmin())

	user := router.Group("/user")
	user.Use(api.AuthMiddleware(jwtKey))
	userHandler.Register(user)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
