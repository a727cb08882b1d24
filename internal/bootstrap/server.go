package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tablebook/api"
	"tablebook/config"
	"tablebook/internal/service/guests"
	"tablebook/internal/service/reservations"
	"tablebook/internal/service/tables"
)

// Run builds the HTTP server around the three services and blocks until the
// context is canceled or the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
	reservationSvc reservations.ReservationUseCase,
	tableSvc tables.TableUseCase,
	guestSvc guests.GuestUseCase,
) error {
	engine := NewRouter(logger, reservationSvc, tableSvc, guestSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
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

// NewRouter wires the gin engine: middleware, resource routes and the
// not-found handler.
func NewRouter(
	logger zerolog.Logger,
	reservationSvc reservations.ReservationUseCase,
	tableSvc tables.TableUseCase,
	guestSvc guests.GuestUseCase,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), api.RequestID(), api.Logger(logger))

	api.NewReservationHandler(reservationSvc).Register(engine.Group("/reservations"))
	api.NewTableHandler(tableSvc).Register(engine.Group("/tables"))
	api.NewGuestHandler(guestSvc).Register(engine.Group("/guests"))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Path not found: " + c.Request.URL.Path})
	})

	return engine
}
