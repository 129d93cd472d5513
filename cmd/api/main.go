// Hoyo en Uno payments backend
//
// This is the main entry point for the booking payment service. It wires up
// all dependencies and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hoyoenuno/hoyo-payments/config"
	"github.com/hoyoenuno/hoyo-payments/internal/adapters/mercadopago"
	"github.com/hoyoenuno/hoyo-payments/internal/adapters/postgres"
	"github.com/hoyoenuno/hoyo-payments/internal/api"
	"github.com/hoyoenuno/hoyo-payments/internal/core/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"environment", cfg.Payments.Environment,
		"base_url", cfg.Payments.PublicBaseURL())

	ctx := context.Background()

	pool, closePool, err := postgres.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer closePool()

	// Wire up dependencies (manual dependency injection)
	//
	// Infrastructure layer
	gateway, err := mercadopago.NewAdapter(cfg.Payments)
	if err != nil {
		logger.Error("failed to initialize Mercado Pago client", "error", err)
		os.Exit(1)
	}
	reservations := postgres.NewReservationStore(pool)
	memberships := postgres.NewMembershipStore(pool)
	catalog := postgres.NewMembershipCatalog(pool)

	// Service layer
	checkout := service.NewCheckoutService(
		gateway, reservations, memberships, catalog,
		cfg.Payments.CheckoutTimeout, logger,
	)
	reconcile := service.NewReconcileService(reservations, memberships, logger)

	// API layer
	handler := api.NewHandler(checkout, reconcile, gateway, logger)
	router := api.SetupRouter(handler, cfg.Server.GinMode, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
