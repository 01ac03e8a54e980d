package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"checkout-session-service/internal/app"
	"checkout-session-service/internal/config"
	"checkout-session-service/internal/payments/stripe"
	"checkout-session-service/pkg/logger"
	"checkout-session-service/pkg/validator"
)

func main() {
	logger.Init()
	logger.Info("Starting checkout session service", nil)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables", nil)
	}

	cfg := config.New()
	if cfg.IsProduction() {
		logger.UseJSON()
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(err, "Invalid configuration", nil)
		os.Exit(1)
	}
	validator.Init()

	switch {
	case stripe.IsPublishableKey(cfg.StripeKey):
		logger.Warn("Stripe key looks like a publishable key; session creation will fail", map[string]interface{}{"env": cfg.StripeKeyEnv})
	case !stripe.IsSecretKey(cfg.StripeKey):
		logger.Warn("Stripe key has an unexpected format", map[string]interface{}{"env": cfg.StripeKeyEnv})
	default:
		logger.Info("Stripe key loaded", map[string]interface{}{"test_mode": stripe.IsTestKey(cfg.StripeKey)})
	}

	provider, err := stripe.NewProvider(cfg.StripeKey, stripe.Options{APIBase: cfg.StripeAPIBase})
	if err != nil {
		logger.Error(err, "Failed to initialize payment provider", nil)
		os.Exit(1)
	}

	application, err := app.New(cfg, provider)
	if err != nil {
		logger.Error(err, "Failed to initialize application", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "Failed to start server", nil)
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		logger.Error(err, "Server error occurred, initiating shutdown", nil)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "Server forced to shutdown", nil)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully", nil)
}
