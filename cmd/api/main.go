package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderdesk/internal/auth"
	"orderdesk/internal/config"
	"orderdesk/internal/database"
	"orderdesk/internal/handler"
	"orderdesk/internal/invoice"
	"orderdesk/internal/middleware"
	"orderdesk/internal/router"
	"orderdesk/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("store", cfg.Store.Backend).Msg("starting orderdesk API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orderRepo, closeStore, err := database.OpenOrderStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, err := auth.NewSessionManager(cfg.Auth.AdminPasswordHash, []byte(cfg.Auth.SessionSecret), logger)
	if err != nil {
		return fmt.Errorf("failed to initialise sessions: %w", err)
	}

	archiver := newArchiver(ctx, cfg, logger)
	formatter := invoice.NewFormatter(invoice.Header{
		ShopName: cfg.Invoice.ShopName,
		Location: cfg.Invoice.ShopLocation,
	})

	orderService := service.NewOrderService(orderRepo, logger)

	orderHandler := handler.NewOrderHandler(orderService, formatter, archiver, logger)
	authHandler := handler.NewAuthHandler(sessions, logger)
	intakeLimiter := middleware.NewRateLimiter(cfg.Intake.RateLimit, cfg.Intake.Burst)

	mux := router.New(orderHandler, authHandler, sessions, intakeLimiter, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newArchiver archives invoices to S3 when enabled, always keeping a local copy as fallback.
func newArchiver(ctx context.Context, cfg *config.Config, logger zerolog.Logger) invoice.Archiver {
	local := invoice.NewFileArchiver(cfg.Invoice.Dir, logger)
	if !cfg.S3.Enabled {
		logger.Info().Str("dir", cfg.Invoice.Dir).Msg("archiving invoices to local file system (S3 disabled)")
		return local
	}

	s3Archiver, err := invoice.NewS3Archiver(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 archiver, falling back to local file system only")
		return local
	}
	return invoice.NewFallbackArchiver(s3Archiver, local, logger)
}
