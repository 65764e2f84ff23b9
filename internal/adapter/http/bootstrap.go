package http

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	database "crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/adapter/http/routes"
	"crmchat/internal/core/port"
	"crmchat/internal/core/telemetry"
	"crmchat/pkg/config"
)

// NewServer wires the container into a router and an http.Server with the
// configured timeouts. It does not start listening.
func NewServer(db *database.DB, probe port.Telemetry, metrics *telemetry.AppMetrics, logger *config.LokiLogger, cfg *config.AppConfig) *http.Server {
	container := NewContainer(db, probe, logger, cfg.ExposeInternalErrors)
	router := routes.SetupRouterWithConfig(container.Handlers(), metrics, logger, cfg)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// StartServer serves until SIGINT/SIGTERM or ctx is done, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func StartServer(ctx context.Context, srv *http.Server, logger *config.LokiLogger, cfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
			zap.Bool("https_enforced", cfg.EnforceHTTPS))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Logger.Error("Server failed to start", zap.Error(err))
			return err
		}

		return nil
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server shutdown failed", zap.Error(err))
		return err
	}

	return nil
}
