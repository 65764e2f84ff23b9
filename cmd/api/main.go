package main

import (
	"context"
	"log"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	database "crmchat/internal/adapter/database/sqlite"
	server "crmchat/internal/adapter/http"
	"crmchat/internal/adapter/telemetry"
	"crmchat/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := config.NewLokiLogger(cfg.ServiceName, cfg.LokiURL)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := telemetry.NewContainer(ctx, telemetry.ConfigFrom(cfg), logger)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	defer tel.Shutdown(ctx)

	tel.Start()
	tel.AppMetrics.StartSystemMetrics(ctx)

	sqlLogger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("component", "database").
		Logger()

	db, err := database.Init(ctx, database.Config{
		Path:           cfg.DatabasePath,
		MaxOpenConns:   10,
		MaxIdleConns:   5,
		LogQueries:     cfg.SQLLogEnabled,
		Logger:         sqlLogger,
		TracerProvider: tel.TracerProvider,
	})

	if err != nil {
		logger.Logger.Fatal("Failed to initialize database",
			zap.String("path", cfg.DatabasePath),
			zap.Error(err))
	}

	defer db.Close()

	srv := server.NewServer(db, tel.NewTelemetryProbe(), tel.AppMetrics, logger, cfg)

	if err := server.StartServer(ctx, srv, logger, cfg); err != nil {
		logger.Logger.Error("Server stopped with error", zap.Error(err))
	}
}
