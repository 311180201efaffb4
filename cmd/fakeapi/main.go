package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/fakeapi"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(loggerConfig(cfg))
	defer appLogger.Sync()

	srv := fakeapi.New(fakeapi.Config{
		Prefix:    cfg.API.Prefix,
		URLPrefix: cfg.FakeAPI.URLPrefix,
	}, appLogger)
	srv.SeedDemo()

	httpServer := &http.Server{
		Addr:              cfg.FakeAPI.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting fake back-office API", zap.String("addr", cfg.FakeAPI.Addr), zap.String("prefix", cfg.API.Prefix))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("Shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func loggerConfig(cfg *config.Config) *logger.ZapLoggerConfig {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	return logConfig
}
