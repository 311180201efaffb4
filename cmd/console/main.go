package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "warn",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, appLogger, os.Stdout, os.Stderr)
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}
