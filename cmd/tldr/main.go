package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ericseppanen999/TLDR-tech-app/internal/app"
	"github.com/ericseppanen999/TLDR-tech-app/internal/config"
	"github.com/ericseppanen999/TLDR-tech-app/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("error loading config: %s", err)
	}

	logger.Init(cfg.LoggerFormat, cfg.Debug)

	if err := app.Run(ctx, cfg); err != nil {
		slog.ErrorContext(ctx, "Digest run failed", "error", err)
		cancel()
		os.Exit(1)
	}
}
