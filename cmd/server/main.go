package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "voting-service/docs"
	"voting-service/internal/config"
	"voting-service/internal/platform/logger"
	"voting-service/internal/server"
)

// @title           Voting Service API
// @version         1.0
// @description     Cast votes for a choice and read the aggregated counts.
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, log).Run(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
