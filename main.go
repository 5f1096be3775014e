package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"huddle-relay-server/config"
	"huddle-relay-server/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	config.SetupLogger(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg).Run(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
