package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"kleincompress/internal/application"
	"kleincompress/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ui, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		cfg.Logger.Error("Failed to load UI assets", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.New(cfg, ui).Run(ctx); err != nil {
		cfg.Logger.Error("Application stopped", "error", err)
		os.Exit(1)
	}
}
