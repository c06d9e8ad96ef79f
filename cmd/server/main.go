package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/signin/internal/config"
	"github.com/nfrund/signin/internal/logging"
	"github.com/nfrund/signin/internal/server"
)

func main() {
	cfg := config.New()
	logging.New()

	s, err := server.New(cfg, server.Options{})
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	s.RegisterRoutes()

	if err := s.Start(context.Background()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
