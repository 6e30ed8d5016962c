package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/vrarcade/internal/config"
	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/spectate"
)

// The standalone landing page. It has no sessions of its own, so /ws answers 503;
// the SSH host serves the live feed.
func main() {
	settings := config.Load()
	logger := logging.New(os.Stderr, settings.LogLevel)

	hub, err := spectate.NewHub(nil, spectate.Options{
		SSHHost: settings.DisplayHost,
		SSHPort: settings.SSHPort,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to build page", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := spectate.Serve(ctx, settings.WebAddr, hub.Handler(), logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
