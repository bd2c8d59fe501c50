package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tattoo-studio/pkg/config"
	"tattoo-studio/pkg/logging"
	"tattoo-studio/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger, nil)
	if err != nil {
		log.Fatalf("Failed to assemble server: %v", err)
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
