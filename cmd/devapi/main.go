package main

import (
	"fmt"
	"os"

	"github.com/equitydash/equitydash/internal/config"
	"github.com/equitydash/equitydash/internal/devapi"
	"github.com/equitydash/equitydash/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Request logs are at info level
	level := cfg.Logging.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "info"
	}
	logger.Init(level, cfg.Logging.Format)
	log := logger.GetLogger()

	srv, err := devapi.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().Msg("Starting equitydash fixture API...")

	// Start HTTP server (this blocks)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
