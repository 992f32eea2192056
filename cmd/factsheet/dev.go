package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/factsheet/internal/server"
	"github.com/ternarybob/factsheet/internal/site"
)

func runDev(args []string) {
	fs := flag.NewFlagSet("dev", flag.ExitOnError)
	var configFiles configPaths
	fs.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	fs.Var(&configFiles, "c", "Configuration file path (shorthand)")
	port := fs.Int("port", 0, "Server port (overrides config)")
	portP := fs.Int("p", 0, "Server port (shorthand, overrides config)")
	host := fs.String("host", "", "Server host (overrides config)")
	fs.Parse(args)

	// Merge port flags (shorthand takes precedence)
	finalPort := *port
	if *portP != 0 {
		finalPort = *portP
	}

	setup(configFiles, finalPort, *host)

	generator, err := site.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize generator")
	}

	// Full build before serving so every page exists
	summary, err := generator.Build(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Initial site build failed")
	}
	logger.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Initial build complete")

	srv, err := server.New(config, generator, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize development server")
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Fatal().Str("panic", fmt.Sprintf("%v", r)).Msg("Server goroutine panicked")
			}
		}()

		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Development server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Interrupt signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
