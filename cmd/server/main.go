// File: cmd/server/main.go
// Project: mstnet
// Description: MST compute server entry point.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aharonba/mstnet/internal/config"
	"github.com/Aharonba/mstnet/internal/logger"
	"github.com/Aharonba/mstnet/internal/mstserver"
)

var log = logger.WithComponent("main")

func main() {
	var (
		configFile = flag.String("config", "", "Path to YAML configuration file (optional)")
		host       = flag.String("host", "", "Listen host, overrides config file")
		port       = flag.Int("port", 0, "Listen port, overrides config file (0 = use config/default)")
		mode       = flag.String("mode", "", "Concurrency core for SolveMST replies: lf or pipeline")
		logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		logFile    = flag.String("log-file", "", "Log file path (empty for stdout only)")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile, *configFile != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(&cfg, *host, *port, *mode)

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		ToStdout:   true,
		WithCaller: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	log.Info("mstnet server starting: host=%s port=%d mode=%s", cfg.Host, cfg.Port, cfg.DefaultMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	srv := mstserver.NewServer(cfg)
	if err := srv.Start(ctx); err != nil {
		log.Fatal("server error: %v", err)
	}

	log.Info("server shutdown complete")
}

func applyOverrides(cfg *config.Config, host string, port int, mode string) {
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if mode != "" {
		parsed, err := config.ParseMode(mode)
		if err != nil {
			log.Fatal("invalid --mode: %v", err)
		}
		cfg.DefaultMode = parsed
	}
}
