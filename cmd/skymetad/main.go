package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudmesh-io/skymeta/internal/logger"
	"github.com/cloudmesh-io/skymeta/internal/telemetry"
	"github.com/cloudmesh-io/skymeta/pkg/config"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/api"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `skymetad - Metadata control plane for a multi-cloud object storage overlay

Usage:
  skymetad <command> [flags]

Commands:
  start    Start the metadata control plane server
  version  Show version information

Flags:
  --config string    Path to config file (default: $XDG_CONFIG_HOME/skymeta/config.yaml)

Examples:
  # Start with default config location
  skymetad start

  # Start with a custom config
  skymetad start --config /etc/skymeta/config.yaml

Environment Variables:
  Options present in the config file can be overridden using environment
  variables. Without a config file, environment variables are not read.
  Format: SKYMETA_<SECTION>_<KEY>

  Examples:
    SKYMETA_LOGGING_LEVEL=DEBUG
    SKYMETA_API_PORT=9090
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "start":
		runStart()
	case "help", "--help", "-h":
		fmt.Print(usage)
	case "version", "--version", "-v":
		fmt.Printf("skymetad %s (commit: %s, built: %s)\n", version, commit, date)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runStart() {
	startFlags := flag.NewFlagSet("start", flag.ExitOnError)
	configFile := startFlags.String("config", "", "Path to config file")
	if err := startFlags.Parse(os.Args[2:]); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, config.ToTelemetryConfig(cfg.Telemetry, version))
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	profilingShutdown, err := telemetry.InitProfiling(config.ToProfilingConfig(cfg.Telemetry.Profiling, version))
	if err != nil {
		log.Fatalf("failed to initialize profiling: %v", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	logger.Info("skymetad starting", "version", version, "commit", commit)
	logger.Info("log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	if telemetry.IsEnabled() {
		logger.Info("telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}

	metaStore, err := store.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to open metadata store: %v", err)
	}
	defer func() {
		if err := metaStore.Close(); err != nil {
			logger.Error("metadata store close error", "error", err)
		}
	}()
	logger.Info("metadata store ready", "type", cfg.Database.Type)

	server := api.NewServer(cfg.API, metaStore)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("skymetad is running", "port", server.Port())

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received, stopping gracefully")
		cancel()
		if err := <-serverDone; err != nil {
			logger.Error("server stopped with error", "error", err)
		}
	case err := <-serverDone:
		if err != nil {
			logger.Error("server exited unexpectedly", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("skymetad stopped")
}
