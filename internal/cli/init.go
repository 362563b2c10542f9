// Package cli provides common initialization shared by cmd/paytrack and
// cmd/paytrack-worker.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"paytrack/internal/config"
	"paytrack/internal/storage"
)

// SetupLogger initializes structured logging at the given level and
// installs it as the process default.
func SetupLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Bootstrap loads the .env file and the configuration, installs the logger
// at the configured level, and validates the config. An unparseable
// LOG_LEVEL falls back to info here; Validate still reports the bad value.
// Exits the process on validation failure.
func Bootstrap() (*config.Config, *slog.Logger) {
	LoadEnvFile()

	cfg := config.Load()
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := SetupLogger(level)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// InitArchive opens the SQLite event archive at the given path.
// Returns the repository or exits the process on failure.
func InitArchive(logger *slog.Logger, dbPath string) *storage.ArchiveRepository {
	archive, err := storage.NewArchiveRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize event archive", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return archive
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()
	return ctx, cancel
}
