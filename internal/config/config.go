package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Payment file storage
	DataDir string

	// AMQP (optional; empty URL disables the event pipeline)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker archive
	SQLiteDBPath  string
	StatsInterval time.Duration

	// Google Sheets mirror (optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8081"),
		DataDir: getEnv("DATA_DIR", "./data/payments"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "paytrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "payment_events"),

		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/archive.db"),
		StatsInterval: getEnvDuration("STATS_INTERVAL", 5*time.Minute),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Payments"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, "data directory cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if strings.TrimSpace(c.SQLiteDBPath) == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	}

	if c.StatsInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid stats interval %v: must be at least 1 second", c.StatsInterval))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", s)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
