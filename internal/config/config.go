package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Client
	APIBaseURL  string
	Currency    string
	HTTPTimeout time.Duration
	LogFile     string
	LogLevel    string

	// Dev server
	Port   string
	DBPath string
}

func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("FINTRACK_API_URL", "http://localhost:8000"),
		Currency:    getEnv("FINTRACK_CURRENCY", "ILS"),
		HTTPTimeout: getEnvDuration("FINTRACK_HTTP_TIMEOUT", 10*time.Second),
		LogFile:     getEnv("FINTRACK_LOG_FILE", "./fintrack.log"),
		LogLevel:    getEnv("FINTRACK_LOG_LEVEL", "info"),

		Port:   getEnv("PORT", "8000"),
		DBPath: getEnv("FINTRACK_DB_PATH", "./data/fintrack.db"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if len(c.Currency) != 3 {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': must be a three-letter ISO code", c.Currency))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 1 minute", c.HTTPTimeout))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
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
