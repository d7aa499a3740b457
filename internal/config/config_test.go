package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.Currency != "ILS" {
		t.Fatalf("Currency = %s", cfg.Currency)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FINTRACK_API_URL", "https://finance.example.com")
	t.Setenv("FINTRACK_CURRENCY", "EUR")
	t.Setenv("FINTRACK_HTTP_TIMEOUT", "5s")

	cfg := Load()
	if cfg.APIBaseURL != "https://finance.example.com" {
		t.Fatalf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.Currency != "EUR" {
		t.Fatalf("Currency = %s", cfg.Currency)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad scheme", func(c *Config) { c.APIBaseURL = "ftp://example.com" }, "scheme"},
		{"bad currency", func(c *Config) { c.Currency = "SHEKELS" }, "currency"},
		{"timeout too small", func(c *Config) { c.HTTPTimeout = 100 * time.Millisecond }, "timeout"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log level"},
		{"bad port", func(c *Config) { c.Port = "http" }, "port"},
		{"empty db path", func(c *Config) { c.DBPath = "" }, "database path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
