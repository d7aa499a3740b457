package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"fintrack/internal/api"
	"fintrack/internal/config"
	"fintrack/internal/dashboard"
	applog "fintrack/internal/log"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logger, closer, err := applog.NewFile(cfg.LogFile, "fintrack", applog.ParseLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger))

	logger.Info("Starting dashboard", "api", cfg.APIBaseURL, "currency", cfg.Currency)

	model := dashboard.New(client, cfg.Currency, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Dashboard crashed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
