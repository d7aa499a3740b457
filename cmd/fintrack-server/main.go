package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/server"
	"fintrack/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		applog.New(applog.Config{Component: "server"}).Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := applog.New(applog.Config{
		Component: "server",
		Level:     applog.ParseLevel(cfg.LogLevel),
	})

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open storage", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	if created, _, err := store.SeedDefaultCategories(context.Background()); err != nil {
		logger.Error("Failed to seed default categories", "error", err)
		os.Exit(1)
	} else if len(created) > 0 {
		logger.Info("Seeded default categories", "created", len(created))
	}

	srv := server.NewServer(":"+cfg.Port, store, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting fintrack server", "port", cfg.Port, "db", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
