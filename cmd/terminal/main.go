// Package main provides the entry point for the Base TI OSINT terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/basetic/osint-terminal/internal/di"
	"github.com/basetic/osint-terminal/internal/di/providers"
	"github.com/basetic/osint-terminal/internal/logger"
	"github.com/basetic/osint-terminal/internal/offline"
)

// precacheAssets are warmed at startup so the terminal stays usable offline.
var precacheAssets = []string{
	"https://cdn.tailwindcss.com",
	"https://fonts.googleapis.com/css2?family=Inter:wght@300;400;600;700;900&display=swap",
}

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap terminal: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Warm the offline cache in the background
	fetcher := do.MustInvoke[*offline.Fetcher](injector)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		fetcher.Precache(ctx, precacheAssets)
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down terminal gracefully...")

	// State flushes pending edits before the store closes underneath it.
	if stateHandle, err := do.Invoke[*providers.StateHandle](injector); err == nil {
		if err := stateHandle.Shutdown(); err != nil {
			log.Error("Failed to flush state", "error", err)
		}
	}

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		log.Info("Closing database...")
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		} else {
			log.Info("Database closed successfully")
		}
	}

	log.Info("Terminal offline. Até logo.")
}
