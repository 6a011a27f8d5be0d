// Package main provides the entry point for the Shenava client core. It
// boots every service the UI shell binds to and runs until interrupted.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/shenavaapp/shenava-client/internal/di"
	"github.com/shenavaapp/shenava-client/internal/di/providers"
	"github.com/shenavaapp/shenava-client/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap client core: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down client core gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The stores use wrapper handles; close them explicitly in case the
	// container missed them.
	if kv, err := do.Invoke[*providers.KVStoreHandle](injector); err == nil {
		if err := kv.Shutdown(); err != nil {
			log.Error("Failed to close KV store", "error", err)
		}
	}
	if ledger, err := do.Invoke[*providers.LedgerStoreHandle](injector); err == nil {
		if err := ledger.Shutdown(); err != nil {
			log.Error("Failed to close download ledger", "error", err)
		}
	}

	log.Info("Goodbye")
}
