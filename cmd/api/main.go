// Package main provides the entry point for the LinkHive server application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/linkhive/linkhive-server/internal/config"
	"github.com/linkhive/linkhive-server/internal/di"
	"github.com/linkhive/linkhive-server/internal/di/providers"
	"github.com/linkhive/linkhive-server/internal/logger"
	"github.com/linkhive/linkhive-server/internal/service"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// One-shot transfer modes run against the database and exit
	// without starting the HTTP server.
	if cfg.TransferRequested() {
		runTransfers(injector, cfg)
		return
	}

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The store uses a wrapper type, so close it explicitly.
	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		log.Info("Closing database...")
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		} else {
			log.Info("Database closed successfully")
		}
	}

	log.Info("Goodbye")
}

// runTransfers executes the requested one-shot imports and exports.
func runTransfers(injector *do.RootScope, cfg *config.Config) {
	log := do.MustInvoke[*logger.Logger](injector)
	transfer := do.MustInvoke[*service.TransferService](injector)
	ctx := context.Background()

	defer func() {
		if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
			if err := storeHandle.Shutdown(); err != nil {
				log.Error("Failed to close database", "error", err)
			}
		}
	}()

	if path := cfg.Transfer.ImportPath; path != "" {
		f, err := os.Open(path) //#nosec G304 -- import path from user input is expected
		if err != nil {
			log.Fatal("Failed to open import file", "path", path, "error", err)
		}

		summary, err := transfer.ImportJSON(ctx, f)
		_ = f.Close() //nolint:errcheck // read-only file
		if err != nil {
			log.Fatal("Import failed", "path", path, "error", err)
		}

		log.Info("Import complete",
			"path", path,
			"imported", summary.Imported,
			"skipped", summary.Skipped,
			"total", summary.Total,
		)
	}

	if path := cfg.Transfer.ExportJSONPath; path != "" {
		if err := exportTo(ctx, path, transfer.ExportJSON); err != nil {
			log.Fatal("JSON export failed", "path", path, "error", err)
		}
		log.Info("JSON export complete", "path", path)
	}

	if path := cfg.Transfer.ExportHTMLPath; path != "" {
		if err := exportTo(ctx, path, transfer.ExportHTML); err != nil {
			log.Fatal("HTML export failed", "path", path, "error", err)
		}
		log.Info("HTML export complete", "path", path)
	}
}

// exportTo writes one export format to a file.
func exportTo(ctx context.Context, path string, write func(context.Context, io.Writer) error) error {
	f, err := os.Create(path) //#nosec G304 -- export path from user input is expected
	if err != nil {
		return err
	}
	if err := write(ctx, f); err != nil {
		_ = f.Close() //nolint:errcheck // already failing
		return err
	}
	return f.Close()
}
