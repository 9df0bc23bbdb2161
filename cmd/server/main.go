// Package main implements the entry point for the CaseFlow API server
// which tracks case-numbered tasks and serves them over a JSON REST API.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/caseflow/caseflow-api/internal/config"
	"github.com/caseflow/caseflow-api/internal/platform/logger"
)

// main wires configuration, logging, the database connection and the HTTP
// server together. With -migrate set it runs the requested migration command
// and exits instead of serving.
func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version, create) and exit")
	migrationName := flag.String("migration-name", "",
		"name for the new migration file, used with -migrate create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd, *migrationName); err != nil {
			slog.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		slog.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database connection", "error", closeErr)
		}
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
