package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pageza/tastyshare/backend/config"
	"github.com/pageza/tastyshare/backend/internal/database"
	"github.com/pageza/tastyshare/backend/internal/logging"
)

// migrate brings the configured database up to the current schema. It only
// ever adds tables, columns and indexes, so it is safe to run repeatedly.
func main() {
	check := flag.Bool("check", false, "Only report whether the schema is reachable")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close(db)

	if *check {
		logger.Info("Database reachable", slog.String("driver", cfg.DBDriver))
		return
	}

	if err := database.Migrate(db, logger); err != nil {
		logger.Error("Migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Schema is up to date", slog.String("driver", cfg.DBDriver))
}
