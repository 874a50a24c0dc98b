package main

import (
	"context"

	"github.com/weatherfav/internal/database"
	"github.com/weatherfav/internal/logging"
)

func runMigrate(ctx context.Context, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	defer logging.Close()

	db, err := database.Open(&cfg.Database, false)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	version, err := db.Version(ctx)
	if err != nil {
		return err
	}
	logging.Info("database %s at schema version %d", db.Driver(), version)
	return nil
}
