package main

import (
	"fmt"

	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/mantonx/filmadmin/internal/modules/modulemanager"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	// Register modules
	_ "github.com/mantonx/filmadmin/internal/modules/catalogmodule"
)

// bootstrap loads the configuration, configures logging and opens the
// database.
func bootstrap(cmd *cli.Command) (*config.Config, *gorm.DB, error) {
	path := cmd.String("config")
	if err := config.Load(path); err != nil {
		return nil, nil, fmt.Errorf("load config %q: %w", path, err)
	}
	cfg := config.Get()

	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
	if path != "" {
		logger.Info("configuration loaded", "path", path)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info("database opened", "type", cfg.Database.Type)
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}

func modules() *modulemanager.ModuleRegistry {
	return modulemanager.Registry
}
