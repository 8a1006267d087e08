package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the store selected by cfg.Type and applies pool settings.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dsn := cfg.DSN()
		if dsn == "" {
			return nil, fmt.Errorf("sqlite database path is not set")
		}
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		dialector = sqlite.Open(withForeignKeys(dsn))
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, GormConfig(cfg.LogQueries))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logger.Info("database connected", "type", cfg.Type)
	return db, nil
}

// GormConfig returns the settings shared by every connection. Driver errors
// are translated so unique and foreign key violations surface as
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func GormConfig(logQueries bool) *gorm.Config {
	level := gormlogger.Warn
	if logQueries {
		level = gormlogger.Info
	}

	writer := logger.Named("gorm").StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(writer, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}

// Migrate creates or updates the catalog schema.
func Migrate(db *gorm.DB) error {
	joins := []struct {
		model interface{}
		field string
		join  interface{}
	}{
		{&Movie{}, "Genres", &GenreMovie{}},
		{&Genre{}, "Movies", &GenreMovie{}},
		{&Movie{}, "Companies", &CompanyMovie{}},
		{&Company{}, "Movies", &CompanyMovie{}},
	}
	for _, j := range joins {
		if err := db.SetupJoinTable(j.model, j.field, j.join); err != nil {
			return fmt.Errorf("failed to set up join table for %T.%s: %w", j.model, j.field, err)
		}
	}

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// HealthCheck pings the underlying connection pool.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Stats summarises the connection pool for status endpoints.
func Stats(db *gorm.DB) map[string]interface{} {
	sqlDB, err := db.DB()
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	s := sqlDB.Stats()
	return map[string]interface{}{
		"open_connections": s.OpenConnections,
		"in_use":           s.InUse,
		"idle":             s.Idle,
		"wait_count":       s.WaitCount,
		"max_open":         s.MaxOpenConnections,
	}
}

// withForeignKeys turns on SQLite's foreign key enforcement, which is off by
// default per connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	if dsn == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
