package database

import (
	"fmt"

	"github.com/sangkips/salay-pos/internal/config"
	"github.com/sangkips/salay-pos/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured driver.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLiteDB(cfg)
	case "postgres", "postgresql":
		return NewPostgresDB(cfg)
	default:
		return nil, fmt.Errorf("database: unknown driver %q (use sqlite or postgres)", cfg.Driver)
	}
}

func gormConfig(cfg *config.DatabaseConfig) *gorm.Config {
	logLevel := logger.Warn
	if cfg.Log {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Transaction{},
		&entity.LineItem{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
