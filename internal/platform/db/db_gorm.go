// Package db opens the gorm database connection used by the holdings store.
package db

import (
	"fmt"
	"log/slog"
	"time"

	holdingadapters "portfolio_backend/internal/feature/holdings/adapters"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the database connection settings.
// When Host is empty the store falls back to a local SQLite file, which is
// the common single-user deployment.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	SQLitePath string
}

// OpenFunc opens a gorm connection for the given DSN. It exists so tests can
// substitute the real driver.
type OpenFunc func(dsn string) (*gorm.DB, error)

// BuildDSN builds a PostgreSQL DSN string from the config.
func BuildDSN(cfg Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
}

// ConnectWithRetry keeps opening the connection until it succeeds or the
// timeout elapses. Database containers often come up after the app does.
func ConnectWithRetry(dsn string, timeout time.Duration, open OpenFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %v: %w", timeout, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}
}

// Open connects to PostgreSQL when a host is configured, otherwise to the
// SQLite file at cfg.SQLitePath.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.Host != "" {
		dsn := BuildDSN(cfg)
		return ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		})
	}

	path := cfg.SQLitePath
	if path == "" {
		path = "portfolio.db"
	}
	return gorm.Open(gsqlite.Open(path), &gorm.Config{})
}

// Migrate creates or updates the holdings tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&holdingadapters.HoldingModel{},
		&holdingadapters.CashBalanceModel{},
	)
}
