package db

import (
	"fmt"           // Error wrapping
	"os"            // Directory creation
	"path/filepath" // Path handling
	"time"          // Pool lifetimes

	"control_gastos/internal/config" // Application configuration

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger interface
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return open(mysql.Open(cfg.MySQLDSN()), cfg.IsProd, 10, time.Hour)
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return OpenSQLite(cfg.SQLitePath, cfg.IsProd)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}

// OpenSQLite opens a SQLite database. ":memory:" gives a private in-memory database.
func OpenSQLite(path string, quiet bool) (*gorm.DB, error) {
	// One connection: SQLite has a single writer and ":memory:" is per connection
	db, err := open(sqlite.Open(path), quiet, 1, 0)
	if err != nil {
		return nil, err
	}
	_ = db.Exec("PRAGMA foreign_keys = ON;").Error
	return db, nil
}

func open(dialector gorm.Dialector, quiet bool, maxOpen int, lifetime time.Duration) (*gorm.DB, error) {
	level := logger.Warn
	if quiet {
		level = logger.Silent
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		// Route GORM logs through logrus
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true, // Unique violations become gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(lifetime)
	return db, nil
}
