// Package store persists row fingerprints between runs so that changed
// rows can be told apart from new and unchanged ones. It uses GORM over
// the pure-Go SQLite driver.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the GORM connection with fingerprint operations.
type Store struct {
	db       *gorm.DB
	path     string
	readOnly bool
}

// Config holds database configuration options.
type Config struct {
	Path  string
	Debug bool
	// ReadOnly compares fingerprints without recording them.
	ReadOnly bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{Path: path}
}

// Open connects to the database at cfg.Path, creating it and its tables if needed.
// The path ":memory:" opens a private in-memory database.
func Open(cfg Config) (*Store, error) {
	dsn := cfg.Path

	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}

		// DELETE journal mode: WAL has visibility issues with the pure-Go driver
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)", cfg.Path)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	// one connection, so ":memory:" stays a single database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(connMaxLifetime(cfg.Path))

	if err := db.AutoMigrate(&Fingerprint{}, &Run{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, path: cfg.Path, readOnly: cfg.ReadOnly}, nil
}

// connMaxLifetime is zero, meaning unlimited, for ":memory:": recycling its
// only connection would drop the database.
func connMaxLifetime(path string) time.Duration {
	if path == ":memory:" {
		return 0
	}

	return time.Hour
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReadOnly reports whether comparisons leave the stored fingerprints untouched.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
