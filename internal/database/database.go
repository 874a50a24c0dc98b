// Package database opens the shared gorm connection pool and applies the
// embedded schema migrations.
package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/weatherfav/internal/config"
	"github.com/weatherfav/internal/database/migrations"
	"github.com/weatherfav/internal/logging"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Client owns the connection pool. It is created once at startup and handed
// to every repository constructor.
type Client struct {
	DB     *gorm.DB
	driver string
}

// Options tune the pool and gorm logging.
type Options struct {
	MaxIdleConns int
	MaxOpenConns int
	Verbose      bool
}

// Open connects using the database section of the config.
func Open(cfg *config.DatabaseConfig, verbose bool) (*Client, error) {
	if cfg.Driver == config.DriverSQLite {
		if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	return New(cfg.Driver, cfg.DSN(), Options{
		MaxIdleConns: cfg.MaxIdleConns,
		MaxOpenConns: cfg.MaxOpenConns,
		Verbose:      verbose,
	})
}

// New opens a pool for driver ("postgres" or "sqlite") and dsn.
func New(driver, dsn string, opts Options) (*Client, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	level := logger.Warn
	if opts.Verbose {
		level = logger.Info
	}
	gormLog := newGormLogger(logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if driver == config.DriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY and
		// keeps in-memory databases alive for the life of the pool.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(orDefault(opts.MaxIdleConns, 10))
		sqlDB.SetMaxOpenConns(orDefault(opts.MaxOpenConns, 100))
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Client{DB: db, driver: driver}, nil
}

// Driver reports which backend the pool talks to.
func (c *Client) Driver() string {
	return c.driver
}

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Migrate applies all pending migrations for the client's dialect.
func (c *Client) Migrate(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}

	dialect := "postgres"
	if c.driver == config.DriverSQLite {
		dialect = "sqlite3"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(logging.Printer{Tag: "MIGRATE"})
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, c.driver); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func (c *Client) Version(ctx context.Context) (int64, error) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return 0, err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	dialect := "postgres"
	if c.driver == config.DriverSQLite {
		dialect = "sqlite3"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

// Ping checks that the pool can reach the database.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsUniqueViolation reports whether err came from a unique constraint.
// Translated gorm errors are preferred; the string fallback covers drivers
// that wrap the error before gorm sees it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if isPgUniqueViolation(err) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err came from a foreign key check.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || isPgForeignKeyViolation(err) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
