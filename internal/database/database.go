package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/litwise-books/internal/config"
	"github.com/mrlokans/litwise-books/internal/entities"
	"github.com/mrlokans/litwise-books/internal/logging"
)

const pingTimeout = 5 * time.Second

type Database struct {
	DB *gorm.DB
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// NewDatabase connects, verifies the connection and migrates the schema.
func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return Open(dialector, cfg.LogLevel)
}

// Open is NewDatabase for an already built dialector.
func Open(dialector gorm.Dialector, logLevel string) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Book{}); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("Database initialized", "dialect", dialector.Name())

	return database, nil
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	slog.Info("Database connection closed")
	return nil
}
