package database

import (
	"fmt"

	"github.com/you/blogsvc/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQL drivers accepted by OpenSQL
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// OpenSQL creates a GORM connection for the given driver
func OpenSQL(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	switch driver {
	case DriverPostgres:
		return gorm.Open(postgres.Open(dsn), config)
	case DriverSQLite:
		return gorm.Open(sqlite.Open(dsn), config)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDriver, driver)
	}
}

// AutoMigrate creates the account and post tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Account{}); err != nil {
		return fmt.Errorf("failed to migrate accounts table: %w", err)
	}
	if err := db.AutoMigrate(&domain.Post{}); err != nil {
		return fmt.Errorf("failed to migrate posts table: %w", err)
	}
	return nil
}

// CloseSQL releases the pool behind a GORM handle
func CloseSQL(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
