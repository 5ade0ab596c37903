package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database described by driver and url
func Open(driver, url string) (*gorm.DB, error) {
	switch driver {
	case DriverPostgres:
		return NewGormDB(url)
	case DriverSQLite:
		return NewSQLiteDB(url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
