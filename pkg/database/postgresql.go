package database

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormDB creates a new GORM PostgreSQL connection using the provided DSN
func NewGormDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}

	return db, nil
}

// gormConfig is shared by every dialect. Driver errors are left
// untranslated so constraint names reach the repository layer.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: false,
	}
}
