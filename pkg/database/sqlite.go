package database

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a SQLite database file with foreign keys enforced
func NewSQLiteDB(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is not set")
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), gormConfig())
	if err != nil {
		return nil, err
	}

	return db, nil
}

// sqliteDSN appends the pragmas every connection needs
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
