package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/latoulicious/adventour/pkg/database/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned when a name and secret do not match
	ErrInvalidCredentials = errors.New("invalid trainer name or password")
)

// ConstraintKind names the storage rule a write violated
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintRestrict   ConstraintKind = "restrict"
)

// ConstraintError is returned when the storage layer rejects a write
type ConstraintError struct {
	Kind       ConstraintKind
	Entity     string
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	msg := fmt.Sprintf("%s violates %s constraint", e.Entity, e.Kind)
	if e.Constraint != "" {
		msg += " " + e.Constraint
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// PostgreSQL SQLSTATE codes for integrity violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classify maps driver and gorm errors onto the repository error taxonomy.
// Validation errors raised by model hooks pass through untouched.
func classify(entity string, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}
	var constraintErr *ConstraintError
	if errors.As(err, &constraintErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConstraintError{Kind: ConstraintUnique, Entity: entity, Constraint: pgErr.ConstraintName, Err: err}
		case pgForeignKeyViolation:
			return &ConstraintError{Kind: ConstraintForeignKey, Entity: entity, Constraint: pgErr.ConstraintName, Err: err}
		case pgCheckViolation:
			return &ConstraintError{Kind: ConstraintCheck, Entity: entity, Constraint: pgErr.ConstraintName, Err: err}
		}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConstraintError{Kind: ConstraintUnique, Entity: entity, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConstraintError{Kind: ConstraintForeignKey, Entity: entity, Err: err}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &ConstraintError{Kind: ConstraintCheck, Entity: entity, Err: err}
	}

	// SQLite reports constraint failures in the message only
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &ConstraintError{Kind: ConstraintUnique, Entity: entity, Err: err}
	case strings.Contains(msg, "CHECK constraint failed"):
		return &ConstraintError{Kind: ConstraintCheck, Entity: entity, Constraint: sqliteConstraintName(msg), Err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &ConstraintError{Kind: ConstraintForeignKey, Entity: entity, Err: err}
	}

	return err
}

// sqliteConstraintName extracts the name from "CHECK constraint failed: name"
func sqliteConstraintName(msg string) string {
	_, after, found := strings.Cut(msg, "CHECK constraint failed: ")
	if !found {
		return ""
	}
	name, _, _ := strings.Cut(after, " ")
	return strings.Trim(name, "`\"()")
}

// IsConstraint reports whether err is a ConstraintError of the given kind
func IsConstraint(err error, kind ConstraintKind) bool {
	var constraintErr *ConstraintError
	return errors.As(err, &constraintErr) && constraintErr.Kind == kind
}
