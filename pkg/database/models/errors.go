package models

import "fmt"

// ValidationError is returned when a single field fails its predicate.
// Callers translate it into a user-facing response; the models never format one.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
}

func invalid(entity, field, message string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Message: message}
}

// AccessError is returned when code tries to read a write-only field.
type AccessError struct {
	Field string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s may not be viewed", e.Field)
}
