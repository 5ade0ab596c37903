package models

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Secret length bounds in bytes. bcrypt refuses inputs longer than 72 bytes.
const (
	SecretMinLength = 6
	SecretMaxLength = 72
)

// Credential holds a salted one-way hash of a secret. It is write-only:
// Set replaces the hash and Verify checks a candidate. There is no accessor
// for the hash or the plaintext.
type Credential struct {
	hash string
}

// Set hashes secret with the given bcrypt cost and replaces the stored hash
func (c *Credential) Set(secret string, cost int) error {
	if secret == "" {
		return invalid("trainer", "password", "Must create a password.")
	}
	if len(secret) < SecretMinLength {
		return invalid("trainer", "password", "Password must be at least 6 characters.")
	}
	if len(secret) > SecretMaxLength {
		return invalid("trainer", "password", "Password cannot exceed 72 bytes.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}
	c.hash = string(hash)
	return nil
}

// Verify reports whether candidate hashes to the stored value
func (c Credential) Verify(candidate string) bool {
	if c.hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(candidate)) == nil
}

// IsSet reports whether a secret has been stored
func (c Credential) IsSet() bool {
	return c.hash != ""
}

// Scan implements sql.Scanner
func (c *Credential) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		c.hash = ""
	case string:
		c.hash = v
	case []byte:
		c.hash = string(v)
	default:
		return fmt.Errorf("unsupported credential column type %T", value)
	}
	return nil
}

// Value implements driver.Valuer. The hash only leaves the type on its way
// into the storage column.
func (c Credential) Value() (driver.Value, error) {
	if c.hash == "" {
		return nil, nil
	}
	return c.hash, nil
}

// GormDataType stores the hash as text
func (Credential) GormDataType() string {
	return "string"
}

// String keeps the hash out of formatted output
func (c Credential) String() string {
	if c.IsSet() {
		return "[protected]"
	}
	return "[unset]"
}
