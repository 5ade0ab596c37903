package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinTrainerAge is the youngest age a trainer may register with
const MinTrainerAge = 10

// Trainer represents a user account. A trainer owns their reviews and
// sightings; deleting the trainer deletes them.
type Trainer struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"uniqueIndex;not null" json:"name"`
	Age          int        `gorm:"not null" json:"age"`
	Image        string     `json:"image"`
	PasswordHash Credential `gorm:"column:password_hash;type:text;not null" json:"-"`
	BiomeID      *uint      `gorm:"index" json:"biome_id"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"-"`

	// Relationships
	Biome     *Biome     `gorm:"foreignKey:BiomeID" json:"biome,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Sightings []Sighting `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE" json:"sightings,omitempty"`
}

// NewTrainer creates a trainer with a validated profile. The secret must be
// set with SetSecret before the trainer can be stored.
func NewTrainer(name string, age int, image string, biomeID *uint) (*Trainer, error) {
	trainer := &Trainer{Name: name, Age: age, Image: image, BiomeID: biomeID}
	if err := trainer.validateProfile(); err != nil {
		return nil, err
	}
	return trainer, nil
}

// SetSecret hashes secret with bcrypt's default cost
func (t *Trainer) SetSecret(secret string) error {
	return t.PasswordHash.Set(secret, bcrypt.DefaultCost)
}

// SetSecretWithCost hashes secret with the given bcrypt cost
func (t *Trainer) SetSecretWithCost(secret string, cost int) error {
	return t.PasswordHash.Set(secret, cost)
}

// Secret always fails: the secret is write-only.
func (t *Trainer) Secret() (string, error) {
	return "", &AccessError{Field: "password_hash"}
}

// Authenticate reports whether candidate matches the stored secret
func (t *Trainer) Authenticate(candidate string) bool {
	return t.PasswordHash.Verify(candidate)
}

// Validate checks the profile fields and that a secret has been set
func (t *Trainer) Validate() error {
	if err := t.validateProfile(); err != nil {
		return err
	}
	if !t.PasswordHash.IsSet() {
		return invalid("trainer", "password", "Must create a password.")
	}
	return nil
}

func (t *Trainer) validateProfile() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("trainer", "name", "Please enter a name.")
	}
	if t.Age < MinTrainerAge {
		return invalid("trainer", "age", "Trainers must be at least 10 years old.")
	}
	return nil
}

// BeforeSave runs validation on every insert and update
func (t *Trainer) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

// TableName returns the table name for Trainer
func (Trainer) TableName() string {
	return "trainers"
}
