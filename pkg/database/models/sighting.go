package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// SightingBlurbMax is the longest blurb a sighting may carry
const SightingBlurbMax = 200

// UnknownSubject is the name suggested when the sighted subject is unknown
const UnknownSubject = "Pokémon Unknown"

// Sighting records a rare encounter at a habitat
type Sighting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Blurb     string    `gorm:"type:text;not null" json:"blurb"`
	Image     string    `gorm:"not null" json:"image"`
	HabitatID uint      `gorm:"index;not null" json:"habitat_id"`
	TrainerID uint      `gorm:"index;not null" json:"trainer_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	// Relationships
	Habitat *Habitat `gorm:"foreignKey:HabitatID" json:"habitat,omitempty"`
	Trainer *Trainer `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}

// NewSighting creates a validated sighting
func NewSighting(name, blurb, image string, habitatID, trainerID uint) (*Sighting, error) {
	sighting := &Sighting{
		Name:      name,
		Blurb:     blurb,
		Image:     image,
		HabitatID: habitatID,
		TrainerID: trainerID,
	}
	if err := sighting.Validate(); err != nil {
		return nil, err
	}
	return sighting, nil
}

// Validate checks the name, blurb length and both owners
func (s *Sighting) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid("sighting", "name", `Please enter the name of the sighting. If not known, please enter "`+UnknownSubject+`" instead.`)
	}
	if utf8.RuneCountInString(s.Blurb) > SightingBlurbMax {
		return invalid("sighting", "blurb", "Please keep blurbs on rare sightings to 200 characters or less. You are free to go into much greater depths on an encounter in your review of the habitat!")
	}
	if strings.TrimSpace(s.Image) == "" {
		return invalid("sighting", "image", "Sightings must have an image.")
	}
	if s.HabitatID == 0 {
		return invalid("sighting", "habitat_id", "Sightings must belong to a habitat.")
	}
	if s.TrainerID == 0 {
		return invalid("sighting", "trainer_id", "Sightings must belong to a trainer.")
	}
	return nil
}

func (s *Sighting) BeforeSave(tx *gorm.DB) error {
	return s.Validate()
}

// TableName returns the table name for Sighting
func (Sighting) TableName() string {
	return "sightings"
}
