package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Habitat name bounds, counted in characters after trimming surrounding spaces.
const (
	HabitatNameMin = 2
	HabitatNameMax = 25
)

// Habitat represents a reviewed location. A habitat owns its reviews and
// sightings; deleting it deletes them.
type Habitat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Image     string    `gorm:"not null" json:"image"`
	RegionID  *uint     `gorm:"index" json:"region_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	// Relationships
	Region    *Region    `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:HabitatID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Sightings []Sighting `gorm:"foreignKey:HabitatID;constraint:OnDelete:CASCADE" json:"sightings,omitempty"`
}

// NewHabitat creates a validated habitat. regionID may be nil.
func NewHabitat(name, image string, regionID *uint) (*Habitat, error) {
	habitat := &Habitat{Name: name, Image: image, RegionID: regionID}
	if err := habitat.Validate(); err != nil {
		return nil, err
	}
	return habitat, nil
}

// Validate checks the habitat name and image
func (h *Habitat) Validate() error {
	name := strings.TrimSpace(h.Name)
	if name == "" {
		return invalid("habitat", "name", "Habitat must be named.")
	}
	if n := utf8.RuneCountInString(name); n < HabitatNameMin || n > HabitatNameMax {
		return invalid("habitat", "name", "Habitat names must be between 2-25 characters long")
	}
	if strings.TrimSpace(h.Image) == "" {
		return invalid("habitat", "image", "Habitat must have an image.")
	}
	return nil
}

// BeforeSave runs validation on every insert and update
func (h *Habitat) BeforeSave(tx *gorm.DB) error {
	return h.Validate()
}

// TableName returns the table name for Habitat
func (Habitat) TableName() string {
	return "habitats"
}
