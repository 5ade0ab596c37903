package models

import (
	"time"

	"gorm.io/gorm"
)

// Biome represents a trainer's preferred biome. Trainers reference it
// without being owned by it.
type Biome struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	// Relationships
	Trainers []Trainer `gorm:"foreignKey:BiomeID;constraint:OnDelete:RESTRICT" json:"trainers,omitempty"`
}

// NewBiome creates a validated biome
func NewBiome(name string) (*Biome, error) {
	biome := &Biome{Name: name}
	if err := biome.Validate(); err != nil {
		return nil, err
	}
	return biome, nil
}

func (b *Biome) Validate() error {
	if !IsKnownBiome(b.Name) {
		return invalid("biome", "name", `Biome not recognized. Please select from available options. If no preference, select "No Preference"`)
	}
	return nil
}

func (b *Biome) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

// TableName returns the table name for Biome
func (Biome) TableName() string {
	return "biomes"
}
