package models

import (
	"time"

	"gorm.io/gorm"
)

// Region represents a known region of the world. Habitats reference it but
// are not owned by it: a region cannot be deleted while habitats point at it.
type Region struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	// Relationships
	Habitats []Habitat `gorm:"foreignKey:RegionID;constraint:OnDelete:RESTRICT" json:"habitats,omitempty"`
}

// NewRegion creates a validated region
func NewRegion(name string) (*Region, error) {
	region := &Region{Name: name}
	if err := region.Validate(); err != nil {
		return nil, err
	}
	return region, nil
}

// Validate checks the region name against the closed set of regions
func (r *Region) Validate() error {
	if !IsKnownRegion(r.Name) {
		return invalid("region", "name", "Region not recognized. Please select from available options or confirm uncharted territory.")
	}
	return nil
}

// BeforeSave runs validation on every insert and update
func (r *Region) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// TableName returns the table name for Region
func (Region) TableName() string {
	return "regions"
}
