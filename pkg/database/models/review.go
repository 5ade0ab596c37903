package models

import (
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Review bounds. Each is also enforced by a CHECK constraint on the
// reviews table.
const (
	ReviewContentMin = 50
	ReviewDangerMin  = 1
	ReviewDangerMax  = 5
	ReviewRatingMin  = 1
	ReviewRatingMax  = 5
)

// Review is a trainer's account of a habitat
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null;check:length(content) >= 50" json:"content"`
	Danger    int       `gorm:"not null;check:danger >= 1 AND danger <= 5" json:"danger"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	HabitatID uint      `gorm:"index;not null" json:"habitat_id"`
	TrainerID uint      `gorm:"index;not null" json:"trainer_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	// Relationships
	Habitat *Habitat `gorm:"foreignKey:HabitatID" json:"habitat,omitempty"`
	Trainer *Trainer `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}

// NewReview creates a validated review
func NewReview(content string, danger, rating int, habitatID, trainerID uint) (*Review, error) {
	review := &Review{
		Content:   content,
		Danger:    danger,
		Rating:    rating,
		HabitatID: habitatID,
		TrainerID: trainerID,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	return review, nil
}

// Validate checks content length, danger, rating and both owners
func (r *Review) Validate() error {
	if utf8.RuneCountInString(r.Content) < ReviewContentMin {
		return invalid("review", "content", "Reviews must be at least 50 characters long.")
	}
	if r.Danger == 0 {
		return invalid("review", "danger", "Please enter the observed danger levels of this habitat.")
	}
	if r.Danger < ReviewDangerMin || r.Danger > ReviewDangerMax {
		return invalid("review", "danger", "Danger levels must be between 1 and 5.")
	}
	if r.Rating < ReviewRatingMin || r.Rating > ReviewRatingMax {
		return invalid("review", "rating", "Ratings must be between 1 and 5.")
	}
	if r.HabitatID == 0 {
		return invalid("review", "habitat_id", "Reviews must belong to a habitat.")
	}
	if r.TrainerID == 0 {
		return invalid("review", "trainer_id", "Reviews must belong to a trainer.")
	}
	return nil
}

func (r *Review) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// TableName returns the table name for Review
func (Review) TableName() string {
	return "reviews"
}
