package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppLog represents a persisted log entry
type AppLog struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	Component string                 `gorm:"index;not null;default:'app'" json:"component"`
	Entity    string                 `gorm:"index" json:"entity"`
	Level     string                 `gorm:"index;not null" json:"level"`
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Error     string                 `gorm:"type:text" json:"error"`
	Fields    map[string]interface{} `gorm:"type:text;serializer:json" json:"fields"`
	Timestamp time.Time              `gorm:"index;not null" json:"timestamp"`
}

// BeforeCreate assigns an id and timestamp when missing
func (l *AppLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}
	return nil
}

// TableName returns the table name for AppLog
func (AppLog) TableName() string {
	return "app_logs"
}
