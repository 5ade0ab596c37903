package repository

import (
	"context"
	"time"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// LogRepository persists log entries into app_logs. It implements
// logging.LogRepository.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// SaveLog saves a log entry to the database
func (r *LogRepository) SaveLog(entry logging.LogEntry) error {
	component := entry.Component
	if component == "" {
		component = "app"
	}

	return r.db.Create(&models.AppLog{
		Component: component,
		Entity:    entry.Entity,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    entry.Fields,
		Timestamp: time.Now(),
	}).Error
}

// Recent returns the newest log rows first
func (r *LogRepository) Recent(ctx context.Context, limit int) ([]models.AppLog, error) {
	var logs []models.AppLog
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Prune deletes log rows older than before and reports how many went
func (r *LogRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("timestamp < ?", before).Delete(&models.AppLog{})
	return result.RowsAffected, result.Error
}
