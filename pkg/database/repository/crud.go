package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Shared insert/update/load helpers. Every write runs the model's
// BeforeSave validation inside gorm's transaction, so a rejected record
// leaves nothing behind.

func create(ctx context.Context, db *gorm.DB, entity string, value interface{}) error {
	return classify(entity, db.WithContext(ctx).Omit(clause.Associations).Create(value).Error)
}

// update saves value over the existing row with the given id. The id is
// never reassigned and the creation time is kept.
func update[T any](ctx context.Context, db *gorm.DB, entity string, id uint, value *T) error {
	if id == 0 {
		return ErrNotFound
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing T
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			return classify(entity, err)
		}
		return classify(entity, tx.Omit(clause.Associations, "created_at").Save(value).Error)
	})
}

func get[T any](ctx context.Context, db *gorm.DB, entity string, id uint, preloads ...string) (*T, error) {
	query := db.WithContext(ctx)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var value T
	if err := query.First(&value, id).Error; err != nil {
		return nil, classify(entity, err)
	}
	return &value, nil
}

func list[T any](ctx context.Context, db *gorm.DB, entity string, order string, where string, args ...interface{}) ([]T, error) {
	query := db.WithContext(ctx).Order(order)
	if where != "" {
		query = query.Where(where, args...)
	}

	var values []T
	if err := query.Find(&values).Error; err != nil {
		return nil, classify(entity, err)
	}
	return values, nil
}

// countWhere counts rows of model matching where
func countWhere(tx *gorm.DB, model interface{}, where string, args ...interface{}) (int64, error) {
	var count int64
	err := tx.Model(model).Where(where, args...).Count(&count).Error
	return count, err
}
