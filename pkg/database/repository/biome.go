package repository

import (
	"context"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// BiomeRepository handles database operations for Biome model
type BiomeRepository struct {
	db     *gorm.DB
	logger logging.Logger
}

func NewBiomeRepository(db *gorm.DB, logger logging.Logger) *BiomeRepository {
	return &BiomeRepository{db: db, logger: logger}
}

func (r *BiomeRepository) Create(ctx context.Context, biome *models.Biome) error {
	if err := create(ctx, r.db, "biome", biome); err != nil {
		return err
	}
	r.logger.Info("Biome created", map[string]interface{}{"record_id": biome.ID, "name": biome.Name})
	return nil
}

func (r *BiomeRepository) Update(ctx context.Context, biome *models.Biome) error {
	return update(ctx, r.db, "biome", biome.ID, biome)
}

func (r *BiomeRepository) GetByID(ctx context.Context, id uint) (*models.Biome, error) {
	return get[models.Biome](ctx, r.db, "biome", id)
}

func (r *BiomeRepository) GetByName(ctx context.Context, name string) (*models.Biome, error) {
	var biome models.Biome
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&biome).Error; err != nil {
		return nil, classify("biome", err)
	}
	return &biome, nil
}

// GetWithTrainers loads a biome and the trainers who prefer it
func (r *BiomeRepository) GetWithTrainers(ctx context.Context, id uint) (*models.Biome, error) {
	var biome models.Biome
	err := r.db.WithContext(ctx).
		Preload("Trainers", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&biome, id).Error
	if err != nil {
		return nil, classify("biome", err)
	}
	return &biome, nil
}

func (r *BiomeRepository) List(ctx context.Context) ([]models.Biome, error) {
	return list[models.Biome](ctx, r.db, "biome", "id", "")
}

// Delete removes a biome, refusing while trainers still reference it
func (r *BiomeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trainers, err := countWhere(tx, &models.Trainer{}, "biome_id = ?", id)
		if err != nil {
			return classify("biome", err)
		}
		if trainers > 0 {
			return &ConstraintError{Kind: ConstraintRestrict, Entity: "biome", Constraint: "trainers"}
		}

		result := tx.Delete(&models.Biome{}, id)
		if result.Error != nil {
			return classify("biome", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Biome deleted", map[string]interface{}{"record_id": id})
	return nil
}
