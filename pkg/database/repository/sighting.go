package repository

import (
	"context"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// SightingRepository handles database operations for Sighting model
type SightingRepository struct {
	db     *gorm.DB
	logger logging.Logger
}

func NewSightingRepository(db *gorm.DB, logger logging.Logger) *SightingRepository {
	return &SightingRepository{db: db, logger: logger}
}

func (r *SightingRepository) Create(ctx context.Context, sighting *models.Sighting) error {
	if err := create(ctx, r.db, "sighting", sighting); err != nil {
		return err
	}
	r.logger.Info("Sighting created", map[string]interface{}{
		"record_id":  sighting.ID,
		"habitat_id": sighting.HabitatID,
		"trainer_id": sighting.TrainerID,
	})
	return nil
}

func (r *SightingRepository) Update(ctx context.Context, sighting *models.Sighting) error {
	return update(ctx, r.db, "sighting", sighting.ID, sighting)
}

func (r *SightingRepository) GetByID(ctx context.Context, id uint) (*models.Sighting, error) {
	return get[models.Sighting](ctx, r.db, "sighting", id)
}

// GetDetailed loads a sighting with its habitat and trainer
func (r *SightingRepository) GetDetailed(ctx context.Context, id uint) (*models.Sighting, error) {
	return get[models.Sighting](ctx, r.db, "sighting", id, "Habitat", "Trainer")
}

func (r *SightingRepository) List(ctx context.Context) ([]models.Sighting, error) {
	return list[models.Sighting](ctx, r.db, "sighting", "id", "")
}

func (r *SightingRepository) ListByHabitat(ctx context.Context, habitatID uint) ([]models.Sighting, error) {
	return list[models.Sighting](ctx, r.db, "sighting", "id", "habitat_id = ?", habitatID)
}

func (r *SightingRepository) ListByTrainer(ctx context.Context, trainerID uint) ([]models.Sighting, error) {
	return list[models.Sighting](ctx, r.db, "sighting", "id", "trainer_id = ?", trainerID)
}

func (r *SightingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Sighting{}, id)
	if result.Error != nil {
		return classify("sighting", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
