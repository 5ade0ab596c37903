package repository

import (
	"context"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// ReviewRepository handles database operations for Review model
type ReviewRepository struct {
	db     *gorm.DB
	logger logging.Logger
}

// HabitatAverages summarises the reviews of one habitat
type HabitatAverages struct {
	HabitatID uint    `json:"habitat_id"`
	Reviews   int64   `json:"reviews"`
	Danger    float64 `json:"danger"`
	Rating    float64 `json:"rating"`
}

func NewReviewRepository(db *gorm.DB, logger logging.Logger) *ReviewRepository {
	return &ReviewRepository{db: db, logger: logger}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := create(ctx, r.db, "review", review); err != nil {
		return err
	}
	r.logger.Info("Review created", map[string]interface{}{
		"record_id":  review.ID,
		"habitat_id": review.HabitatID,
		"trainer_id": review.TrainerID,
	})
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return update(ctx, r.db, "review", review.ID, review)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return get[models.Review](ctx, r.db, "review", id)
}

// GetDetailed loads a review with its habitat and trainer
func (r *ReviewRepository) GetDetailed(ctx context.Context, id uint) (*models.Review, error) {
	return get[models.Review](ctx, r.db, "review", id, "Habitat", "Trainer")
}

func (r *ReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	return list[models.Review](ctx, r.db, "review", "id", "")
}

func (r *ReviewRepository) ListByHabitat(ctx context.Context, habitatID uint) ([]models.Review, error) {
	return list[models.Review](ctx, r.db, "review", "id", "habitat_id = ?", habitatID)
}

func (r *ReviewRepository) ListByTrainer(ctx context.Context, trainerID uint) ([]models.Review, error) {
	return list[models.Review](ctx, r.db, "review", "id", "trainer_id = ?", trainerID)
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return classify("review", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Averages returns review count and mean danger and rating per habitat,
// keyed by habitat id. Habitats without reviews are absent.
func (r *ReviewRepository) Averages(ctx context.Context) (map[uint]HabitatAverages, error) {
	var rows []HabitatAverages
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("habitat_id, COUNT(*) AS reviews, " +
			"CAST(AVG(danger) AS DOUBLE PRECISION) AS danger, " +
			"CAST(AVG(rating) AS DOUBLE PRECISION) AS rating").
		Group("habitat_id").
		Scan(&rows).Error
	if err != nil {
		return nil, classify("review", err)
	}

	averages := make(map[uint]HabitatAverages, len(rows))
	for _, row := range rows {
		averages[row.HabitatID] = row
	}
	return averages, nil
}
