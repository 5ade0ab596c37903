package repository

import (
	"context"
	"strings"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// HabitatRepository handles database operations for Habitat model
type HabitatRepository struct {
	db     *gorm.DB
	logger logging.Logger
}

func NewHabitatRepository(db *gorm.DB, logger logging.Logger) *HabitatRepository {
	return &HabitatRepository{db: db, logger: logger}
}

func (r *HabitatRepository) Create(ctx context.Context, habitat *models.Habitat) error {
	if err := create(ctx, r.db, "habitat", habitat); err != nil {
		return err
	}
	r.logger.Info("Habitat created", map[string]interface{}{"record_id": habitat.ID, "name": habitat.Name})
	return nil
}

func (r *HabitatRepository) Update(ctx context.Context, habitat *models.Habitat) error {
	return update(ctx, r.db, "habitat", habitat.ID, habitat)
}

func (r *HabitatRepository) GetByID(ctx context.Context, id uint) (*models.Habitat, error) {
	return get[models.Habitat](ctx, r.db, "habitat", id)
}

func (r *HabitatRepository) GetByName(ctx context.Context, name string) (*models.Habitat, error) {
	var habitat models.Habitat
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&habitat).Error; err != nil {
		return nil, classify("habitat", err)
	}
	return &habitat, nil
}

// GetDetailed loads a habitat with its region, reviews and sightings, each
// review and sighting carrying its trainer
func (r *HabitatRepository) GetDetailed(ctx context.Context, id uint) (*models.Habitat, error) {
	return get[models.Habitat](ctx, r.db, "habitat", id, "Region", "Reviews.Trainer", "Sightings.Trainer")
}

func (r *HabitatRepository) List(ctx context.Context) ([]models.Habitat, error) {
	return list[models.Habitat](ctx, r.db, "habitat", "name", "")
}

// ListDetailed returns every habitat with its region and reviews
func (r *HabitatRepository) ListDetailed(ctx context.Context) ([]models.Habitat, error) {
	var habitats []models.Habitat
	err := r.db.WithContext(ctx).
		Preload("Region").
		Preload("Reviews").
		Order("name").
		Find(&habitats).Error
	if err != nil {
		return nil, classify("habitat", err)
	}
	return habitats, nil
}

func (r *HabitatRepository) ListByRegion(ctx context.Context, regionID uint) ([]models.Habitat, error) {
	return list[models.Habitat](ctx, r.db, "habitat", "name", "region_id = ?", regionID)
}

// Search returns habitats whose name contains term, ignoring case
func (r *HabitatRepository) Search(ctx context.Context, term string) ([]models.Habitat, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	return list[models.Habitat](ctx, r.db, "habitat", "name", "LOWER(name) LIKE ?", pattern)
}

// Delete removes a habitat together with every review and sighting it owns.
// All rows go in one transaction or none do.
func (r *HabitatRepository) Delete(ctx context.Context, id uint) error {
	var reviewsRemoved, sightingsRemoved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var habitat models.Habitat
		if err := tx.Select("id").First(&habitat, id).Error; err != nil {
			return classify("habitat", err)
		}

		reviews := tx.Where("habitat_id = ?", id).Delete(&models.Review{})
		if reviews.Error != nil {
			return classify("review", reviews.Error)
		}
		sightings := tx.Where("habitat_id = ?", id).Delete(&models.Sighting{})
		if sightings.Error != nil {
			return classify("sighting", sightings.Error)
		}
		if err := tx.Delete(&models.Habitat{}, id).Error; err != nil {
			return classify("habitat", err)
		}

		reviewsRemoved, sightingsRemoved = reviews.RowsAffected, sightings.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Habitat deleted", map[string]interface{}{
		"record_id":         id,
		"reviews_removed":   reviewsRemoved,
		"sightings_removed": sightingsRemoved,
	})
	return nil
}
