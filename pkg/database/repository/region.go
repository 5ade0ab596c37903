package repository

import (
	"context"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// RegionRepository handles database operations for Region model
type RegionRepository struct {
	db     *gorm.DB
	logger logging.Logger
}

func NewRegionRepository(db *gorm.DB, logger logging.Logger) *RegionRepository {
	return &RegionRepository{db: db, logger: logger}
}

func (r *RegionRepository) Create(ctx context.Context, region *models.Region) error {
	if err := create(ctx, r.db, "region", region); err != nil {
		return err
	}
	r.logger.Info("Region created", map[string]interface{}{"record_id": region.ID, "name": region.Name})
	return nil
}

func (r *RegionRepository) Update(ctx context.Context, region *models.Region) error {
	return update(ctx, r.db, "region", region.ID, region)
}

func (r *RegionRepository) GetByID(ctx context.Context, id uint) (*models.Region, error) {
	return get[models.Region](ctx, r.db, "region", id)
}

func (r *RegionRepository) GetByName(ctx context.Context, name string) (*models.Region, error) {
	var region models.Region
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&region).Error; err != nil {
		return nil, classify("region", err)
	}
	return &region, nil
}

// GetWithHabitats loads a region and the habitats that reference it
func (r *RegionRepository) GetWithHabitats(ctx context.Context, id uint) (*models.Region, error) {
	var region models.Region
	err := r.db.WithContext(ctx).
		Preload("Habitats", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&region, id).Error
	if err != nil {
		return nil, classify("region", err)
	}
	return &region, nil
}

func (r *RegionRepository) List(ctx context.Context) ([]models.Region, error) {
	return list[models.Region](ctx, r.db, "region", "id", "")
}

// Delete removes a region. Regions do not own their habitats, so the delete
// is refused while any habitat still references the region.
func (r *RegionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		habitats, err := countWhere(tx, &models.Habitat{}, "region_id = ?", id)
		if err != nil {
			return classify("region", err)
		}
		if habitats > 0 {
			return &ConstraintError{Kind: ConstraintRestrict, Entity: "region", Constraint: "habitats"}
		}

		result := tx.Delete(&models.Region{}, id)
		if result.Error != nil {
			return classify("region", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Region deleted", map[string]interface{}{"record_id": id})
	return nil
}
