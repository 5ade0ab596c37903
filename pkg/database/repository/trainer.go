package repository

import (
	"context"
	"errors"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TrainerRepository handles database operations for Trainer model
type TrainerRepository struct {
	db     *gorm.DB
	logger logging.Logger
	cost   int
}

// NewTrainerRepository creates a repository hashing secrets with cost
func NewTrainerRepository(db *gorm.DB, logger logging.Logger, cost int) *TrainerRepository {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &TrainerRepository{db: db, logger: logger, cost: cost}
}

// Create inserts a trainer whose secret has already been set
func (r *TrainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	if err := create(ctx, r.db, "trainer", trainer); err != nil {
		if IsConstraint(err, ConstraintUnique) {
			r.logger.Warn("Trainer name already taken", map[string]interface{}{"name": trainer.Name})
		}
		return err
	}
	r.logger.Info("Trainer created", map[string]interface{}{"record_id": trainer.ID})
	return nil
}

// Register hashes secret with the configured cost and inserts the trainer
func (r *TrainerRepository) Register(ctx context.Context, trainer *models.Trainer, secret string) error {
	if err := trainer.SetSecretWithCost(secret, r.cost); err != nil {
		return err
	}
	return r.Create(ctx, trainer)
}

// Authenticate returns the trainer called name if secret matches
func (r *TrainerRepository) Authenticate(ctx context.Context, name, secret string) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&trainer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, classify("trainer", err)
	}
	if !trainer.Authenticate(secret) {
		r.logger.Warn("Failed login", map[string]interface{}{"record_id": trainer.ID})
		return nil, ErrInvalidCredentials
	}
	return &trainer, nil
}

// ChangeSecret replaces the stored hash for trainer id
func (r *TrainerRepository) ChangeSecret(ctx context.Context, id uint, secret string) error {
	trainer, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := trainer.SetSecretWithCost(secret, r.cost); err != nil {
		return err
	}
	return r.Update(ctx, trainer)
}

// Update saves a trainer loaded from storage. The stored hash is written
// back unchanged unless SetSecret was called on it.
func (r *TrainerRepository) Update(ctx context.Context, trainer *models.Trainer) error {
	return update(ctx, r.db, "trainer", trainer.ID, trainer)
}

func (r *TrainerRepository) GetByID(ctx context.Context, id uint) (*models.Trainer, error) {
	return get[models.Trainer](ctx, r.db, "trainer", id)
}

func (r *TrainerRepository) GetByName(ctx context.Context, name string) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&trainer).Error; err != nil {
		return nil, classify("trainer", err)
	}
	return &trainer, nil
}

// GetDetailed loads a trainer with biome, reviews and sightings
func (r *TrainerRepository) GetDetailed(ctx context.Context, id uint) (*models.Trainer, error) {
	return get[models.Trainer](ctx, r.db, "trainer", id, "Biome", "Reviews", "Sightings")
}

func (r *TrainerRepository) List(ctx context.Context) ([]models.Trainer, error) {
	return list[models.Trainer](ctx, r.db, "trainer", "name", "")
}

func (r *TrainerRepository) ListByBiome(ctx context.Context, biomeID uint) ([]models.Trainer, error) {
	return list[models.Trainer](ctx, r.db, "trainer", "name", "biome_id = ?", biomeID)
}

// Delete removes a trainer together with every review and sighting they
// own, in one transaction.
func (r *TrainerRepository) Delete(ctx context.Context, id uint) error {
	var reviewsRemoved, sightingsRemoved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trainer models.Trainer
		if err := tx.Select("id").First(&trainer, id).Error; err != nil {
			return classify("trainer", err)
		}

		reviews := tx.Where("trainer_id = ?", id).Delete(&models.Review{})
		if reviews.Error != nil {
			return classify("review", reviews.Error)
		}
		sightings := tx.Where("trainer_id = ?", id).Delete(&models.Sighting{})
		if sightings.Error != nil {
			return classify("sighting", sightings.Error)
		}
		if err := tx.Delete(&models.Trainer{}, id).Error; err != nil {
			return classify("trainer", err)
		}

		reviewsRemoved, sightingsRemoved = reviews.RowsAffected, sightings.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Trainer deleted", map[string]interface{}{
		"record_id":         id,
		"reviews_removed":   reviewsRemoved,
		"sightings_removed": sightingsRemoved,
	})
	return nil
}
