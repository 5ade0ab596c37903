package migration

import (
	"fmt"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// Names gorm derives for the CHECK constraints declared on models.Review
var reviewConstraints = []string{
	"chk_reviews_content",
	"chk_reviews_danger",
	"chk_reviews_rating",
}

// EnsureReviewConstraints adds the review CHECK constraints to a reviews
// table created before they were declared. Present constraints are left alone.
func EnsureReviewConstraints(db *gorm.DB, logger logging.Logger) error {
	migrator := db.Migrator()
	for _, name := range reviewConstraints {
		if migrator.HasConstraint(&models.Review{}, name) {
			continue
		}

		logger.Info("Adding review constraint", map[string]interface{}{"constraint": name})
		if err := migrator.CreateConstraint(&models.Review{}, name); err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", name, err)
		}
	}
	return nil
}

// RollbackReviewConstraints drops the review CHECK constraints. SQLite
// cannot drop constraints in place, so only PostgreSQL is supported.
func RollbackReviewConstraints(db *gorm.DB, logger logging.Logger) error {
	if db.Dialector.Name() != "postgres" {
		return fmt.Errorf("rollback of review constraints is not supported on %s", db.Dialector.Name())
	}

	migrator := db.Migrator()
	for _, name := range reviewConstraints {
		if !migrator.HasConstraint(&models.Review{}, name) {
			continue
		}

		logger.Info("Dropping review constraint", map[string]interface{}{"constraint": name})
		if err := migrator.DropConstraint(&models.Review{}, name); err != nil {
			logger.Warn("Failed to drop review constraint", map[string]interface{}{
				"constraint": name,
				"error":      err.Error(),
			})
		}
	}
	return nil
}
