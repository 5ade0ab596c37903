package migration

import (
	"fmt"

	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"gorm.io/gorm"
)

// Models returns every persisted model, parents before children
func Models() []interface{} {
	return []interface{}{
		&models.Region{},
		&models.Biome{},
		&models.Habitat{},
		&models.Trainer{},
		&models.Review{},
		&models.Sighting{},
		&models.AppLog{},
	}
}

// RunMigration creates or updates every table and its constraints
func RunMigration(db *gorm.DB, logger logging.Logger) error {
	logger.Info("Running database migrations...", map[string]interface{}{
		"dialect": db.Dialector.Name(),
	})

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := EnsureReviewConstraints(db, logger); err != nil {
		return err
	}

	logger.Info("Migrations completed successfully!", nil)
	return nil
}

// Reset drops every table owned by this schema, children first
func Reset(db *gorm.DB, logger logging.Logger) error {
	tables := Models()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", tables[i], err)
		}
	}
	logger.Info("Database reset successfully", nil)
	return nil
}
