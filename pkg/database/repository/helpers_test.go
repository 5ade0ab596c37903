package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/latoulicious/adventour/pkg/database"
	"github.com/latoulicious/adventour/pkg/database/migration"
	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const validContent = "The tall grass hides more than Rattata; bring repels and plenty of potions."

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "adventour.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.RunMigration(db, logging.NewNopLogger()))
	return db
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return NewStore(newTestDB(t), append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)...)
}

type fixture struct {
	region  *models.Region
	biome   *models.Biome
	habitat *models.Habitat
	trainer *models.Trainer
}

func seedFixture(t *testing.T, store *Store) fixture {
	t.Helper()
	ctx := context.Background()

	region, err := models.NewRegion("Kanto")
	require.NoError(t, err)
	require.NoError(t, store.Regions.Create(ctx, region))

	biome, err := models.NewBiome("Forest (conif.)")
	require.NoError(t, err)
	require.NoError(t, store.Biomes.Create(ctx, biome))

	habitat, err := models.NewHabitat("Viridian Forest", "viridian.png", &region.ID)
	require.NoError(t, err)
	require.NoError(t, store.Habitats.Create(ctx, habitat))

	trainer, err := models.NewTrainer("Ash", 10, "ash.png", &biome.ID)
	require.NoError(t, err)
	require.NoError(t, store.Trainers.Register(ctx, trainer, "pikachu"))

	return fixture{region: region, biome: biome, habitat: habitat, trainer: trainer}
}

func addReview(t *testing.T, store *Store, habitatID, trainerID uint, danger, rating int) *models.Review {
	t.Helper()
	review, err := models.NewReview(validContent, danger, rating, habitatID, trainerID)
	require.NoError(t, err)
	require.NoError(t, store.Reviews.Create(context.Background(), review))
	return review
}

func addSighting(t *testing.T, store *Store, name string, habitatID, trainerID uint) *models.Sighting {
	t.Helper()
	sighting, err := models.NewSighting(name, "Spotted near the old tree line at dusk.", strings.ToLower(name)+".png", habitatID, trainerID)
	require.NoError(t, err)
	require.NoError(t, store.Sightings.Create(context.Background(), sighting))
	return sighting
}

func countRows(t *testing.T, store *Store, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, store.DB().Model(model).Count(&count).Error)
	return count
}

func countLogs(t *testing.T, store *Store, message string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, store.DB().Model(&models.AppLog{}).Where("message = ?", message).Count(&count).Error)
	return count
}
