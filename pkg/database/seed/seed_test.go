package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/latoulicious/adventour/pkg/database"
	"github.com/latoulicious/adventour/pkg/database/migration"
	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/database/repository"
	"github.com/latoulicious/adventour/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.RunMigration(db, logging.NewNopLogger()))
	return repository.NewStore(db, repository.WithBcryptCost(bcrypt.MinCost))
}

func TestEnsureCatalogIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	summary, err := EnsureCatalog(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 16, summary.Regions)
	assert.Equal(t, 25, summary.Biomes)

	summary, err = EnsureCatalog(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, summary.Regions)
	assert.Zero(t, summary.Biomes)

	regions, err := store.Regions.List(ctx)
	require.NoError(t, err)
	assert.Len(t, regions, 16)

	biome, err := store.Biomes.GetByName(ctx, models.NoPreferenceBiome)
	require.NoError(t, err)
	assert.NotZero(t, biome.ID)
}

func TestLoadFileAndRun(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	fixture, err := LoadFile(filepath.Join("testdata", "kanto.yaml"))
	require.NoError(t, err)
	require.Len(t, fixture.Habitats, 3)

	summary, err := Run(ctx, store, fixture, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, Summary{Regions: 16, Biomes: 25, Habitats: 3, Trainers: 2, Reviews: 2, Sightings: 2}, summary)

	moon, err := store.Habitats.GetByName(ctx, "Mt. Moon")
	require.NoError(t, err)
	detailed, err := store.Habitats.GetDetailed(ctx, moon.ID)
	require.NoError(t, err)
	require.NotNil(t, detailed.Region)
	assert.Equal(t, "Kanto", detailed.Region.Name)
	assert.Len(t, detailed.Reviews, 1)
	assert.Len(t, detailed.Sightings, 1)

	tower, err := store.Habitats.GetByName(ctx, "Sprout Tower")
	require.NoError(t, err)
	assert.Nil(t, tower.RegionID)

	_, err = store.Trainers.Authenticate(ctx, "Brock", "onix-rocks")
	assert.NoError(t, err)
}

func TestRunIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	fixture := &Fixture{
		Habitats: []HabitatFixture{{Name: "Safari Zone", Image: "safari.png", Region: "Kanto"}},
		Trainers: []TrainerFixture{{Name: "Gary", Age: 10, Password: "eevee!"}},
		Reviews: []ReviewFixture{{
			Habitat: "Safari Zone",
			Trainer: "Gary",
			Content: "too short",
			Danger:  1,
			Rating:  3,
		}},
	}

	_, err := Run(ctx, store, fixture, logging.NewNopLogger())
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "content", ve.Field)

	regions, err := store.Regions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, regions)
	habitats, err := store.Habitats.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, habitats)
}

func TestRunRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := Run(ctx, store, &Fixture{
		Habitats: []HabitatFixture{{Name: "Hidden Grotto", Image: "g.png", Region: "Atlantis"}},
	}, logging.NewNopLogger())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = Run(ctx, store, &Fixture{
		Sightings: []SightingFixture{{Habitat: "Nowhere", Trainer: "Nobody", Name: "Mew", Image: "mew.png"}},
	}, logging.NewNopLogger())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRunTwiceFailsOnDuplicateNames(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	fixture, err := LoadFile(filepath.Join("testdata", "kanto.yaml"))
	require.NoError(t, err)
	_, err = Run(ctx, store, fixture, logging.NewNopLogger())
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	_, err = Run(ctx, store, fixture, logging.NewZapLoggerFrom("seed", zap.New(core)))
	assert.True(t, repository.IsConstraint(err, repository.ConstraintUnique), "got %v", err)
	assert.Zero(t, logs.Len())

	reviews, err := store.Reviews.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("habitats:\n  - name: Route 1\n    colour: green\n"))
	assert.ErrorContains(t, err, "failed to parse seed file")

	fixture, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, fixture.Habitats)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
