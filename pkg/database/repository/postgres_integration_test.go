//go:build integration

package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/latoulicious/adventour/pkg/database"
	"github.com/latoulicious/adventour/pkg/database/migration"
	"github.com/latoulicious/adventour/pkg/database/models"
	"github.com/latoulicious/adventour/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

// newPostgresStore starts a disposable PostgreSQL container and migrates it
func newPostgresStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("adventour"),
		postgres.WithUsername("trainer"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewGormDB(dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close(db)
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(terminateCtx); err != nil {
			t.Logf("Warning: failed to terminate container: %s", err)
		}
	})

	require.NoError(t, migration.RunMigration(db, logging.NewNopLogger()))
	return NewStore(db, WithBcryptCost(bcrypt.MinCost))
}

func TestPostgresConstraints(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStore(t)
	fx := seedFixture(t, store)

	t.Run("review content is checked by name", func(t *testing.T) {
		err := store.DB().Exec(
			"INSERT INTO reviews (content, danger, rating, habitat_id, trainer_id) VALUES (?, ?, ?, ?, ?)",
			strings.Repeat("x", 49), 1, 3, fx.habitat.ID, fx.trainer.ID,
		).Error
		err = classify("review", err)

		var ce *ConstraintError
		require.True(t, errors.As(err, &ce), "got %v", err)
		assert.Equal(t, ConstraintCheck, ce.Kind)
		assert.Equal(t, "chk_reviews_content", ce.Constraint)

		var pgErr *pgconn.PgError
		assert.True(t, errors.As(err, &pgErr))
	})

	t.Run("duplicate trainer name", func(t *testing.T) {
		dup, err := models.NewTrainer(fx.trainer.Name, 40, "", nil)
		require.NoError(t, err)
		assert.True(t, IsConstraint(store.Trainers.Register(ctx, dup, "another"), ConstraintUnique))
	})

	t.Run("habitat delete cascades", func(t *testing.T) {
		addReview(t, store, fx.habitat.ID, fx.trainer.ID, 3, 3)
		addSighting(t, store, "Butterfree", fx.habitat.ID, fx.trainer.ID)

		require.NoError(t, store.Habitats.Delete(ctx, fx.habitat.ID))
		assert.Zero(t, countRows(t, store, &models.Review{}))
		assert.Zero(t, countRows(t, store, &models.Sighting{}))
	})

	t.Run("region delete is restricted", func(t *testing.T) {
		habitat, err := models.NewHabitat("Cerulean Cave", "cave.png", &fx.region.ID)
		require.NoError(t, err)
		require.NoError(t, store.Habitats.Create(ctx, habitat))

		err = store.DB().Exec("DELETE FROM regions WHERE id = ?", fx.region.ID).Error
		assert.True(t, IsConstraint(classify("region", err), ConstraintForeignKey), "got %v", err)
	})
}

func TestPostgresReviewConstraintRollback(t *testing.T) {
	store := newPostgresStore(t)
	fx := seedFixture(t, store)
	db := store.DB()

	require.NoError(t, migration.RollbackReviewConstraints(db, logging.NewNopLogger()))
	for _, name := range []string{"chk_reviews_content", "chk_reviews_danger", "chk_reviews_rating"} {
		assert.False(t, db.Migrator().HasConstraint(&models.Review{}, name), name)
	}

	insert := "INSERT INTO reviews (content, danger, rating, habitat_id, trainer_id) VALUES (?, ?, ?, ?, ?)"
	require.NoError(t, db.Exec(insert, "short", 9, 3, fx.habitat.ID, fx.trainer.ID).Error)
	require.NoError(t, db.Exec("DELETE FROM reviews").Error)

	require.NoError(t, migration.EnsureReviewConstraints(db, logging.NewNopLogger()))
	err := classify("review", db.Exec(insert, validContent, 9, 3, fx.habitat.ID, fx.trainer.ID).Error)

	var ce *ConstraintError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "chk_reviews_danger", ce.Constraint)
}
