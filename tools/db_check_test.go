package tools

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/latoulicious/adventour/pkg/database"
	"github.com/latoulicious/adventour/pkg/database/migration"
	"github.com/latoulicious/adventour/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBcheckBeforeAndAfterMigration(t *testing.T) {
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "check.db"))
	require.NoError(t, err)
	defer database.Close(db)

	missing, err := MissingTables(db)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"regions", "biomes", "habitats", "trainers", "reviews", "sightings", "app_logs"}, missing)

	var out bytes.Buffer
	require.NoError(t, DBcheck(db, &out))
	assert.Contains(t, out.String(), "Missing tables")
	assert.Contains(t, out.String(), "Transaction capability verified")

	require.NoError(t, migration.RunMigration(db, logging.NewNopLogger()))

	missing, err = MissingTables(db)
	require.NoError(t, err)
	assert.Empty(t, missing)

	out.Reset()
	require.NoError(t, DBcheck(db, &out))
	assert.Contains(t, out.String(), "All expected tables exist")
	assert.Contains(t, out.String(), "sqlite version")
}
