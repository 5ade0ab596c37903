package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/latoulicious/adventour/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	checker := &healthChecker{db: sqlDB, start: time.Now()}

	rec := httptest.NewRecorder()
	checker.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body SystemHealth
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.Database)
	assert.Equal(t, "AdvenTOUR", body.Version.Name)

	require.NoError(t, sqlDB.Close())

	rec = httptest.NewRecorder()
	checker.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
