// ABOUTME: Tests for the SQLite row backend
// ABOUTME: Runs the shared backend suite plus a persistence round trip
package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
	"github.com/harperreed/activator/store/storetest"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	database.SetMaxOpenConns(1)
	if err := InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	return database
}

func TestSQLiteBackend(t *testing.T) {
	storetest.RunBackendTests(t, func(t *testing.T) store.Backend {
		b := NewBackend(setupTestDB(t))
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activator.db")
	ctx := context.Background()

	backend, err := Open(path)
	require.NoError(t, err)

	s := store.New(backend)
	activation := models.Activation{ID: uuid.New(), Name: "Pop-up Tasting", BudgetTotal: 1_000_000}
	require.NoError(t, s.Activations.Insert(ctx, activation))
	require.NoError(t, s.Venues.Insert(ctx, models.Venue{ID: uuid.New(), ActivationID: activation.ID, Name: "Warehouse 9", Status: models.VenueContacted}))
	require.NoError(t, s.Close())

	backend, err = Open(path)
	require.NoError(t, err)
	s = store.New(backend)
	defer func() { _ = s.Close() }()

	got, err := s.Activations.Get(ctx, activation.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Pop-up Tasting", got.Name)

	venues, err := s.Venues.List(ctx, activation.ID.String())
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, models.VenueContacted, venues[0].Status)
}
