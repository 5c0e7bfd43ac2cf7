// ABOUTME: Tests for the badger row backend
// ABOUTME: Runs the shared backend suite plus a reopen round trip
package kvstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
	"github.com/harperreed/activator/store/storetest"
)

func TestBadgerBackend(t *testing.T) {
	storetest.RunBackendTests(t, func(t *testing.T) store.Backend {
		b, err := Open("")
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestBadgerBackendReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := Open(dir)
	require.NoError(t, err)
	s := store.New(b)

	activation := models.Activation{ID: uuid.New(), Name: "Festival Booth"}
	require.NoError(t, s.Activations.Insert(ctx, activation))
	require.NoError(t, s.Close())

	b, err = Open(dir)
	require.NoError(t, err)
	s = store.New(b)
	defer func() { _ = s.Close() }()

	second := models.Activation{ID: uuid.New(), Name: "Second"}
	require.NoError(t, s.Activations.Insert(ctx, second))

	all, err := s.Activations.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Festival Booth", all[0].Name)
	assert.Equal(t, "Second", all[1].Name)
}
