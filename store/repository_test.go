// ABOUTME: Tests for typed repositories and referential integrity
// ABOUTME: Uses the in-memory backend
package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
)

func TestRepositoryInsertGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	a := models.Activation{ID: uuid.New(), Name: "Summer Sampling Tour", BudgetTotal: 2_500_000}
	require.NoError(t, s.Activations.Insert(ctx, a))

	got, err := s.Activations.Get(ctx, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, int64(2_500_000), got.BudgetTotal)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	a := models.Activation{ID: uuid.New(), Name: "Original", Tags: []string{"one"}}
	require.NoError(t, s.Activations.Insert(ctx, a))

	got, err := s.Activations.Get(ctx, a.ID.String())
	require.NoError(t, err)
	got.Name = "Changed"
	got.Tags[0] = "changed"

	again, err := s.Activations.Get(ctx, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
	assert.Equal(t, []string{"one"}, again.Tags)
}

func TestRepositoryRejectsDanglingReference(t *testing.T) {
	s := NewMemory()
	venue := models.Venue{ID: uuid.New(), ActivationID: uuid.New(), Name: "Nowhere"}

	err := s.Venues.Insert(context.Background(), venue)
	assert.True(t, errors.Is(err, ErrDanglingReference), "got %v", err)
}

func TestRepositoryFind(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	a := models.Activation{ID: uuid.New(), Name: "Find"}
	require.NoError(t, s.Activations.Insert(ctx, a))

	first := models.Venue{ID: uuid.New(), ActivationID: a.ID, Name: "First"}
	second := models.Venue{ID: uuid.New(), ActivationID: a.ID, Name: "Second"}
	require.NoError(t, s.Venues.Insert(ctx, first))
	require.NoError(t, s.Venues.Insert(ctx, second))

	found, err := s.Venues.Find(ctx, a.ID.String(), nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "First", found.Name)

	missing, err := s.Venues.Find(ctx, uuid.NewString(), nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteActivationCascades(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	a := models.Activation{ID: uuid.New(), Name: "Cascade"}
	require.NoError(t, s.Activations.Insert(ctx, a))
	require.NoError(t, s.Venues.Insert(ctx, models.Venue{ID: uuid.New(), ActivationID: a.ID}))
	require.NoError(t, s.Leads.Insert(ctx, models.Lead{ID: uuid.New(), ActivationID: a.ID}))

	require.NoError(t, s.DeleteActivation(ctx, a.ID.String()))

	venues, err := s.Venues.List(ctx, a.ID.String())
	require.NoError(t, err)
	assert.Empty(t, venues)

	_, err = s.Activations.Get(ctx, a.ID.String())
	assert.True(t, errors.Is(err, ErrNotFound))
}
