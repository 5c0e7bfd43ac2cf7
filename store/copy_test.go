// ABOUTME: Tests for copying rows between backends
// ABOUTME: Covers ordering, dry runs and reruns over partially copied data
package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
)

func seedCopySource(t *testing.T) (*Store, models.Activation) {
	t.Helper()
	src := NewMemory()
	ctx := context.Background()

	a := models.Activation{ID: uuid.New(), Name: "Summer Sampling Tour"}
	require.NoError(t, src.Activations.Insert(ctx, a))
	require.NoError(t, src.Venues.Insert(ctx, models.Venue{ID: uuid.New(), ActivationID: a.ID, Name: "Pier 9"}))
	require.NoError(t, src.Products.Insert(ctx, models.Product{ID: uuid.New(), ActivationID: a.ID, Name: "Lime Fizz"}))
	require.NoError(t, src.Products.Insert(ctx, models.Product{ID: uuid.New(), ActivationID: a.ID, Name: "Berry Fizz"}))
	return src, a
}

func TestCopy(t *testing.T) {
	src, a := seedCopySource(t)
	dst := NewMemory()
	ctx := context.Background()

	stats, err := Copy(ctx, dst.Backend(), src.Backend(), false)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total())
	assert.Equal(t, 1, stats.Copied[models.KindActivation])
	assert.Equal(t, 2, stats.Copied[models.KindProduct])

	products, err := dst.Products.List(ctx, a.ID.String())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Lime Fizz", products[0].Name)
	assert.Equal(t, "Berry Fizz", products[1].Name)
}

func TestCopyDryRun(t *testing.T) {
	src, a := seedCopySource(t)
	dst := NewMemory()
	ctx := context.Background()

	stats, err := Copy(ctx, dst.Backend(), src.Backend(), true)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total())

	_, err = dst.Activations.Get(ctx, a.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCopySkipsExisting(t *testing.T) {
	src, _ := seedCopySource(t)
	dst := NewMemory()
	ctx := context.Background()

	_, err := Copy(ctx, dst.Backend(), src.Backend(), false)
	require.NoError(t, err)

	stats, err := Copy(ctx, dst.Backend(), src.Backend(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total())
	assert.Equal(t, 1, stats.Skipped[models.KindActivation])
	assert.Equal(t, 1, stats.Skipped[models.KindVenue])
}
