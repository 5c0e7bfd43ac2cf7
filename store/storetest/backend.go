// ABOUTME: Shared conformance tests for row backends
// ABOUTME: Memory, sqlite and badger backends all run the same suite
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

// RunBackendTests exercises a Backend created fresh for every subtest.
func RunBackendTests(t *testing.T, newBackend func(t *testing.T) store.Backend) {
	t.Run("InsertGet", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		row := store.Row{Kind: models.KindVenue, ID: uuid.NewString(), ParentID: "a1", Data: []byte(`{"name":"Pier 17"}`)}

		require.NoError(t, b.Insert(ctx, row))

		got, err := b.Get(ctx, models.KindVenue, row.ID)
		require.NoError(t, err)
		assert.Equal(t, row.ID, got.ID)
		assert.Equal(t, "a1", got.ParentID)
		assert.JSONEq(t, `{"name":"Pier 17"}`, string(got.Data))
	})

	t.Run("InsertDuplicate", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		row := store.Row{Kind: models.KindVenue, ID: uuid.NewString(), Data: []byte(`{}`)}

		require.NoError(t, b.Insert(ctx, row))
		err := b.Insert(ctx, row)
		assert.True(t, errors.Is(err, store.ErrAlreadyExists), "got %v", err)
	})

	t.Run("GetMissing", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(context.Background(), models.KindVenue, uuid.NewString())
		assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)
	})

	t.Run("UpdateKeepsOrder", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		first := store.Row{Kind: models.KindProduct, ID: uuid.NewString(), ParentID: "a1", Data: []byte(`{"n":1}`)}
		second := store.Row{Kind: models.KindProduct, ID: uuid.NewString(), ParentID: "a1", Data: []byte(`{"n":2}`)}
		require.NoError(t, b.Insert(ctx, first))
		require.NoError(t, b.Insert(ctx, second))

		first.Data = []byte(`{"n":10}`)
		require.NoError(t, b.Update(ctx, first))

		rows, err := b.List(ctx, models.KindProduct, "a1")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, first.ID, rows[0].ID)
		assert.JSONEq(t, `{"n":10}`, string(rows[0].Data))
		assert.Equal(t, second.ID, rows[1].ID)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		b := newBackend(t)
		err := b.Update(context.Background(), store.Row{Kind: models.KindProduct, ID: uuid.NewString(), Data: []byte(`{}`)})
		assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)
	})

	t.Run("ListFiltersByParent", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		require.NoError(t, b.Insert(ctx, store.Row{Kind: models.KindLead, ID: uuid.NewString(), ParentID: "a1", Data: []byte(`{}`)}))
		require.NoError(t, b.Insert(ctx, store.Row{Kind: models.KindLead, ID: uuid.NewString(), ParentID: "a2", Data: []byte(`{}`)}))
		require.NoError(t, b.Insert(ctx, store.Row{Kind: models.KindIssue, ID: uuid.NewString(), ParentID: "a1", Data: []byte(`{}`)}))

		rows, err := b.List(ctx, models.KindLead, "a1")
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		all, err := b.List(ctx, models.KindLead, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		row := store.Row{Kind: models.KindMedia, ID: uuid.NewString(), Data: []byte(`{}`)}
		require.NoError(t, b.Insert(ctx, row))

		require.NoError(t, b.Delete(ctx, models.KindMedia, row.ID))
		_, err := b.Get(ctx, models.KindMedia, row.ID)
		assert.True(t, errors.Is(err, store.ErrNotFound))

		err = b.Delete(ctx, models.KindMedia, row.ID)
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})
}
