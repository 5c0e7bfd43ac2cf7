// ABOUTME: Tests for the backend copy tool
// ABOUTME: Moves a small activation from SQLite into badger
package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/cli"
	"github.com/harperreed/activator/config"
	"github.com/harperreed/activator/models"
)

func TestParseTarget(t *testing.T) {
	cfg, err := parseTarget("sqlite:/tmp/a.db")
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/a.db", cfg.StoragePath())

	cfg, err = parseTarget("badger")
	require.NoError(t, err)
	assert.Equal(t, config.BackendBadger, cfg.Backend)
	assert.Empty(t, cfg.DBPath)

	_, err = parseTarget("postgres:/tmp/x")
	assert.Error(t, err)
}

func TestMigrateSQLiteToBadger(t *testing.T) {
	dir := t.TempDir()
	from := "sqlite:" + filepath.Join(dir, "activator.db")
	to := "badger:" + filepath.Join(dir, "badger")
	ctx := context.Background()

	srcCfg, err := parseTarget(from)
	require.NoError(t, err)
	src, err := cli.OpenStore(srcCfg)
	require.NoError(t, err)
	svc := activation.New(src)
	a, err := svc.CreateActivation(ctx, models.Activation{Name: "Spring Pop-up", Brand: "Fizz Co"})
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, models.Product{ActivationID: a.ID, Name: "Lime Fizz", QuantityRequested: 10})
	require.NoError(t, err)
	require.NoError(t, src.Close())

	require.NoError(t, migrate(ctx, zap.NewNop(), from, to, true))
	require.NoError(t, migrate(ctx, zap.NewNop(), from, to, false))

	dstCfg, err := parseTarget(to)
	require.NoError(t, err)
	dst, err := cli.OpenStore(dstCfg)
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()

	got, err := activation.New(dst).ListProducts(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lime Fizz", got[0].Name)
}

func TestMigrateRejectsSameStore(t *testing.T) {
	path := "sqlite:" + filepath.Join(t.TempDir(), "activator.db")
	err := migrate(context.Background(), zap.NewNop(), path, path, false)
	assert.ErrorContains(t, err, "same store")
}
