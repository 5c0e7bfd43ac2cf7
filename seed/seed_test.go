// ABOUTME: Tests for demo data seeding
// ABOUTME: Checks the demo activation lands in a consistent state
package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

func TestDemo(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := activation.New(store.NewMemory(), activation.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	a, err := Demo(ctx, svc, now)
	require.NoError(t, err)
	assert.Equal(t, models.PhasePreEvent, a.Phase)
	assert.Equal(t, 320, a.InteractionCount)
	require.NotNil(t, a.VenueID)

	d, err := svc.Dashboard(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VenueWalkthroughScheduled, d.Venue.Status)
	assert.Equal(t, int64(800_000), d.Budget.TotalActual)
	assert.Equal(t, 32, d.Budget.BudgetPct)
	assert.Equal(t, 1, d.Budget.PendingApproval)
	assert.Equal(t, 100, d.Metrics.TotalSamples)
	assert.Equal(t, 3, d.Metrics.TotalLeads)
	assert.Equal(t, 1, d.OpenIssues)
	assert.Equal(t, 1, d.PendingSignatures)
	assert.Equal(t, 2, d.Staff.Total)
	assert.False(t, d.Checklist.Ready)
}
