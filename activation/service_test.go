// ABOUTME: Shared fixtures for activation service tests
// ABOUTME: Fixed clock, in-memory store and a seeded activation
package activation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupService(t *testing.T) (*Service, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	svc := New(store.NewMemory(), WithClock(clock.Now))
	t.Cleanup(func() { _ = svc.Store().Close() })
	return svc, clock
}

func createActivation(t *testing.T, svc *Service) *models.Activation {
	t.Helper()
	a, err := svc.CreateActivation(context.Background(), models.Activation{
		Name:            "Summer Sampling Tour",
		Brand:           "Fizz Co",
		BudgetTotal:     2_500_000,
		LeadGoal:        200,
		SampleGoal:      1000,
		InteractionGoal: 1500,
	})
	require.NoError(t, err)
	return a
}
