// ABOUTME: Tests for the personnel time clock
// ABOUTME: Break time is excluded from hours worked
package activation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
)

func TestClockShiftWithBreak(t *testing.T) {
	svc, clock := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	p, err := svc.AddPersonnel(ctx, models.Personnel{ActivationID: a.ID, Name: "Riley", Role: "Brand ambassador", HourlyRate: 2500})
	require.NoError(t, err)
	assert.Equal(t, models.ClockNotStarted, p.ClockStatus)

	p, err = svc.ClockPersonnel(ctx, p.ID, models.ActionClockIn)
	require.NoError(t, err)
	assert.Equal(t, models.ClockedIn, p.ClockStatus)

	clock.Advance(3 * time.Hour)
	p, err = svc.ClockPersonnel(ctx, p.ID, models.ActionStartBreak)
	require.NoError(t, err)
	assert.Equal(t, models.ClockOnBreak, p.ClockStatus)

	_, err = svc.ClockPersonnel(ctx, p.ID, models.ActionClockOut)
	assert.ErrorIs(t, err, models.ErrInvalidTransition, "no clock out from a break")

	clock.Advance(30 * time.Minute)
	p, err = svc.ClockPersonnel(ctx, p.ID, models.ActionEndBreak)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, p.BreakDuration)
	assert.Nil(t, p.BreakStartTime)

	clock.Advance(4*time.Hour + 30*time.Minute)
	p, err = svc.ClockPersonnel(ctx, p.ID, models.ActionClockOut)
	require.NoError(t, err)
	assert.Equal(t, models.ClockedOut, p.ClockStatus)
	assert.InDelta(t, 7.5, p.TotalHoursWorked, 0.001)

	_, err = svc.ClockPersonnel(ctx, p.ID, models.ActionClockIn)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestClockRoundsToHundredths(t *testing.T) {
	svc, clock := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	p, err := svc.AddPersonnel(ctx, models.Personnel{ActivationID: a.ID, Name: "Riley"})
	require.NoError(t, err)
	_, err = svc.ClockPersonnel(ctx, p.ID, models.ActionClockIn)
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	p, err = svc.ClockPersonnel(ctx, p.ID, models.ActionClockOut)
	require.NoError(t, err)
	assert.Equal(t, 0.33, p.TotalHoursWorked)
}

func TestClockUnknownAction(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	p, err := svc.AddPersonnel(ctx, models.Personnel{ActivationID: a.ID, Name: "Riley"})
	require.NoError(t, err)

	_, err = svc.ClockPersonnel(ctx, p.ID, "lunch")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.ClockPersonnel(ctx, p.ID, models.ActionEndBreak)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestVerifyProductKnowledge(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	p, err := svc.AddPersonnel(ctx, models.Personnel{ActivationID: a.ID, Name: "Riley"})
	require.NoError(t, err)

	p, err = svc.VerifyProductKnowledge(ctx, p.ID, 79)
	require.NoError(t, err)
	assert.False(t, p.ProductKnowledgeVerified)

	p, err = svc.VerifyProductKnowledge(ctx, p.ID, KnowledgePassScore)
	require.NoError(t, err)
	assert.True(t, p.ProductKnowledgeVerified)
	assert.Equal(t, 80, p.ProductKnowledgeScore)

	_, err = svc.VerifyProductKnowledge(ctx, p.ID, 101)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
