// ABOUTME: Tests for the venue booking pipeline
// ABOUTME: Covers forward advance, booking stamp and walkthrough scheduling
package activation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
)

func TestAdvanceVenueToBooked(t *testing.T) {
	svc, clock := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	v, err := svc.CreateVenue(ctx, models.Venue{ActivationID: a.ID, Name: "Pier 9"})
	require.NoError(t, err)
	assert.Equal(t, models.VenueIdentified, v.Status)

	for _, want := range models.VenueStatuses[1:] {
		v, err = svc.AdvanceVenue(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, want, v.Status)
	}
	require.NotNil(t, v.BookingConfirmedAt)
	assert.True(t, v.BookingConfirmedAt.Equal(clock.now))

	clock.Advance(time.Hour)
	again, err := svc.AdvanceVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VenueBooked, again.Status)
	assert.True(t, again.BookingConfirmedAt.Equal(*v.BookingConfirmedAt), "booked is terminal")
}

func TestScheduleWalkthroughFromIdentified(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	v, err := svc.CreateVenue(ctx, models.Venue{ActivationID: a.ID, Name: "Pier 9"})
	require.NoError(t, err)

	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.ScheduleWalkthrough(ctx, v.ID, &date, "bring floor plan")
	require.NoError(t, err)

	assert.Equal(t, models.VenueWalkthroughScheduled, got.Status)
	require.NotNil(t, got.WalkthroughDate)
	assert.Equal(t, "2026-02-01", got.WalkthroughDate.Format(time.DateOnly))
	assert.Equal(t, "bring floor plan", got.WalkthroughNotes)
}

func TestScheduleWalkthroughNeverMovesBackward(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	v, err := svc.CreateVenue(ctx, models.Venue{ActivationID: a.ID, Name: "Pier 9", Status: models.VenueWalkthroughDone})
	require.NoError(t, err)

	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.ScheduleWalkthrough(ctx, v.ID, &date, "")
	require.NoError(t, err)
	assert.Equal(t, models.VenueWalkthroughDone, got.Status)
}

func TestScheduleWalkthroughWithoutDateKeepsStatus(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	v, err := svc.CreateVenue(ctx, models.Venue{ActivationID: a.ID, Name: "Pier 9"})
	require.NoError(t, err)

	got, err := svc.ScheduleWalkthrough(ctx, v.ID, nil, "call back next week")
	require.NoError(t, err)
	assert.Equal(t, models.VenueIdentified, got.Status)
	assert.Nil(t, got.WalkthroughDate)
}

func TestVenueForActivation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	none, err := svc.VenueForActivation(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := svc.CreateVenue(ctx, models.Venue{ActivationID: a.ID, Name: "Pier 9"})
	require.NoError(t, err)
	_, err = svc.CreateVenue(ctx, models.Venue{ActivationID: a.ID, Name: "Backup Hall"})
	require.NoError(t, err)

	got, err := svc.VenueForActivation(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	stored, err := svc.GetActivation(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.VenueID)
	assert.Equal(t, first.ID, *stored.VenueID)

	require.NoError(t, svc.DeleteVenue(ctx, first.ID))
	stored, err = svc.GetActivation(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.VenueID)

	fallback, err := svc.VenueForActivation(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, fallback)
	assert.Equal(t, "Backup Hall", fallback.Name)
}

func TestUpdateVenue(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	v, err := svc.CreateVenue(ctx, models.Venue{ActivationID: a.ID, Name: "Pier 9"})
	require.NoError(t, err)

	capacity := 400
	city := "Chicago"
	got, err := svc.UpdateVenue(ctx, v.ID, VenuePatch{Capacity: &capacity, City: &city})
	require.NoError(t, err)
	assert.Equal(t, 400, got.Capacity)
	assert.Equal(t, "Chicago", got.City)
	assert.Equal(t, models.VenueIdentified, got.Status)
}
