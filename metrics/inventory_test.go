// ABOUTME: Tests for inventory, staff and checklist summaries
// ABOUTME: Uses plain slices of models, no store required
package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
)

func TestSummarizeProducts(t *testing.T) {
	products := []models.Product{
		{UnitCost: 250, QuantityRequested: 120, QuantityConfirmed: 120, QuantityShipped: 120, QuantityDelivered: 120,
			QuantityUsed: 100, QuantityReturned: 10, QuantityDamaged: 5, Status: models.ProductReconciled},
		{UnitCost: 100, QuantityRequested: 50, Status: models.ProductRequested},
	}

	s := SummarizeProducts(products)

	assert.Equal(t, 2, s.Products)
	assert.Equal(t, 170, s.Requested)
	assert.Equal(t, 120, s.Delivered)
	assert.Equal(t, 100, s.Used)
	assert.Equal(t, 5, s.Unaccounted)
	assert.Equal(t, int64(250*120+100*50), s.RequestedValue)
	assert.Equal(t, int64(25_000), s.UsedValue)
	assert.Equal(t, 1, s.StatusCounts[models.ProductRequested])
}

func TestSummarizeStaff(t *testing.T) {
	staff := []models.Personnel{
		{HourlyRate: 2000, TotalHoursWorked: 7.5, ClockStatus: models.ClockedOut, ProductKnowledgeVerified: true},
		{HourlyRate: 2500, ClockStatus: models.ClockedIn},
	}

	s := SummarizeStaff(staff)

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Verified)
	assert.InDelta(t, 7.5, s.HoursWorked, 0.001)
	assert.Equal(t, int64(15_000), s.LaborCost)
	assert.Equal(t, 1, s.ByStatus[models.ClockedIn])
}

func TestGroupChecklist(t *testing.T) {
	items := []models.ChecklistItem{
		{Category: "setup", Title: "Tent", Required: true, Completed: true},
		{Category: "compliance", Title: "Permit", Required: true},
		{Category: "setup", Title: "Banner"},
	}

	p := GroupChecklist(items)

	require.Len(t, p.Groups, 2)
	assert.Equal(t, "setup", p.Groups[0].Category)
	assert.Len(t, p.Groups[0].Items, 2)
	assert.Equal(t, 1, p.Groups[0].Completed)
	assert.Equal(t, "compliance", p.Groups[1].Category)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.Required)
	assert.Equal(t, 1, p.RequiredCompleted)
	assert.Equal(t, 33, p.Pct)
	assert.False(t, p.Ready)
}
