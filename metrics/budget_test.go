// ABOUTME: Tests for budget rollups
// ABOUTME: Checks headline cards and category totals
package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
)

func amount(v int64) *int64 { return &v }

func TestSummarizeBudgetPaidItems(t *testing.T) {
	items := []models.BudgetItem{
		{Category: models.CategoryVenue, EstimatedAmount: 450_000, ActualAmount: amount(500_000), Status: models.BudgetPaid},
		{Category: models.CategoryStaffing, EstimatedAmount: 300_000, ActualAmount: amount(300_000), Status: models.BudgetPaid},
	}

	s := SummarizeBudget(2_500_000, items)

	assert.Equal(t, int64(800_000), s.TotalActual)
	assert.Equal(t, int64(1_700_000), s.Remaining)
	assert.Equal(t, 32, s.BudgetPct)
	assert.False(t, s.OverBudget)
	assert.Equal(t, int64(750_000), s.TotalEstimated)
}

func TestSummarizeBudgetOverBudget(t *testing.T) {
	items := []models.BudgetItem{
		{Category: models.CategoryVenue, EstimatedAmount: 100, ActualAmount: amount(1500), Status: models.BudgetPaid},
	}

	s := SummarizeBudget(1000, items)

	assert.True(t, s.OverBudget)
	assert.Equal(t, int64(-500), s.Remaining)
	assert.Equal(t, 150, s.BudgetPct)
}

func TestSummarizeBudgetCategories(t *testing.T) {
	items := []models.BudgetItem{
		{Category: models.CategoryVenue, EstimatedAmount: 600, Status: models.BudgetEstimated},
		{Category: models.CategoryVenue, EstimatedAmount: 100, ActualAmount: amount(200), Status: models.BudgetPaid},
		{Category: models.CategorySignage, EstimatedAmount: 200, Status: models.BudgetPendingApproval},
		{Category: "mystery", EstimatedAmount: 200, Status: models.BudgetEstimated},
	}

	s := SummarizeBudget(10_000, items)

	require.Len(t, s.Categories, len(models.BudgetCategories))
	totals := map[models.BudgetCategory]CategoryTotal{}
	var sum int64
	for _, c := range s.Categories {
		totals[c.Category] = c
		sum += c.Total
	}

	assert.Equal(t, int64(800), totals[models.CategoryVenue].Total)
	assert.Equal(t, 2, totals[models.CategoryVenue].Items)
	assert.Equal(t, 67, totals[models.CategoryVenue].Pct)
	assert.Equal(t, int64(200), totals[models.CategorySignage].Total)
	assert.Equal(t, int64(200), totals[models.CategoryOther].Total)
	assert.Equal(t, int64(0), totals[models.CategoryCatering].Total)
	assert.Equal(t, 0, totals[models.CategoryCatering].Pct)

	assert.Equal(t, s.RollupTotal, sum)
	assert.Equal(t, int64(1200), sum)
	assert.Equal(t, 1, s.PendingApproval)
	assert.Equal(t, 2, s.StatusCounts[models.BudgetEstimated])
}

func TestSummarizeBudgetEmpty(t *testing.T) {
	s := SummarizeBudget(0, nil)
	assert.Equal(t, int64(0), s.TotalActual)
	assert.Equal(t, 0, s.BudgetPct)
	assert.False(t, s.OverBudget)
}
