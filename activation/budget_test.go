// ABOUTME: Tests for the budget approval pipeline
// ABOUTME: Covers legal and illegal transitions and the budget rollup
package activation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
)

func payItem(t *testing.T, svc *Service, activationID uuid.UUID, category models.BudgetCategory, estimate, actual int64) *models.BudgetItem {
	t.Helper()
	ctx := context.Background()

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: activationID, Category: category, Description: string(category), EstimatedAmount: estimate})
	require.NoError(t, err)
	_, err = svc.SubmitBudgetItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = svc.ApproveBudgetItem(ctx, item.ID, "dana")
	require.NoError(t, err)
	item, err = svc.MarkBudgetItemPaid(ctx, item.ID, &actual)
	require.NoError(t, err)
	return item
}

func TestBudgetSummaryTwoPaidItems(t *testing.T) {
	svc, _ := setupService(t)
	a := createActivation(t, svc)

	payItem(t, svc, a.ID, models.CategoryVenue, 450_000, 500_000)
	payItem(t, svc, a.ID, models.CategoryStaffing, 300_000, 300_000)

	summary, err := svc.BudgetSummary(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(800_000), summary.TotalActual)
	assert.Equal(t, int64(1_700_000), summary.Remaining)
	assert.Equal(t, 32, summary.BudgetPct)
}

func TestBudgetApproveStampsApprover(t *testing.T) {
	svc, clock := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Category: models.CategorySignage, Description: "Banners", EstimatedAmount: 12_000})
	require.NoError(t, err)
	assert.Equal(t, models.BudgetEstimated, item.Status)
	assert.Nil(t, item.ActualAmount)

	_, err = svc.SubmitBudgetItem(ctx, item.ID)
	require.NoError(t, err)
	got, err := svc.ApproveBudgetItem(ctx, item.ID, "dana")
	require.NoError(t, err)

	assert.Equal(t, models.BudgetApproved, got.Status)
	assert.Equal(t, "dana", got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(clock.now))
	assert.Nil(t, got.ActualAmount, "actual stays unset until paid")
}

func TestBudgetPaidRequiresApproval(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "Tent", EstimatedAmount: 1000})
	require.NoError(t, err)

	_, err = svc.MarkBudgetItemPaid(ctx, item.ID, nil)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = svc.SubmitBudgetItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = svc.MarkBudgetItemPaid(ctx, item.ID, nil)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	stored, err := svc.GetBudgetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BudgetPendingApproval, stored.Status)
}

func TestBudgetPaidDefaultsToEstimate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "Tent", EstimatedAmount: 1000})
	require.NoError(t, err)
	_, err = svc.SubmitBudgetItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = svc.ApproveBudgetItem(ctx, item.ID, "dana")
	require.NoError(t, err)

	paid, err := svc.MarkBudgetItemPaid(ctx, item.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, paid.ActualAmount)
	assert.Equal(t, int64(1000), *paid.ActualAmount)
	assert.NotNil(t, paid.PaidAt)
}

func TestBudgetRejectIsTerminal(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "Drone", EstimatedAmount: 90_000})
	require.NoError(t, err)
	_, err = svc.SubmitBudgetItem(ctx, item.ID)
	require.NoError(t, err)

	rejected, err := svc.RejectBudgetItem(ctx, item.ID, "not in scope")
	require.NoError(t, err)
	assert.Equal(t, models.BudgetRejected, rejected.Status)
	assert.Equal(t, "not in scope", rejected.Notes)

	for _, to := range []models.BudgetStatus{models.BudgetEstimated, models.BudgetPendingApproval, models.BudgetApproved, models.BudgetPaid} {
		_, err := svc.TransitionBudgetItem(ctx, item.ID, to, BudgetTransition{Approver: "dana"})
		assert.ErrorIs(t, err, models.ErrInvalidTransition, "rejected -> %s", to)
	}
}

func TestBudgetApproveRequiresApprover(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "Tent", EstimatedAmount: 1000})
	require.NoError(t, err)
	_, err = svc.SubmitBudgetItem(ctx, item.ID)
	require.NoError(t, err)

	_, err = svc.ApproveBudgetItem(ctx, item.ID, "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAddBudgetItemValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	_, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "x", Category: "snacks"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "x", EstimatedAmount: -5})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, item.Category)
}

func TestUpdateBudgetItemOverridesActual(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "Tent", EstimatedAmount: 1000})
	require.NoError(t, err)

	actual := int64(1200)
	got, err := svc.UpdateBudgetItem(ctx, item.ID, BudgetItemPatch{ActualAmount: &actual})
	require.NoError(t, err)
	require.NotNil(t, got.ActualAmount)
	assert.Equal(t, int64(1200), *got.ActualAmount)
	assert.Equal(t, models.BudgetEstimated, got.Status)
}

func TestBudgetForViewer(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	vendor, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Rent-A-Tent", Type: models.StakeholderVendor})
	require.NoError(t, err)
	brand, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Fizz Co", Type: models.StakeholderBrand})
	require.NoError(t, err)

	_, err = svc.BudgetFor(ctx, a.ID, models.Viewer{Stakeholder: vendor})
	assert.ErrorIs(t, err, models.ErrForbidden)

	summary, err := svc.BudgetFor(ctx, a.ID, models.Viewer{Stakeholder: brand})
	require.NoError(t, err)
	assert.Equal(t, int64(2_500_000), summary.BudgetTotal)

	_, err = svc.BudgetFor(ctx, a.ID, models.AdminViewer)
	require.NoError(t, err)
}
