// ABOUTME: Budget approval pipeline operations
// ABOUTME: Submit, approve, reject and pay line items; roll spend up by category
package activation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/activator/metrics"
	"github.com/harperreed/activator/models"
)

type BudgetItemPatch struct {
	Category        *models.BudgetCategory `json:"category,omitempty"`
	Description     *string                `json:"description,omitempty"`
	Vendor          *string                `json:"vendor,omitempty"`
	EstimatedAmount *int64                 `json:"estimated_amount,omitempty"`
	ActualAmount    *int64                 `json:"actual_amount,omitempty"` // explicit override
	ReceiptURL      *string                `json:"receipt_url,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
}

// BudgetTransition carries the inputs a status change may need.
type BudgetTransition struct {
	Approver string `json:"approver,omitempty"`
	Actual   *int64 `json:"actual,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// AddBudgetItem stores a new line item in the estimated state.
func (s *Service) AddBudgetItem(ctx context.Context, item models.BudgetItem) (*models.BudgetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("budget item description", item.Description); err != nil {
		return nil, err
	}
	if item.Category == "" {
		item.Category = models.CategoryOther
	}
	if !item.Category.Valid() {
		return nil, invalid("unknown budget category %q", item.Category)
	}
	if item.EstimatedAmount < 0 {
		return nil, invalid("estimated amount must not be negative")
	}

	now := s.timestamp()
	item.ID = s.newID()
	item.Status = models.BudgetEstimated
	item.ActualAmount = nil
	item.ApprovedBy = ""
	item.ApprovedAt = nil
	item.PaidAt = nil
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := insert(ctx, s.store.BudgetItems, item); err != nil {
		return nil, err
	}
	if err := s.record(ctx, item.ActivationID, models.VerbCreated, models.KindBudgetItem, item.ID, item.Description); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) GetBudgetItem(ctx context.Context, id uuid.UUID) (*models.BudgetItem, error) {
	return get(ctx, s.store.BudgetItems, id)
}

func (s *Service) ListBudgetItems(ctx context.Context, activationID uuid.UUID) ([]models.BudgetItem, error) {
	return list(ctx, s.store.BudgetItems, activationID)
}

// UpdateBudgetItem edits an item's details. Status is untouched; an
// ActualAmount given here overrides the pipeline's nil-until-paid rule.
func (s *Service) UpdateBudgetItem(ctx context.Context, id uuid.UUID, patch BudgetItemPatch) (*models.BudgetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := get(ctx, s.store.BudgetItems, id)
	if err != nil {
		return nil, err
	}

	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, invalid("unknown budget category %q", *patch.Category)
		}
		item.Category = *patch.Category
	}
	setString(&item.Description, patch.Description)
	setString(&item.Vendor, patch.Vendor)
	setString(&item.ReceiptURL, patch.ReceiptURL)
	setString(&item.Notes, patch.Notes)
	if patch.EstimatedAmount != nil {
		if *patch.EstimatedAmount < 0 {
			return nil, invalid("estimated amount must not be negative")
		}
		item.EstimatedAmount = *patch.EstimatedAmount
	}
	if patch.ActualAmount != nil {
		if *patch.ActualAmount < 0 {
			return nil, invalid("actual amount must not be negative")
		}
		actual := *patch.ActualAmount
		item.ActualAmount = &actual
	}
	if err := requireName("budget item description", item.Description); err != nil {
		return nil, err
	}

	item.UpdatedAt = s.timestamp()
	if err := save(ctx, s.store.BudgetItems, *item); err != nil {
		return nil, err
	}
	if err := s.record(ctx, item.ActivationID, models.VerbUpdated, models.KindBudgetItem, item.ID, ""); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteBudgetItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := get(ctx, s.store.BudgetItems, id)
	if err != nil {
		return err
	}
	if err := s.store.BudgetItems.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete budget item: %w", err)
	}
	return s.record(ctx, item.ActivationID, models.VerbDeleted, models.KindBudgetItem, item.ID, item.Description)
}

// SubmitBudgetItem moves an estimated item to pending_approval.
func (s *Service) SubmitBudgetItem(ctx context.Context, id uuid.UUID) (*models.BudgetItem, error) {
	return s.TransitionBudgetItem(ctx, id, models.BudgetPendingApproval, BudgetTransition{})
}

// ApproveBudgetItem approves a pending item on behalf of approver.
func (s *Service) ApproveBudgetItem(ctx context.Context, id uuid.UUID, approver string) (*models.BudgetItem, error) {
	return s.TransitionBudgetItem(ctx, id, models.BudgetApproved, BudgetTransition{Approver: approver})
}

// RejectBudgetItem rejects a pending item. Rejection is final.
func (s *Service) RejectBudgetItem(ctx context.Context, id uuid.UUID, reason string) (*models.BudgetItem, error) {
	return s.TransitionBudgetItem(ctx, id, models.BudgetRejected, BudgetTransition{Reason: reason})
}

// MarkBudgetItemPaid pays an approved item. When actual is nil the existing
// actual amount is kept, falling back to the estimate.
func (s *Service) MarkBudgetItemPaid(ctx context.Context, id uuid.UUID, actual *int64) (*models.BudgetItem, error) {
	return s.TransitionBudgetItem(ctx, id, models.BudgetPaid, BudgetTransition{Actual: actual})
}

// TransitionBudgetItem moves an item to status to, or fails with ErrInvalidTransition.
func (s *Service) TransitionBudgetItem(ctx context.Context, id uuid.UUID, to models.BudgetStatus, in BudgetTransition) (*models.BudgetItem, error) {
	if !to.Valid() {
		return nil, invalid("unknown budget status %q", to)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := get(ctx, s.store.BudgetItems, id)
	if err != nil {
		return nil, err
	}
	if !item.Status.CanTransition(to) {
		return nil, transitionError(models.KindBudgetItem, item.Status, to)
	}

	now := s.timestamp()
	verb := models.VerbUpdated
	detail := fmt.Sprintf("%s -> %s", item.Status, to)

	switch to {
	case models.BudgetApproved:
		if err := requireName("approver", in.Approver); err != nil {
			return nil, err
		}
		item.ApprovedBy = in.Approver
		item.ApprovedAt = &now
		verb = models.VerbApproved
		detail = in.Approver
	case models.BudgetRejected:
		if in.Reason != "" {
			item.Notes = in.Reason
		}
		verb = models.VerbRejected
		detail = in.Reason
	case models.BudgetPaid:
		actual := item.EstimatedAmount
		switch {
		case in.Actual != nil:
			actual = *in.Actual
		case item.ActualAmount != nil:
			actual = *item.ActualAmount
		}
		if actual < 0 {
			return nil, invalid("actual amount must not be negative")
		}
		item.ActualAmount = &actual
		item.PaidAt = &now
		verb = models.VerbPaid
		detail = fmt.Sprintf("%d", actual)
	}

	item.Status = to
	item.UpdatedAt = now
	if err := save(ctx, s.store.BudgetItems, *item); err != nil {
		return nil, err
	}
	if err := s.record(ctx, item.ActivationID, verb, models.KindBudgetItem, item.ID, detail); err != nil {
		return nil, err
	}
	return item, nil
}

// BudgetSummary rolls up an activation's budget items.
func (s *Service) BudgetSummary(ctx context.Context, activationID uuid.UUID) (*metrics.BudgetSummary, error) {
	a, err := get(ctx, s.store.Activations, activationID)
	if err != nil {
		return nil, err
	}
	items, err := list(ctx, s.store.BudgetItems, activationID)
	if err != nil {
		return nil, err
	}
	summary := metrics.SummarizeBudget(a.BudgetTotal, items)
	return &summary, nil
}

// BudgetFor returns the budget rollup if viewer may see it.
func (s *Service) BudgetFor(ctx context.Context, activationID uuid.UUID, viewer models.Viewer) (*metrics.BudgetSummary, error) {
	if !viewer.CanViewBudget() {
		return nil, fmt.Errorf("budget for %s: %w", activationID, models.ErrForbidden)
	}
	return s.BudgetSummary(ctx, activationID)
}
