// ABOUTME: Activation lifecycle operations
// ABOUTME: Create, update, phase advance, interaction counting and spend reconciliation
package activation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/activator/metrics"
	"github.com/harperreed/activator/models"
)

// ActivationPatch holds optional field updates; nil fields are left alone.
type ActivationPatch struct {
	Name            *string                 `json:"name,omitempty"`
	Brand           *string                 `json:"brand,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	Color           *string                 `json:"color,omitempty"`
	Status          *models.ActivationState `json:"status,omitempty"`
	EventDate       *time.Time              `json:"event_date,omitempty"`
	EventEndDate    *time.Time              `json:"event_end_date,omitempty"`
	SetupDate       *time.Time              `json:"setup_date,omitempty"`
	TeardownDate    *time.Time              `json:"teardown_date,omitempty"`
	BudgetTotal     *int64                  `json:"budget_total,omitempty"`
	LeadGoal        *int                    `json:"lead_goal,omitempty"`
	SampleGoal      *int                    `json:"sample_goal,omitempty"`
	InteractionGoal *int                    `json:"interaction_goal,omitempty"`
	Tags            []string                `json:"tags,omitempty"`
}

func validateActivation(a models.Activation) error {
	if err := requireName("activation name", a.Name); err != nil {
		return err
	}
	if !a.Phase.Valid() {
		return invalid("unknown phase %q", a.Phase)
	}
	if !a.Status.Valid() {
		return invalid("unknown activation status %q", a.Status)
	}
	if a.BudgetTotal < 0 || a.LeadGoal < 0 || a.SampleGoal < 0 || a.InteractionGoal < 0 {
		return invalid("budget and goals must not be negative")
	}
	return nil
}

// CreateActivation stores a new activation. Phase defaults to planning and status to draft.
func (s *Service) CreateActivation(ctx context.Context, a models.Activation) (*models.Activation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Phase == "" {
		a.Phase = models.PhasePlanning
	}
	if a.Status == "" {
		a.Status = models.ActivationDraft
	}
	if err := validateActivation(a); err != nil {
		return nil, err
	}

	now := s.timestamp()
	a.ID = s.newID()
	a.VenueID = nil
	a.BudgetSpent = 0
	a.InteractionCount = 0
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := insert(ctx, s.store.Activations, a); err != nil {
		return nil, err
	}
	if err := s.record(ctx, a.ID, models.VerbCreated, models.KindActivation, a.ID, a.Name); err != nil {
		return nil, err
	}

	s.logger.Info("activation created", zap.String("id", a.ID.String()), zap.String("name", a.Name))
	return &a, nil
}

func (s *Service) GetActivation(ctx context.Context, id uuid.UUID) (*models.Activation, error) {
	return get(ctx, s.store.Activations, id)
}

func (s *Service) ListActivations(ctx context.Context) ([]models.Activation, error) {
	activations, err := s.store.Activations.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activations: %w", err)
	}
	return activations, nil
}

// ListActivationsFor lists activations, clearing budget figures on those
// whose budget viewer may not see.
func (s *Service) ListActivationsFor(ctx context.Context, viewer models.Viewer) ([]models.Activation, error) {
	activations, err := s.ListActivations(ctx)
	if err != nil {
		return nil, err
	}
	for i, a := range activations {
		if !viewer.CanViewBudgetOf(a.ID) {
			activations[i] = a.WithoutBudget()
		}
	}
	return activations, nil
}

// UpdateActivation applies patch. Phase only moves through AdvancePhase.
func (s *Service) UpdateActivation(ctx context.Context, id uuid.UUID, patch ActivationPatch) (*models.Activation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := get(ctx, s.store.Activations, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Brand != nil {
		a.Brand = *patch.Brand
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Color != nil {
		a.Color = *patch.Color
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.EventDate != nil {
		a.EventDate = patch.EventDate
	}
	if patch.EventEndDate != nil {
		a.EventEndDate = patch.EventEndDate
	}
	if patch.SetupDate != nil {
		a.SetupDate = patch.SetupDate
	}
	if patch.TeardownDate != nil {
		a.TeardownDate = patch.TeardownDate
	}
	if patch.BudgetTotal != nil {
		a.BudgetTotal = *patch.BudgetTotal
	}
	if patch.LeadGoal != nil {
		a.LeadGoal = *patch.LeadGoal
	}
	if patch.SampleGoal != nil {
		a.SampleGoal = *patch.SampleGoal
	}
	if patch.InteractionGoal != nil {
		a.InteractionGoal = *patch.InteractionGoal
	}
	if patch.Tags != nil {
		a.Tags = patch.Tags
	}
	if err := validateActivation(*a); err != nil {
		return nil, err
	}

	a.UpdatedAt = s.timestamp()
	if err := save(ctx, s.store.Activations, *a); err != nil {
		return nil, err
	}
	if err := s.record(ctx, a.ID, models.VerbUpdated, models.KindActivation, a.ID, ""); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteActivation removes an activation and all of its records.
func (s *Service) DeleteActivation(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := get(ctx, s.store.Activations, id); err != nil {
		return err
	}
	if err := s.store.DeleteActivation(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete activation: %w", err)
	}

	s.logger.Info("activation deleted", zap.String("id", id.String()))
	return nil
}

// AdvancePhase moves the activation to its next phase. At wrapped it is a no-op.
func (s *Service) AdvancePhase(ctx context.Context, id uuid.UUID) (*models.Activation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := get(ctx, s.store.Activations, id)
	if err != nil {
		return nil, err
	}

	next, ok := a.Phase.Next()
	if !ok {
		return a, nil
	}
	from := a.Phase
	a.Phase = next
	a.UpdatedAt = s.timestamp()

	if err := save(ctx, s.store.Activations, *a); err != nil {
		return nil, err
	}
	if err := s.record(ctx, a.ID, models.VerbAdvanced, models.KindActivation, a.ID, fmt.Sprintf("%s -> %s", from, next)); err != nil {
		return nil, err
	}
	return a, nil
}

// RecordInteractions adds n to the activation's interaction counter.
func (s *Service) RecordInteractions(ctx context.Context, id uuid.UUID, n int) (*models.Activation, error) {
	if n <= 0 {
		return nil, invalid("interaction count must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := get(ctx, s.store.Activations, id)
	if err != nil {
		return nil, err
	}
	a.InteractionCount += n
	a.UpdatedAt = s.timestamp()

	if err := save(ctx, s.store.Activations, *a); err != nil {
		return nil, err
	}
	return a, nil
}

// ReconcileBudgetSpent copies the budget ledger's paid total into the
// activation's BudgetSpent field. It never happens implicitly.
func (s *Service) ReconcileBudgetSpent(ctx context.Context, id uuid.UUID) (*models.Activation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := get(ctx, s.store.Activations, id)
	if err != nil {
		return nil, err
	}
	items, err := list(ctx, s.store.BudgetItems, id)
	if err != nil {
		return nil, err
	}

	summary := metrics.SummarizeBudget(a.BudgetTotal, items)
	if a.BudgetSpent == summary.TotalActual {
		return a, nil
	}
	a.BudgetSpent = summary.TotalActual
	a.UpdatedAt = s.timestamp()

	if err := save(ctx, s.store.Activations, *a); err != nil {
		return nil, err
	}
	if err := s.record(ctx, a.ID, models.VerbReconciled, models.KindActivation, a.ID, fmt.Sprintf("budget spent %d", a.BudgetSpent)); err != nil {
		return nil, err
	}
	return a, nil
}
