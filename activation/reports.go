// ABOUTME: Metrics, dashboards and point-in-time report snapshots
// ABOUTME: Everything here is derived from raw records on each call
package activation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/activator/metrics"
	"github.com/harperreed/activator/models"
)

// Dashboard is everything a status screen needs for one activation.
type Dashboard struct {
	Activation        models.Activation         `json:"activation"`
	Venue             *models.Venue             `json:"venue,omitempty"`
	Metrics           metrics.ActivationMetrics `json:"metrics"`
	Budget            metrics.BudgetSummary     `json:"budget"`
	Inventory         metrics.ProductSummary    `json:"inventory"`
	Staff             metrics.StaffSummary      `json:"staff"`
	Checklist         metrics.ChecklistProgress `json:"checklist"`
	Stakeholders      int                       `json:"stakeholders"`
	OpenIssues        int                       `json:"open_issues"`
	PendingSignatures int                       `json:"pending_signatures"`
	BudgetHidden      bool                      `json:"budget_hidden,omitempty"`
}

// hideBudget clears every money figure on the dashboard.
func (d *Dashboard) hideBudget() {
	d.Activation = d.Activation.WithoutBudget()
	d.Metrics = d.Metrics.WithoutBudget()
	d.Budget = metrics.BudgetSummary{}
	d.Inventory.RequestedValue = 0
	d.Inventory.UsedValue = 0
	d.Staff.LaborCost = 0
	if d.Venue != nil {
		venue := *d.Venue
		venue.BookingCost = 0
		d.Venue = &venue
	}
	d.BudgetHidden = true
}

// Metrics derives the headline numbers for an activation.
func (s *Service) Metrics(ctx context.Context, activationID uuid.UUID) (*metrics.ActivationMetrics, error) {
	a, err := get(ctx, s.store.Activations, activationID)
	if err != nil {
		return nil, err
	}
	m, err := s.computeMetrics(ctx, *a)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MetricsFor is Metrics with spend and cost figures cleared when viewer
// may not see the budget.
func (s *Service) MetricsFor(ctx context.Context, activationID uuid.UUID, viewer models.Viewer) (*metrics.ActivationMetrics, error) {
	m, err := s.Metrics(ctx, activationID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanViewBudgetOf(activationID) {
		hidden := m.WithoutBudget()
		return &hidden, nil
	}
	return m, nil
}

func (s *Service) computeMetrics(ctx context.Context, a models.Activation) (metrics.ActivationMetrics, error) {
	items, err := list(ctx, s.store.BudgetItems, a.ID)
	if err != nil {
		return metrics.ActivationMetrics{}, err
	}
	products, err := list(ctx, s.store.Products, a.ID)
	if err != nil {
		return metrics.ActivationMetrics{}, err
	}
	leads, err := list(ctx, s.store.Leads, a.ID)
	if err != nil {
		return metrics.ActivationMetrics{}, err
	}
	return metrics.Compute(a, items, products, leads), nil
}

// Dashboard gathers every summary for an activation.
func (s *Service) Dashboard(ctx context.Context, activationID uuid.UUID) (*Dashboard, error) {
	a, err := get(ctx, s.store.Activations, activationID)
	if err != nil {
		return nil, err
	}
	venue, err := s.VenueForActivation(ctx, activationID)
	if err != nil {
		return nil, err
	}
	items, err := list(ctx, s.store.BudgetItems, activationID)
	if err != nil {
		return nil, err
	}
	products, err := list(ctx, s.store.Products, activationID)
	if err != nil {
		return nil, err
	}
	leads, err := list(ctx, s.store.Leads, activationID)
	if err != nil {
		return nil, err
	}
	staff, err := list(ctx, s.store.Personnel, activationID)
	if err != nil {
		return nil, err
	}
	checklist, err := list(ctx, s.store.Checklist, activationID)
	if err != nil {
		return nil, err
	}
	stakeholders, err := list(ctx, s.store.Stakeholders, activationID)
	if err != nil {
		return nil, err
	}
	issues, err := list(ctx, s.store.Issues, activationID)
	if err != nil {
		return nil, err
	}
	docs, err := list(ctx, s.store.Documents, activationID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Activation:   *a,
		Venue:        venue,
		Metrics:      metrics.Compute(*a, items, products, leads),
		Budget:       metrics.SummarizeBudget(a.BudgetTotal, items),
		Inventory:    metrics.SummarizeProducts(products),
		Staff:        metrics.SummarizeStaff(staff),
		Checklist:    metrics.GroupChecklist(checklist),
		Stakeholders: len(stakeholders),
	}
	for _, issue := range issues {
		if issue.Status != models.IssueResolved {
			d.OpenIssues++
		}
	}
	for _, doc := range docs {
		if doc.SignStatus == models.SignPendingSignature {
			d.PendingSignatures++
		}
	}
	return d, nil
}

// DashboardFor is Dashboard as seen by viewer. Money figures are cleared
// unless the viewer may see the budget.
func (s *Service) DashboardFor(ctx context.Context, activationID uuid.UUID, viewer models.Viewer) (*Dashboard, error) {
	d, err := s.Dashboard(ctx, activationID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanViewBudgetOf(activationID) {
		d.hideBudget()
	}
	return d, nil
}

// GenerateReport stores an immutable snapshot of the activation's current metrics.
func (s *Service) GenerateReport(ctx context.Context, activationID uuid.UUID, generatedBy, notes string) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := get(ctx, s.store.Activations, activationID)
	if err != nil {
		return nil, err
	}
	m, err := s.computeMetrics(ctx, *a)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	report := models.Report{
		ID:                 s.newID(),
		ActivationID:       a.ID,
		GeneratedBy:        generatedBy,
		TotalLeads:         m.TotalLeads,
		TotalSamples:       m.TotalSamples,
		TotalInteractions:  m.TotalInteractions,
		TotalBudgetSpent:   m.TotalBudgetSpent,
		CostPerLead:        m.CostPerLead,
		CostPerSample:      m.CostPerSample,
		BudgetUsedPct:      m.BudgetPct,
		LeadGoalPct:        m.Leads.Pct,
		SampleGoalPct:      m.Samples.Pct,
		InteractionGoalPct: m.Interactions.Pct,
		Notes:              notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := insert(ctx, s.store.Reports, report); err != nil {
		return nil, err
	}
	if err := s.record(ctx, a.ID, models.VerbCreated, models.KindReport, report.ID, fmt.Sprintf("%d leads, %d samples", report.TotalLeads, report.TotalSamples)); err != nil {
		return nil, err
	}

	s.logger.Info("report generated",
		zap.String("activation_id", a.ID.String()),
		zap.String("report_id", report.ID.String()),
		zap.Int("leads", report.TotalLeads),
		zap.Int64("spent", report.TotalBudgetSpent),
	)
	return &report, nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return get(ctx, s.store.Reports, id)
}

func (s *Service) ListReports(ctx context.Context, activationID uuid.UUID) ([]models.Report, error) {
	return list(ctx, s.store.Reports, activationID)
}

// ReportsFor lists report snapshots with spend figures cleared when viewer
// may not see the budget.
func (s *Service) ReportsFor(ctx context.Context, activationID uuid.UUID, viewer models.Viewer) ([]models.Report, error) {
	reports, err := s.ListReports(ctx, activationID)
	if err != nil || viewer.CanViewBudgetOf(activationID) {
		return reports, err
	}
	hidden := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		hidden = append(hidden, r.WithoutBudget())
	}
	return hidden, nil
}
