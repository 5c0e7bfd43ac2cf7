// ABOUTME: Output shapes shared by the MCP tool handlers
// ABOUTME: Records are flattened to strings and integers for tool schemas
package handlers

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/activator/models"
)

type ActivationOutput struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Brand            string   `json:"brand"`
	Description      string   `json:"description,omitempty"`
	Phase            string   `json:"phase"`
	Status           string   `json:"status"`
	EventDate        *string  `json:"event_date,omitempty"`
	VenueID          *string  `json:"venue_id,omitempty"`
	BudgetTotal      int64    `json:"budget_total"`
	BudgetSpent      int64    `json:"budget_spent"`
	LeadGoal         int      `json:"lead_goal"`
	SampleGoal       int      `json:"sample_goal"`
	InteractionGoal  int      `json:"interaction_goal"`
	InteractionCount int      `json:"interaction_count"`
	Tags             []string `json:"tags,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

func activationToOutput(a *models.Activation) ActivationOutput {
	return ActivationOutput{
		ID:               a.ID.String(),
		Name:             a.Name,
		Brand:            a.Brand,
		Description:      a.Description,
		Phase:            string(a.Phase),
		Status:           string(a.Status),
		EventDate:        timeString(a.EventDate),
		VenueID:          idString(a.VenueID),
		BudgetTotal:      a.BudgetTotal,
		BudgetSpent:      a.BudgetSpent,
		LeadGoal:         a.LeadGoal,
		SampleGoal:       a.SampleGoal,
		InteractionGoal:  a.InteractionGoal,
		InteractionCount: a.InteractionCount,
		Tags:             a.Tags,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        a.UpdatedAt.Format(time.RFC3339),
	}
}

type VenueOutput struct {
	ID                 string  `json:"id"`
	ActivationID       string  `json:"activation_id"`
	Name               string  `json:"name"`
	City               string  `json:"city,omitempty"`
	ContactName        string  `json:"contact_name,omitempty"`
	Capacity           int     `json:"capacity,omitempty"`
	Status             string  `json:"status"`
	WalkthroughDate    *string `json:"walkthrough_date,omitempty"`
	WalkthroughNotes   string  `json:"walkthrough_notes,omitempty"`
	BookingConfirmedAt *string `json:"booking_confirmed_at,omitempty"`
	BookingCost        int64   `json:"booking_cost,omitempty"`
}

func venueToOutput(v *models.Venue) VenueOutput {
	return VenueOutput{
		ID:                 v.ID.String(),
		ActivationID:       v.ActivationID.String(),
		Name:               v.Name,
		City:               v.City,
		ContactName:        v.ContactName,
		Capacity:           v.Capacity,
		Status:             string(v.Status),
		WalkthroughDate:    timeString(v.WalkthroughDate),
		WalkthroughNotes:   v.WalkthroughNotes,
		BookingConfirmedAt: timeString(v.BookingConfirmedAt),
		BookingCost:        v.BookingCost,
	}
}

type BudgetItemOutput struct {
	ID              string  `json:"id"`
	ActivationID    string  `json:"activation_id"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Vendor          string  `json:"vendor,omitempty"`
	EstimatedAmount int64   `json:"estimated_amount"`
	ActualAmount    *int64  `json:"actual_amount,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      string  `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

func budgetItemToOutput(b *models.BudgetItem) BudgetItemOutput {
	return BudgetItemOutput{
		ID:              b.ID.String(),
		ActivationID:    b.ActivationID.String(),
		Category:        string(b.Category),
		Description:     b.Description,
		Vendor:          b.Vendor,
		EstimatedAmount: b.EstimatedAmount,
		ActualAmount:    b.ActualAmount,
		Status:          string(b.Status),
		ApprovedBy:      b.ApprovedBy,
		ApprovedAt:      timeString(b.ApprovedAt),
		PaidAt:          timeString(b.PaidAt),
		Notes:           b.Notes,
	}
}

type ProductOutput struct {
	ID                string  `json:"id"`
	ActivationID      string  `json:"activation_id"`
	Name              string  `json:"name"`
	SKU               string  `json:"sku,omitempty"`
	Status            string  `json:"status"`
	QuantityRequested int     `json:"quantity_requested"`
	QuantityConfirmed int     `json:"quantity_confirmed"`
	QuantityShipped   int     `json:"quantity_shipped"`
	QuantityDelivered int     `json:"quantity_delivered"`
	QuantityUsed      int     `json:"quantity_used"`
	QuantityReturned  int     `json:"quantity_returned"`
	QuantityDamaged   int     `json:"quantity_damaged"`
	DeliveredAt       *string `json:"delivered_at,omitempty"`
	ReconciledAt      *string `json:"reconciled_at,omitempty"`
	ReconciledBy      string  `json:"reconciled_by,omitempty"`
}

func productToOutput(p *models.Product) ProductOutput {
	return ProductOutput{
		ID:                p.ID.String(),
		ActivationID:      p.ActivationID.String(),
		Name:              p.Name,
		SKU:               p.SKU,
		Status:            string(p.Status),
		QuantityRequested: p.QuantityRequested,
		QuantityConfirmed: p.QuantityConfirmed,
		QuantityShipped:   p.QuantityShipped,
		QuantityDelivered: p.QuantityDelivered,
		QuantityUsed:      p.QuantityUsed,
		QuantityReturned:  p.QuantityReturned,
		QuantityDamaged:   p.QuantityDamaged,
		DeliveredAt:       timeString(p.DeliveredAt),
		ReconciledAt:      timeString(p.ReconciledAt),
		ReconciledBy:      p.ReconciledBy,
	}
}

type StakeholderOutput struct {
	ID                  string `json:"id"`
	ActivationID        string `json:"activation_id"`
	Name                string `json:"name"`
	Company             string `json:"company,omitempty"`
	Email               string `json:"email,omitempty"`
	Type                string `json:"type"`
	NDAStatus           string `json:"nda_status"`
	CanViewBudget       bool   `json:"can_view_budget"`
	CanViewLeads        bool   `json:"can_view_leads"`
	CanViewAllDocuments bool   `json:"can_view_all_documents"`
}

func stakeholderToOutput(s *models.Stakeholder) StakeholderOutput {
	return StakeholderOutput{
		ID:                  s.ID.String(),
		ActivationID:        s.ActivationID.String(),
		Name:                s.Name,
		Company:             s.Company,
		Email:               s.Email,
		Type:                string(s.Type),
		NDAStatus:           string(s.NDAStatus),
		CanViewBudget:       s.CanViewBudget,
		CanViewLeads:        s.CanViewLeads,
		CanViewAllDocuments: s.CanViewAllDocuments,
	}
}

type DocumentOutput struct {
	ID                    string  `json:"id"`
	ActivationID          string  `json:"activation_id"`
	Title                 string  `json:"title"`
	Type                  string  `json:"type"`
	ScopedToStakeholderID *string `json:"scoped_to_stakeholder_id,omitempty"`
	SignStatus            string  `json:"sign_status"`
	SignerName            string  `json:"signer_name,omitempty"`
	SignerEmail           string  `json:"signer_email,omitempty"`
	SignedAt              *string `json:"signed_at,omitempty"`
}

func documentToOutput(d *models.Document) DocumentOutput {
	return DocumentOutput{
		ID:                    d.ID.String(),
		ActivationID:          d.ActivationID.String(),
		Title:                 d.Title,
		Type:                  string(d.Type),
		ScopedToStakeholderID: idString(d.ScopedToStakeholderID),
		SignStatus:            string(d.SignStatus),
		SignerName:            d.SignerName,
		SignerEmail:           d.SignerEmail,
		SignedAt:              timeString(d.SignedAt),
	}
}

type PersonnelOutput struct {
	ID                       string  `json:"id"`
	ActivationID             string  `json:"activation_id"`
	Name                     string  `json:"name"`
	Role                     string  `json:"role,omitempty"`
	ClockStatus              string  `json:"clock_status"`
	ClockInTime              *string `json:"clock_in_time,omitempty"`
	ClockOutTime             *string `json:"clock_out_time,omitempty"`
	BreakMinutes             int     `json:"break_minutes"`
	TotalHoursWorked         float64 `json:"total_hours_worked"`
	ProductKnowledgeVerified bool    `json:"product_knowledge_verified"`
	ProductKnowledgeScore    int     `json:"product_knowledge_score,omitempty"`
}

func personnelToOutput(p *models.Personnel) PersonnelOutput {
	return PersonnelOutput{
		ID:                       p.ID.String(),
		ActivationID:             p.ActivationID.String(),
		Name:                     p.Name,
		Role:                     p.Role,
		ClockStatus:              string(p.ClockStatus),
		ClockInTime:              timeString(p.ClockInTime),
		ClockOutTime:             timeString(p.ClockOutTime),
		BreakMinutes:             int(p.BreakDuration / time.Minute),
		TotalHoursWorked:         p.TotalHoursWorked,
		ProductKnowledgeVerified: p.ProductKnowledgeVerified,
		ProductKnowledgeScore:    p.ProductKnowledgeScore,
	}
}

type LeadOutput struct {
	ID           string  `json:"id"`
	ActivationID string  `json:"activation_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	ZipCode      string  `json:"zip_code,omitempty"`
	SampleGiven  bool    `json:"sample_given"`
	OptIn        bool    `json:"opt_in"`
	CapturedBy   *string `json:"captured_by,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func leadToOutput(l *models.Lead) LeadOutput {
	return LeadOutput{
		ID:           l.ID.String(),
		ActivationID: l.ActivationID.String(),
		Name:         l.Name,
		Email:        l.Email,
		ZipCode:      l.ZipCode,
		SampleGiven:  l.SampleGiven,
		OptIn:        l.OptIn,
		CapturedBy:   idString(l.CapturedBy),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}

type IssueOutput struct {
	ID           string  `json:"id"`
	ActivationID string  `json:"activation_id"`
	Title        string  `json:"title"`
	Severity     string  `json:"severity"`
	Status       string  `json:"status"`
	Resolution   string  `json:"resolution,omitempty"`
	ResolvedAt   *string `json:"resolved_at,omitempty"`
}

func issueToOutput(i *models.Issue) IssueOutput {
	return IssueOutput{
		ID:           i.ID.String(),
		ActivationID: i.ActivationID.String(),
		Title:        i.Title,
		Severity:     string(i.Severity),
		Status:       string(i.Status),
		Resolution:   i.Resolution,
		ResolvedAt:   timeString(i.ResolvedAt),
	}
}

type ReportOutput struct {
	ID                 string `json:"id"`
	ActivationID       string `json:"activation_id"`
	GeneratedBy        string `json:"generated_by,omitempty"`
	TotalLeads         int    `json:"total_leads"`
	TotalSamples       int    `json:"total_samples"`
	TotalInteractions  int    `json:"total_interactions"`
	TotalBudgetSpent   int64  `json:"total_budget_spent"`
	CostPerLead        int64  `json:"cost_per_lead"`
	CostPerSample      int64  `json:"cost_per_sample"`
	BudgetUsedPct      int    `json:"budget_used_pct"`
	LeadGoalPct        int    `json:"lead_goal_pct"`
	SampleGoalPct      int    `json:"sample_goal_pct"`
	InteractionGoalPct int    `json:"interaction_goal_pct"`
	Notes              string `json:"notes,omitempty"`
	CreatedAt          string `json:"created_at"`
}

func reportToOutput(r *models.Report) ReportOutput {
	return ReportOutput{
		ID:                 r.ID.String(),
		ActivationID:       r.ActivationID.String(),
		GeneratedBy:        r.GeneratedBy,
		TotalLeads:         r.TotalLeads,
		TotalSamples:       r.TotalSamples,
		TotalInteractions:  r.TotalInteractions,
		TotalBudgetSpent:   r.TotalBudgetSpent,
		CostPerLead:        r.CostPerLead,
		CostPerSample:      r.CostPerSample,
		BudgetUsedPct:      r.BudgetUsedPct,
		LeadGoalPct:        r.LeadGoalPct,
		SampleGoalPct:      r.SampleGoalPct,
		InteractionGoalPct: r.InteractionGoalPct,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return id, nil
}

func parseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		if d, derr := time.Parse(time.DateOnly, value); derr == nil {
			return &d, nil
		}
		return nil, fmt.Errorf("invalid %s (want RFC3339 or YYYY-MM-DD): %w", field, err)
	}
	return &t, nil
}
