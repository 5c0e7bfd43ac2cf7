// ABOUTME: Activation MCP tool handlers
// ABOUTME: Implements create_activation, list_activations, advance_phase, record_interactions, get_metrics and generate_report
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

type ActivationHandlers struct {
	svc *activation.Service
}

func NewActivationHandlers(svc *activation.Service) *ActivationHandlers {
	return &ActivationHandlers{svc: svc}
}

type CreateActivationInput struct {
	Name            string   `json:"name" jsonschema:"Activation name (required)"`
	Brand           string   `json:"brand,omitempty" jsonschema:"Brand running the activation"`
	Description     string   `json:"description,omitempty" jsonschema:"Short description"`
	EventDate       string   `json:"event_date,omitempty" jsonschema:"Event date (RFC3339 or YYYY-MM-DD)"`
	BudgetTotal     int64    `json:"budget_total,omitempty" jsonschema:"Total budget in cents"`
	LeadGoal        int      `json:"lead_goal,omitempty" jsonschema:"Target number of leads"`
	SampleGoal      int      `json:"sample_goal,omitempty" jsonschema:"Target number of samples handed out"`
	InteractionGoal int      `json:"interaction_goal,omitempty" jsonschema:"Target number of consumer interactions"`
	Tags            []string `json:"tags,omitempty" jsonschema:"Free-form tags"`
	CreatedBy       string   `json:"created_by,omitempty" jsonschema:"Who is creating the activation"`
}

func (h *ActivationHandlers) CreateActivation(ctx context.Context, request *mcp.CallToolRequest, input CreateActivationInput) (*mcp.CallToolResult, ActivationOutput, error) {
	if input.Name == "" {
		return nil, ActivationOutput{}, fmt.Errorf("name is required")
	}
	eventDate, err := parseOptionalTime("event_date", input.EventDate)
	if err != nil {
		return nil, ActivationOutput{}, err
	}

	a, err := h.svc.CreateActivation(ctx, models.Activation{
		Name:            input.Name,
		Brand:           input.Brand,
		Description:     input.Description,
		EventDate:       eventDate,
		BudgetTotal:     input.BudgetTotal,
		LeadGoal:        input.LeadGoal,
		SampleGoal:      input.SampleGoal,
		InteractionGoal: input.InteractionGoal,
		Tags:            input.Tags,
		CreatedBy:       input.CreatedBy,
	})
	if err != nil {
		return nil, ActivationOutput{}, err
	}
	return nil, activationToOutput(a), nil
}

type ListActivationsInput struct {
	Phase string `json:"phase,omitempty" jsonschema:"Only return activations in this phase"`
}

type ListActivationsOutput struct {
	Activations []ActivationOutput `json:"activations"`
}

func (h *ActivationHandlers) ListActivations(ctx context.Context, request *mcp.CallToolRequest, input ListActivationsInput) (*mcp.CallToolResult, ListActivationsOutput, error) {
	activations, err := h.svc.ListActivations(ctx)
	if err != nil {
		return nil, ListActivationsOutput{}, err
	}

	result := make([]ActivationOutput, 0, len(activations))
	for i := range activations {
		if input.Phase != "" && string(activations[i].Phase) != input.Phase {
			continue
		}
		result = append(result, activationToOutput(&activations[i]))
	}
	return nil, ListActivationsOutput{Activations: result}, nil
}

type ActivationIDInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
}

func (h *ActivationHandlers) AdvancePhase(ctx context.Context, request *mcp.CallToolRequest, input ActivationIDInput) (*mcp.CallToolResult, ActivationOutput, error) {
	id, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, ActivationOutput{}, err
	}
	a, err := h.svc.AdvancePhase(ctx, id)
	if err != nil {
		return nil, ActivationOutput{}, err
	}
	return nil, activationToOutput(a), nil
}

type RecordInteractionsInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Count        int    `json:"count" jsonschema:"Number of interactions to add (must be positive)"`
}

func (h *ActivationHandlers) RecordInteractions(ctx context.Context, request *mcp.CallToolRequest, input RecordInteractionsInput) (*mcp.CallToolResult, ActivationOutput, error) {
	id, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, ActivationOutput{}, err
	}
	a, err := h.svc.RecordInteractions(ctx, id, input.Count)
	if err != nil {
		return nil, ActivationOutput{}, err
	}
	return nil, activationToOutput(a), nil
}

type GoalOutput struct {
	Current int `json:"current"`
	Goal    int `json:"goal"`
	Pct     int `json:"pct"`
}

type MetricsOutput struct {
	ActivationID      string     `json:"activation_id"`
	TotalLeads        int        `json:"total_leads"`
	TotalSamples      int        `json:"total_samples"`
	TotalInteractions int        `json:"total_interactions"`
	TotalBudgetSpent  int64      `json:"total_budget_spent"`
	BudgetTotal       int64      `json:"budget_total"`
	Remaining         int64      `json:"remaining"`
	BudgetPct         int        `json:"budget_pct"`
	OverBudget        bool       `json:"over_budget"`
	CostPerLead       int64      `json:"cost_per_lead"`
	CostPerSample     int64      `json:"cost_per_sample"`
	Leads             GoalOutput `json:"leads"`
	Samples           GoalOutput `json:"samples"`
	Interactions      GoalOutput `json:"interactions"`
}

func (h *ActivationHandlers) GetMetrics(ctx context.Context, request *mcp.CallToolRequest, input ActivationIDInput) (*mcp.CallToolResult, MetricsOutput, error) {
	id, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, MetricsOutput{}, err
	}
	m, err := h.svc.Metrics(ctx, id)
	if err != nil {
		return nil, MetricsOutput{}, err
	}
	budget, err := h.svc.BudgetSummary(ctx, id)
	if err != nil {
		return nil, MetricsOutput{}, err
	}

	return nil, MetricsOutput{
		ActivationID:      id.String(),
		TotalLeads:        m.TotalLeads,
		TotalSamples:      m.TotalSamples,
		TotalInteractions: m.TotalInteractions,
		TotalBudgetSpent:  m.TotalBudgetSpent,
		BudgetTotal:       budget.BudgetTotal,
		Remaining:         budget.Remaining,
		BudgetPct:         m.BudgetPct,
		OverBudget:        budget.OverBudget,
		CostPerLead:       m.CostPerLead,
		CostPerSample:     m.CostPerSample,
		Leads:             GoalOutput{Current: m.Leads.Current, Goal: m.Leads.Goal, Pct: m.Leads.Pct},
		Samples:           GoalOutput{Current: m.Samples.Current, Goal: m.Samples.Goal, Pct: m.Samples.Pct},
		Interactions:      GoalOutput{Current: m.Interactions.Current, Goal: m.Interactions.Goal, Pct: m.Interactions.Pct},
	}, nil
}

type GenerateReportInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	GeneratedBy  string `json:"generated_by,omitempty" jsonschema:"Who is generating the report"`
	Notes        string `json:"notes,omitempty" jsonschema:"Notes stored with the snapshot"`
}

func (h *ActivationHandlers) GenerateReport(ctx context.Context, request *mcp.CallToolRequest, input GenerateReportInput) (*mcp.CallToolResult, ReportOutput, error) {
	id, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	r, err := h.svc.GenerateReport(ctx, id, input.GeneratedBy, input.Notes)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, reportToOutput(r), nil
}
