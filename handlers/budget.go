// ABOUTME: Budget pipeline MCP tool handlers
// ABOUTME: Implements add_budget_item, transition_budget_item and get_budget
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

type BudgetHandlers struct {
	svc *activation.Service
}

func NewBudgetHandlers(svc *activation.Service) *BudgetHandlers {
	return &BudgetHandlers{svc: svc}
}

type AddBudgetItemInput struct {
	ActivationID    string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Category        string `json:"category,omitempty" jsonschema:"venue, staffing, product, equipment, transportation, marketing, permits, insurance, catering, signage or other"`
	Description     string `json:"description" jsonschema:"Line item description (required)"`
	Vendor          string `json:"vendor,omitempty" jsonschema:"Vendor name"`
	EstimatedAmount int64  `json:"estimated_amount" jsonschema:"Estimated amount in cents"`
	Notes           string `json:"notes,omitempty" jsonschema:"Notes"`
}

func (h *BudgetHandlers) AddBudgetItem(ctx context.Context, request *mcp.CallToolRequest, input AddBudgetItemInput) (*mcp.CallToolResult, BudgetItemOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, BudgetItemOutput{}, err
	}

	item, err := h.svc.AddBudgetItem(ctx, models.BudgetItem{
		ActivationID:    activationID,
		Category:        models.BudgetCategory(input.Category),
		Description:     input.Description,
		Vendor:          input.Vendor,
		EstimatedAmount: input.EstimatedAmount,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, BudgetItemOutput{}, err
	}
	return nil, budgetItemToOutput(item), nil
}

type TransitionBudgetItemInput struct {
	BudgetItemID string `json:"budget_item_id" jsonschema:"Budget item UUID (required)"`
	Status       string `json:"status" jsonschema:"Target status: pending_approval, approved, rejected or paid"`
	Approver     string `json:"approver,omitempty" jsonschema:"Approver name (required for approved)"`
	ActualAmount *int64 `json:"actual_amount,omitempty" jsonschema:"Actual amount paid in cents (defaults to the estimate)"`
	Reason       string `json:"reason,omitempty" jsonschema:"Rejection reason"`
}

func (h *BudgetHandlers) TransitionBudgetItem(ctx context.Context, request *mcp.CallToolRequest, input TransitionBudgetItemInput) (*mcp.CallToolResult, BudgetItemOutput, error) {
	id, err := parseID("budget_item_id", input.BudgetItemID)
	if err != nil {
		return nil, BudgetItemOutput{}, err
	}
	if input.Status == "" {
		return nil, BudgetItemOutput{}, fmt.Errorf("status is required")
	}

	item, err := h.svc.TransitionBudgetItem(ctx, id, models.BudgetStatus(input.Status), activation.BudgetTransition{
		Approver: input.Approver,
		Actual:   input.ActualAmount,
		Reason:   input.Reason,
	})
	if err != nil {
		return nil, BudgetItemOutput{}, err
	}
	return nil, budgetItemToOutput(item), nil
}

type CategoryOutput struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
	Total    int64  `json:"total"`
	Pct      int    `json:"pct"`
}

type BudgetOutput struct {
	BudgetTotal     int64              `json:"budget_total"`
	TotalEstimated  int64              `json:"total_estimated"`
	TotalActual     int64              `json:"total_actual"`
	Remaining       int64              `json:"remaining"`
	BudgetPct       int                `json:"budget_pct"`
	OverBudget      bool               `json:"over_budget"`
	PendingApproval int                `json:"pending_approval"`
	Categories      []CategoryOutput   `json:"categories"`
	Items           []BudgetItemOutput `json:"items"`
}

func (h *BudgetHandlers) GetBudget(ctx context.Context, request *mcp.CallToolRequest, input ActivationIDInput) (*mcp.CallToolResult, BudgetOutput, error) {
	id, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, BudgetOutput{}, err
	}
	summary, err := h.svc.BudgetSummary(ctx, id)
	if err != nil {
		return nil, BudgetOutput{}, err
	}
	items, err := h.svc.ListBudgetItems(ctx, id)
	if err != nil {
		return nil, BudgetOutput{}, err
	}

	out := BudgetOutput{
		BudgetTotal:     summary.BudgetTotal,
		TotalEstimated:  summary.TotalEstimated,
		TotalActual:     summary.TotalActual,
		Remaining:       summary.Remaining,
		BudgetPct:       summary.BudgetPct,
		OverBudget:      summary.OverBudget,
		PendingApproval: summary.PendingApproval,
		Categories:      []CategoryOutput{},
		Items:           make([]BudgetItemOutput, len(items)),
	}
	for _, ct := range summary.Categories {
		if ct.Items == 0 {
			continue
		}
		out.Categories = append(out.Categories, CategoryOutput{Category: string(ct.Category), Items: ct.Items, Total: ct.Total, Pct: ct.Pct})
	}
	for i := range items {
		out.Items[i] = budgetItemToOutput(&items[i])
	}
	return nil, out, nil
}
