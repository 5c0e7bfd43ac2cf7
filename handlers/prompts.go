// ABOUTME: MCP prompt handlers for activation workflow templates
// ABOUTME: Builds briefing and budget review prompts from live activation data
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/viz"
)

type PromptHandlers struct {
	svc *activation.Service
}

func NewPromptHandlers(svc *activation.Service) *PromptHandlers {
	return &PromptHandlers{svc: svc}
}

// Prompts lists the prompt templates GetPrompt can answer.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	arg := []*mcp.PromptArgument{{Name: "activation_id", Description: "Activation UUID", Required: true}}
	return []*mcp.Prompt{
		{Name: "activation-briefing", Description: "Status briefing for an activation with suggested next steps", Arguments: arg},
		{Name: "budget-review", Description: "Review of budget line items awaiting decisions", Arguments: arg},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := request.Params.Name
	arguments := request.Params.Arguments
	switch name {
	case "activation-briefing":
		return h.getBriefingPrompt(ctx, arguments)
	case "budget-review":
		return h.getBudgetReviewPrompt(ctx, arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func (h *PromptHandlers) getBriefingPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	id, err := parseID("activation_id", args["activation_id"])
	if err != nil {
		return nil, err
	}
	d, err := h.svc.Dashboard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString("Here is the current state of a brand activation:\n\n")
	promptText.WriteString(viz.RenderDashboard(d, false))
	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. A short status briefing for the brand team")
	promptText.WriteString("\n2. The most urgent blockers before the event")
	promptText.WriteString("\n3. Concrete next steps for venue, budget and inventory")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Briefing for activation: %s", d.Activation.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getBudgetReviewPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	id, err := parseID("activation_id", args["activation_id"])
	if err != nil {
		return nil, err
	}
	summary, err := h.svc.BudgetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := h.svc.ListBudgetItems(ctx, id)
	if err != nil {
		return nil, err
	}

	var promptText strings.Builder
	promptText.WriteString("Please review this activation budget:\n\n")
	promptText.WriteString(fmt.Sprintf("Budget: %s, paid %s (%d%%), remaining %s\n",
		viz.FormatCents(summary.BudgetTotal), viz.FormatCents(summary.TotalActual), summary.BudgetPct, viz.FormatCents(summary.Remaining)))
	promptText.WriteString(fmt.Sprintf("Estimated across all items: %s\n\n", viz.FormatCents(summary.TotalEstimated)))

	promptText.WriteString("Line items:\n")
	for _, item := range items {
		marker := ""
		if item.Status == models.BudgetPendingApproval {
			marker = "  <- awaiting approval"
		}
		promptText.WriteString(fmt.Sprintf("  - [%s] %s (%s): %s%s\n", item.Status, item.Description, item.Category, viz.FormatCents(item.Spend()), marker))
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. A recommendation for each item awaiting approval")
	promptText.WriteString("\n2. Categories at risk of overspending")
	promptText.WriteString("\n3. Where estimates look unrealistic")

	return &mcp.GetPromptResult{
		Description: "Budget review",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
