// ABOUTME: MCP server assembly
// ABOUTME: Registers every activation tool, resource and prompt on one server
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

// NewServer builds an MCP server exposing svc. The caller runs it on a transport.
func NewServer(svc *activation.Service) *mcp.Server {
	activationHandlers := NewActivationHandlers(svc)
	venueHandlers := NewVenueHandlers(svc)
	budgetHandlers := NewBudgetHandlers(svc)
	productHandlers := NewProductHandlers(svc)
	stakeholderHandlers := NewStakeholderHandlers(svc)
	personnelHandlers := NewPersonnelHandlers(svc)
	vizHandlers := NewVizHandlers(svc)
	resourceHandlers := NewResourceHandlers(svc)
	promptHandlers := NewPromptHandlers(svc)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "activator",
		Version: Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_activation",
		Description: "Create a new brand activation in the planning phase",
	}, activationHandlers.CreateActivation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_activations",
		Description: "List activations, optionally filtered by phase",
	}, activationHandlers.ListActivations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "advance_phase",
		Description: "Move an activation to its next phase (planning, pre_event, live, post_event, wrapped)",
	}, activationHandlers.AdvancePhase)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_interactions",
		Description: "Add consumer interactions to an activation's running count",
	}, activationHandlers.RecordInteractions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_metrics",
		Description: "Get leads, samples, interactions, spend and goal progress for an activation",
	}, activationHandlers.GetMetrics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_report",
		Description: "Store an immutable snapshot of an activation's current metrics",
	}, activationHandlers.GenerateReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_venue",
		Description: "Add a candidate venue to an activation",
	}, venueHandlers.CreateVenue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "advance_venue",
		Description: "Move a venue to its next booking status; booking stamps the confirmation time",
	}, venueHandlers.AdvanceVenue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schedule_walkthrough",
		Description: "Set a venue walkthrough date and notes",
	}, venueHandlers.ScheduleWalkthrough)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_budget_item",
		Description: "Add an estimated budget line item",
	}, budgetHandlers.AddBudgetItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "transition_budget_item",
		Description: "Submit, approve, reject or mark a budget line item paid",
	}, budgetHandlers.TransitionBudgetItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_budget",
		Description: "Get budget cards, category rollups and line items for an activation",
	}, budgetHandlers.GetBudget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_product",
		Description: "Request product inventory for an activation",
	}, productHandlers.AddProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "advance_product",
		Description: "Move a product to its next inventory status, carrying quantities forward",
	}, productHandlers.AdvanceProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reconcile_product",
		Description: "Record used, returned and damaged counts for a delivered product",
	}, productHandlers.ReconcileProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_stakeholder",
		Description: "Add a stakeholder with default permissions for their type",
	}, stakeholderHandlers.AddStakeholder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_document",
		Description: "Add a document, optionally scoped to one stakeholder",
	}, stakeholderHandlers.AddDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents, optionally as a given stakeholder would see them",
	}, stakeholderHandlers.ListDocuments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "request_signature",
		Description: "Mark a document as pending signature",
	}, stakeholderHandlers.RequestSignature)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sign_document",
		Description: "Sign a pending document; requires explicit consent and a captured signature image",
	}, stakeholderHandlers.SignDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_personnel",
		Description: "Add an on-site staff member",
	}, personnelHandlers.AddPersonnel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clock_personnel",
		Description: "Clock a staff member in or out, or start or end a break",
	}, personnelHandlers.ClockPersonnel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_lead",
		Description: "Capture a consumer lead",
	}, personnelHandlers.CaptureLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report_issue",
		Description: "Report an on-site issue",
	}, personnelHandlers.ReportIssue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_issue",
		Description: "Resolve or escalate an on-site issue",
	}, personnelHandlers.ResolveIssue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate GraphViz DOT for an activation's pipelines or stakeholders",
	}, vizHandlers.GenerateGraph)

	server.AddResource(ActivationListResource(), resourceHandlers.ReadResource)
	server.AddResourceTemplate(ActivationResourceTemplate(), resourceHandlers.ReadResource)

	for _, prompt := range promptHandlers.Prompts() {
		server.AddPrompt(prompt, promptHandlers.GetPrompt)
	}

	return server
}
