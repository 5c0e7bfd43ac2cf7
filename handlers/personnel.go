// ABOUTME: Staffing, lead and issue MCP tool handlers
// ABOUTME: Implements add_personnel, clock_personnel, capture_lead, report_issue and resolve_issue
package handlers

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

type PersonnelHandlers struct {
	svc *activation.Service
}

func NewPersonnelHandlers(svc *activation.Service) *PersonnelHandlers {
	return &PersonnelHandlers{svc: svc}
}

type AddPersonnelInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Name         string `json:"name" jsonschema:"Staff member name (required)"`
	Role         string `json:"role,omitempty" jsonschema:"Role on site"`
	Email        string `json:"email,omitempty" jsonschema:"Email address"`
	HourlyRate   int64  `json:"hourly_rate,omitempty" jsonschema:"Hourly rate in cents"`
}

func (h *PersonnelHandlers) AddPersonnel(ctx context.Context, request *mcp.CallToolRequest, input AddPersonnelInput) (*mcp.CallToolResult, PersonnelOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, PersonnelOutput{}, err
	}
	p, err := h.svc.AddPersonnel(ctx, models.Personnel{
		ActivationID: activationID,
		Name:         input.Name,
		Role:         input.Role,
		Email:        input.Email,
		HourlyRate:   input.HourlyRate,
	})
	if err != nil {
		return nil, PersonnelOutput{}, err
	}
	return nil, personnelToOutput(p), nil
}

type ClockPersonnelInput struct {
	PersonnelID string `json:"personnel_id" jsonschema:"Personnel UUID (required)"`
	Action      string `json:"action" jsonschema:"clock_in, start_break, end_break or clock_out"`
}

func (h *PersonnelHandlers) ClockPersonnel(ctx context.Context, request *mcp.CallToolRequest, input ClockPersonnelInput) (*mcp.CallToolResult, PersonnelOutput, error) {
	id, err := parseID("personnel_id", input.PersonnelID)
	if err != nil {
		return nil, PersonnelOutput{}, err
	}
	p, err := h.svc.ClockPersonnel(ctx, id, models.ClockAction(input.Action))
	if err != nil {
		return nil, PersonnelOutput{}, err
	}
	return nil, personnelToOutput(p), nil
}

type CaptureLeadInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Name         string `json:"name" jsonschema:"Consumer name (required)"`
	Email        string `json:"email,omitempty" jsonschema:"Email address"`
	Phone        string `json:"phone,omitempty" jsonschema:"Phone number"`
	ZipCode      string `json:"zip_code,omitempty" jsonschema:"ZIP code"`
	SampleGiven  bool   `json:"sample_given,omitempty" jsonschema:"A sample was handed out"`
	OptIn        bool   `json:"opt_in,omitempty" jsonschema:"Consumer opted in to marketing"`
	CapturedBy   string `json:"captured_by,omitempty" jsonschema:"Personnel UUID of the staff member who captured the lead"`
	Notes        string `json:"notes,omitempty" jsonschema:"Notes"`
}

func (h *PersonnelHandlers) CaptureLead(ctx context.Context, request *mcp.CallToolRequest, input CaptureLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, LeadOutput{}, err
	}
	capturedBy, err := parseOptionalID("captured_by", input.CapturedBy)
	if err != nil {
		return nil, LeadOutput{}, err
	}
	lead, err := h.svc.CaptureLead(ctx, models.Lead{
		ActivationID: activationID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		ZipCode:      input.ZipCode,
		SampleGiven:  input.SampleGiven,
		OptIn:        input.OptIn,
		CapturedBy:   capturedBy,
		Notes:        input.Notes,
	})
	if err != nil {
		return nil, LeadOutput{}, err
	}
	return nil, leadToOutput(lead), nil
}

type ReportIssueInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Title        string `json:"title" jsonschema:"Issue title (required)"`
	Description  string `json:"description,omitempty" jsonschema:"What happened"`
	Severity     string `json:"severity,omitempty" jsonschema:"low, medium, high or critical (default medium)"`
	ReportedBy   string `json:"reported_by,omitempty" jsonschema:"Who reported it"`
}

func (h *PersonnelHandlers) ReportIssue(ctx context.Context, request *mcp.CallToolRequest, input ReportIssueInput) (*mcp.CallToolResult, IssueOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, IssueOutput{}, err
	}
	issue, err := h.svc.ReportIssue(ctx, models.Issue{
		ActivationID: activationID,
		Title:        input.Title,
		Description:  input.Description,
		Severity:     models.IssueSeverity(input.Severity),
		ReportedBy:   input.ReportedBy,
	})
	if err != nil {
		return nil, IssueOutput{}, err
	}
	return nil, issueToOutput(issue), nil
}

type ResolveIssueInput struct {
	IssueID    string `json:"issue_id" jsonschema:"Issue UUID (required)"`
	Resolution string `json:"resolution,omitempty" jsonschema:"How it was resolved"`
	Escalate   bool   `json:"escalate,omitempty" jsonschema:"Escalate instead of resolving"`
}

func (h *PersonnelHandlers) ResolveIssue(ctx context.Context, request *mcp.CallToolRequest, input ResolveIssueInput) (*mcp.CallToolResult, IssueOutput, error) {
	id, err := parseID("issue_id", input.IssueID)
	if err != nil {
		return nil, IssueOutput{}, err
	}
	var issue *models.Issue
	if input.Escalate {
		issue, err = h.svc.EscalateIssue(ctx, id)
	} else {
		issue, err = h.svc.ResolveIssue(ctx, id, input.Resolution)
	}
	if err != nil {
		return nil, IssueOutput{}, err
	}
	return nil, issueToOutput(issue), nil
}
